package models

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text;default:''"`
}
