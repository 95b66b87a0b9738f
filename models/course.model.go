package models

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type Course struct {
	BaseModel
	Title        string  `json:"title" gorm:"not null"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"not null;check:price >= 0"`
	CategoryID   uint    `json:"category_id" gorm:"index;not null"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	Duration     string  `json:"duration" gorm:"default:''"`
	Level        string  `json:"level" gorm:"default:''"` // beginner, intermediate, advanced
	ImageURL     string  `json:"image_url" gorm:"default:''"`
}
