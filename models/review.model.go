package models

type Review struct {
	BaseModel
	UserID   uint    `json:"user_id" gorm:"index;not null"`
	CourseID uint    `json:"course_id" gorm:"index;not null"`
	Rating   float64 `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment  string  `json:"comment" gorm:"type:text;default:''"`
}
