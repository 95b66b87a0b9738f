package models

import "time"

const (
	EnrollmentActive       = "active"
	EnrollmentUnsubscribed = "unsubscribed"
)

type Enrollment struct {
	BaseModel
	UserID     uint      `json:"user_id" gorm:"index:idx_enrollment_user_course;not null"`
	CourseID   uint      `json:"course_id" gorm:"index:idx_enrollment_user_course;not null"`
	Status     string    `json:"status" gorm:"default:'active'"` // active, unsubscribed
	EnrolledAt time.Time `json:"enrolled_at"`
	User       User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course     Course    `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
