package models

import "gorm.io/datatypes"

const (
	ActivityEnrollment  = "enrollment"
	ActivityUnsubscribe = "unsubscribe"
	ActivityCompletion  = "completion"
)

// UserActivity is an append-only audit log. Rows are never updated or
// deleted by application code.
type UserActivity struct {
	BaseModel
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	CourseID     uint           `json:"course_id" gorm:"index"`
	ActivityType string         `json:"activity_type" gorm:"not null"` // enrollment, unsubscribe, completion
	Description  string         `json:"description" gorm:"default:''"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
}
