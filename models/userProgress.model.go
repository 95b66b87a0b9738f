package models

import "time"

// UserProgress tracks how far a user has gotten in a course. One row per
// (user, course), upserted on every progress update.
type UserProgress struct {
	BaseModel
	UserID             uint      `json:"user_id" gorm:"index:idx_progress_user_course;not null"`
	CourseID           uint      `json:"course_id" gorm:"index:idx_progress_user_course;not null"`
	ProgressPercentage float64   `json:"progress_percentage" gorm:"default:0"`
	LastAccessed       time.Time `json:"last_accessed"`
}
