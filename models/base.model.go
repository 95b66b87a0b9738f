package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel mirrors gorm.Model with snake_case JSON so rows can be
// serialized directly in API responses.
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
