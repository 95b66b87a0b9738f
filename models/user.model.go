package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleUser       = "user"
)

const (
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

type User struct {
	BaseModel
	Name     string `json:"name" gorm:"default:''"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"default:'user'"` // user, instructor, admin
	Status   string `json:"status" gorm:"default:'active'"`
	Bio      string `json:"bio" gorm:"type:text;default:''"`
	Avatar   string `json:"avatar" gorm:"default:''"`
	Title    string `json:"title" gorm:"default:''"`

	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	BlockedUntil        *time.Time `json:"-"`
}

// Public returns the user fields safe to expose over the API.
func (u User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"status":     u.Status,
		"bio":        u.Bio,
		"avatar":     u.Avatar,
		"title":      u.Title,
		"created_at": u.CreatedAt,
	}
}
