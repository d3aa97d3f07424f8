package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleStudent   UserRole = "student"
	RoleVolunteer UserRole = "volunteer"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether r is one of the roles this service knows about.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleStudent, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       string   `json:"id" gorm:"primaryKey;size:255"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role     UserRole `json:"role" gorm:"-"`
	Phone    *string  `json:"phone" gorm:"size:20"`

	// Status
	EmailVerified bool `json:"email_verified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
