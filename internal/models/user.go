// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the FoodMedia application.
// DisplayName, Bio and AvatarURL are filled in during profile completion;
// until then ProfileComplete is false and clients route the user to the
// complete-profile flow.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Username        string         `gorm:"unique;not null" json:"username"`
	Email           string         `gorm:"unique;not null" json:"email"`
	Password        string         `gorm:"not null" json:"-"`
	DisplayName     string         `json:"display_name"`
	Bio             string         `json:"bio"`
	AvatarURL       string         `json:"avatar_url"`
	ProfileComplete bool           `gorm:"not null;default:false" json:"profile_complete"`
	IsAdmin         bool           `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Posts           []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// Name returns the user's public name: the display name when the profile has
// been completed, otherwise the username.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
