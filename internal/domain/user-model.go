package domain

import "gorm.io/gorm"

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `gorm:"not null" json:"name"`
	Skills       string   `json:"skills,omitempty"`
	Interests    []string `gorm:"serializer:json" json:"interests,omitempty"`
	Goals        []string `gorm:"serializer:json" json:"goals,omitempty"`
	Preferences  []string `gorm:"serializer:json" json:"preferences,omitempty"`

	// IsVerified flips true exactly once, on a successful signup OTP check.
	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`
	// ResetVerified gates password-reset completion. Single use: set by a
	// reset OTP match, cleared as soon as the password changes.
	ResetVerified bool `gorm:"not null;default:false" json:"-"`

	Bookmarks []Course `gorm:"many2many:user_bookmarks" json:"bookmarks,omitempty"`
	gorm.Model
}
