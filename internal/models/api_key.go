package models

import (
	"time"

	"gorm.io/gorm"
)

// APIKey lets companion apps (watch, widget) act for a user without the session cookie.
type APIKey struct {
	gorm.Model
	UserID     uint       `json:"user_id" gorm:"index"`
	User       User       `json:"-"`
	Key        string     `json:"key" gorm:"uniqueIndex"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}
