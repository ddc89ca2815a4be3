package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email                  string     `gorm:"uniqueIndex" json:"email"`
	Username               string     `json:"username"`
	PasswordHash           string     `json:"-"`
	DiscordID              *string    `gorm:"uniqueIndex" json:"-"`
	Avatar                 string     `json:"avatar"`
	Bio                    string     `json:"bio"`
	DateOfBirth            *time.Time `json:"date_of_birth"`
	MentalHealthGoals      string     `json:"mental_health_goals"`
	StressLevel            *int       `json:"stress_level"` // 1-10
	PreferredActivities    string     `json:"preferred_activities"`
	IsEmailVerified        bool       `json:"is_email_verified"`
	EmailVerificationToken string     `gorm:"index" json:"-"`
	PasswordResetToken     *string    `gorm:"index" json:"-"`
}
