package models

import (
	"time"

	"gorm.io/gorm"
)

// UnlockKind decides which user statistic an achievement is measured against.
type UnlockKind string

const (
	UnlockCategoryCount UnlockKind = "category_count"
	UnlockStreakLength  UnlockKind = "streak_length"
)

type Achievement struct {
	gorm.Model
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Category      *QuestCategory `json:"category"`
	UnlockKind    UnlockKind     `json:"unlock_kind" gorm:"index;default:category_count"`
	RequiredCount int            `json:"required_count" gorm:"default:1"`
	Points        int            `json:"points" gorm:"default:50"`
	IsActive      bool           `json:"is_active"`
	DiscordRoleID string         `json:"-"`
}

// UserAchievement is append-only: one row per (user, achievement), never updated.
type UserAchievement struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	UserID        uint        `json:"user_id" gorm:"uniqueIndex:idx_user_achievement"`
	AchievementID uint        `json:"achievement_id" gorm:"uniqueIndex:idx_user_achievement"`
	Achievement   Achievement `json:"achievement"`
	EarnedAt      time.Time   `json:"earned_at" gorm:"autoCreateTime"`
}
