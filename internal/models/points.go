package models

import "time"

// UserPoints holds the lifetime total and the spendable balance of a user.
type UserPoints struct {
	ID            uint      `json:"-" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"uniqueIndex"`
	TotalPoints   int       `json:"total_points" gorm:"not null;default:0"`
	CurrentPoints int       `json:"current_points" gorm:"not null;default:0"`
	UpdatedAt     time.Time `json:"last_updated"`
}

const (
	LedgerQuestCompleted = "quest_completed"
	LedgerRewardRedeemed = "reward_redeemed"
)

type PointLedger struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	Change       int       `json:"change" gorm:"not null"`
	BalanceAfter int       `json:"balance_after" gorm:"not null"`
	EventType    string    `json:"event_type" gorm:"not null"`
	Reference    string    `json:"reference"`
	CreatedAt    time.Time `json:"created_at"`
}
