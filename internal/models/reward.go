package models

import (
	"time"

	"gorm.io/gorm"
)

type Reward struct {
	gorm.Model
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	PointsRequired int        `json:"points_required"`
	PartnerName    string     `json:"partner_name"`
	CodeTemplate   string     `json:"-"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	IsActive       bool       `json:"is_active"`
}

type UserReward struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index"`
	RewardID       uint      `json:"reward_id"`
	Reward         Reward    `json:"reward"`
	RedeemedAt     time.Time `json:"redeemed_at" gorm:"autoCreateTime"`
	RedemptionCode string    `json:"redemption_code"`
}
