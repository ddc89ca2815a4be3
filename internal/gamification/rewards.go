package gamification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RedeemReward spends the reward's price and records a UserReward with a redemption code.
func (s *Service) RedeemReward(ctx context.Context, userID, rewardID uint) (*models.UserReward, error) {
	var userReward models.UserReward
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.Where("id = ? AND is_active = ?", rewardID, true).First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if reward.ExpiryDate != nil && s.now().After(*reward.ExpiryDate) {
			return ErrNotFound
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		spent, err := s.spendPoints(tx, userID, reward.PointsRequired, fmt.Sprintf("reward:%d", reward.ID))
		if err != nil {
			return err
		}
		if !spent {
			return ErrInsufficientPoints
		}

		userReward = models.UserReward{
			UserID:         userID,
			RewardID:       reward.ID,
			RedeemedAt:     s.now(),
			RedemptionCode: GenerateRedemptionCode(reward, user, s.now()),
		}
		if err := tx.Create(&userReward).Error; err != nil {
			return err
		}
		userReward.Reward = reward
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reward redeemed", zap.Uint("user_id", userID), zap.Uint("reward_id", rewardID))
	return &userReward, nil
}

// GenerateRedemptionCode fills the reward's code template, or builds a XXXXX-XXXXX-XXXXX
// code when the reward has none. Template placeholders: {USERNAME} {USERID} {DATE}
// {RANDOM4} {RANDOM6} {RANDOM8}.
func GenerateRedemptionCode(reward models.Reward, user models.User, now time.Time) string {
	if reward.CodeTemplate != "" {
		replacer := strings.NewReplacer(
			"{USERNAME}", user.Username,
			"{USERID}", strconv.FormatUint(uint64(user.ID), 10),
			"{DATE}", now.Format("20060102"),
			"{RANDOM4}", randomCode(4),
			"{RANDOM6}", randomCode(6),
			"{RANDOM8}", randomCode(8),
		)
		return replacer.Replace(reward.CodeTemplate)
	}

	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return hex[0:5] + "-" + hex[5:10] + "-" + hex[10:15]
}

// randomCode returns n uppercase letters and digits.
func randomCode(n int) string {
	return rand.Text()[:n]
}
