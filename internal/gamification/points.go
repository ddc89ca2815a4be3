package gamification

import (
	"context"
	"fmt"

	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureUserPoints creates the user's points row if it does not exist yet.
func EnsureUserPoints(tx *gorm.DB, userID uint) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&models.UserPoints{UserID: userID}).Error
}

// Points returns the user's points, creating an empty row on first access.
func (s *Service) Points(ctx context.Context, userID uint) (*models.UserPoints, error) {
	var points models.UserPoints
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := EnsureUserPoints(tx, userID); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).First(&points).Error
	})
	if err != nil {
		return nil, err
	}
	return &points, nil
}

// Spend deducts amount from the spendable balance. It reports false, leaving both
// balances untouched, when the balance is too small.
func (s *Service) Spend(ctx context.Context, userID uint, amount int) (bool, error) {
	var spent bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		spent, err = s.spendPoints(tx, userID, amount, "")
		return err
	})
	return spent, err
}

// awardPoints adds points to both the lifetime total and the spendable balance.
func (s *Service) awardPoints(tx *gorm.DB, userID uint, amount int, reference string) (*models.UserPoints, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if err := EnsureUserPoints(tx, userID); err != nil {
		return nil, err
	}

	err := tx.Model(&models.UserPoints{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"total_points":   gorm.Expr("total_points + ?", amount),
			"current_points": gorm.Expr("current_points + ?", amount),
		}).Error
	if err != nil {
		return nil, err
	}

	var points models.UserPoints
	if err := tx.Where("user_id = ?", userID).First(&points).Error; err != nil {
		return nil, err
	}

	if err := recordLedger(tx, userID, amount, points.CurrentPoints, models.LedgerQuestCompleted, reference); err != nil {
		return nil, err
	}
	return &points, nil
}

// spendPoints is a guarded decrement of current_points; total_points never changes.
func (s *Service) spendPoints(tx *gorm.DB, userID uint, amount int, reference string) (bool, error) {
	if amount < 0 {
		return false, ErrInvalidAmount
	}
	if err := EnsureUserPoints(tx, userID); err != nil {
		return false, err
	}

	res := tx.Model(&models.UserPoints{}).
		Where("user_id = ? AND current_points >= ?", userID, amount).
		Update("current_points", gorm.Expr("current_points - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		s.logger.Debug("Spend declined", zap.Uint("user_id", userID), zap.Int("amount", amount))
		return false, nil
	}

	var points models.UserPoints
	if err := tx.Where("user_id = ?", userID).First(&points).Error; err != nil {
		return false, err
	}
	if err := recordLedger(tx, userID, -amount, points.CurrentPoints, models.LedgerRewardRedeemed, reference); err != nil {
		return false, err
	}
	return true, nil
}

func recordLedger(tx *gorm.DB, userID uint, change, balanceAfter int, eventType, reference string) error {
	entry := models.PointLedger{
		UserID:       userID,
		Change:       change,
		BalanceAfter: balanceAfter,
		EventType:    eventType,
		Reference:    reference,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("record ledger: %w", err)
	}
	return nil
}
