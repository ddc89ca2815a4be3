package handlers

import (
	"context"

	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AchievementHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	logger      *zap.Logger
}

func NewAchievementHandler(db *gorm.DB, authHandler *auth.AuthHandler, logger *zap.Logger) *AchievementHandler {
	return &AchievementHandler{db: db, authHandler: authHandler, logger: logger}
}

type AchievementsOutput struct {
	Body []models.Achievement
}

func (h *AchievementHandler) HandleList(ctx context.Context, input *auth.AuthInput) (*AchievementsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	achievements := []models.Achievement{}
	if err := h.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&achievements).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list achievements", err)
	}
	return &AchievementsOutput{Body: achievements}, nil
}

type UserAchievementsOutput struct {
	Body []models.UserAchievement
}

// HandleUserAchievements lists what the caller has earned, newest first.
func (h *AchievementHandler) HandleUserAchievements(ctx context.Context, input *auth.AuthInput) (*UserAchievementsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	earned := []models.UserAchievement{}
	err = h.db.WithContext(ctx).Preload("Achievement").
		Where("user_id = ?", userID).
		Order("earned_at desc").
		Find(&earned).Error
	if err != nil {
		return nil, internalError(h.logger, "Failed to list achievements", err)
	}
	return &UserAchievementsOutput{Body: earned}, nil
}

// HandleAvailable lists active achievements the caller has not earned yet.
func (h *AchievementHandler) HandleAvailable(ctx context.Context, input *auth.AuthInput) (*AchievementsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	earned := h.db.Model(&models.UserAchievement{}).Select("achievement_id").Where("user_id = ?", userID)
	achievements := []models.Achievement{}
	err = h.db.WithContext(ctx).
		Where("is_active = ? AND id NOT IN (?)", true, earned).
		Order("id").
		Find(&achievements).Error
	if err != nil {
		return nil, internalError(h.logger, "Failed to list achievements", err)
	}
	return &AchievementsOutput{Body: achievements}, nil
}
