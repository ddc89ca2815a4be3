package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/gamification"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RewardHandler struct {
	db          *gorm.DB
	points      *gamification.Service
	authHandler *auth.AuthHandler
	logger      *zap.Logger
}

func NewRewardHandler(db *gorm.DB, points *gamification.Service, authHandler *auth.AuthHandler, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{db: db, points: points, authHandler: authHandler, logger: logger}
}

type RewardsOutput struct {
	Body []models.Reward
}

func (h *RewardHandler) activeRewards(ctx context.Context) *gorm.DB {
	return h.db.WithContext(ctx).
		Where("is_active = ? AND (expiry_date IS NULL OR expiry_date > ?)", true, time.Now()).
		Order("points_required")
}

func (h *RewardHandler) HandleList(ctx context.Context, input *auth.AuthInput) (*RewardsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	rewards := []models.Reward{}
	if err := h.activeRewards(ctx).Find(&rewards).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list rewards", err)
	}
	return &RewardsOutput{Body: rewards}, nil
}

// HandleAvailable lists active rewards the caller can afford right now.
func (h *RewardHandler) HandleAvailable(ctx context.Context, input *auth.AuthInput) (*RewardsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	points, err := h.points.Points(ctx, userID)
	if err != nil {
		return nil, internalError(h.logger, "Failed to load points", err)
	}
	rewards := []models.Reward{}
	if err := h.activeRewards(ctx).Where("points_required <= ?", points.CurrentPoints).Find(&rewards).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list rewards", err)
	}
	return &RewardsOutput{Body: rewards}, nil
}

type UserRewardsOutput struct {
	Body []models.UserReward
}

func (h *RewardHandler) HandleUserRewards(ctx context.Context, input *auth.AuthInput) (*UserRewardsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	redeemed := []models.UserReward{}
	err = h.db.WithContext(ctx).Preload("Reward").
		Where("user_id = ?", userID).
		Order("redeemed_at desc").
		Find(&redeemed).Error
	if err != nil {
		return nil, internalError(h.logger, "Failed to list rewards", err)
	}
	return &UserRewardsOutput{Body: redeemed}, nil
}

type RedeemRewardInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type RedeemRewardOutput struct {
	Body models.UserReward
}

func (h *RewardHandler) HandleRedeem(ctx context.Context, input *RedeemRewardInput) (*RedeemRewardOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	userReward, err := h.points.RedeemReward(ctx, userID, input.ID)
	switch {
	case errors.Is(err, gamification.ErrNotFound):
		return nil, huma.Error404NotFound("Reward not found.")
	case errors.Is(err, gamification.ErrInsufficientPoints):
		return nil, huma.Error400BadRequest("Not enough points to redeem this reward.")
	case err != nil:
		return nil, internalError(h.logger, "Failed to redeem reward", err)
	}
	return &RedeemRewardOutput{Body: *userReward}, nil
}

type PointsOutput struct {
	Body models.UserPoints
}

func (h *RewardHandler) HandlePoints(ctx context.Context, input *auth.AuthInput) (*PointsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	points, err := h.points.Points(ctx, userID)
	if err != nil {
		return nil, internalError(h.logger, "Failed to load points", err)
	}
	return &PointsOutput{Body: *points}, nil
}

type PointHistoryOutput struct {
	Body []models.PointLedger
}

func (h *RewardHandler) HandlePointHistory(ctx context.Context, input *auth.AuthInput) (*PointHistoryOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	entries := []models.PointLedger{}
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc").Find(&entries).Error; err != nil {
		return nil, internalError(h.logger, "Failed to load point history", err)
	}
	return &PointHistoryOutput{Body: entries}, nil
}
