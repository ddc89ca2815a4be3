package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"gorm.io/gorm"
)

type ChallengeResponse struct {
	models.CommunityChallenge
	ParticipantCount int64 `json:"participant_count"`
	IsParticipating  bool  `json:"is_participating"`
	Completed        bool  `json:"completed"`
}

type ListChallengesInput struct {
	auth.AuthInput
	Type string `query:"type" doc:"Filter by challenge type"`
}

type ChallengesOutput struct {
	Body []ChallengeResponse
}

func (h *CommunityHandler) challengeResponse(ctx context.Context, userID uint, c models.CommunityChallenge) (ChallengeResponse, error) {
	res := ChallengeResponse{CommunityChallenge: c}
	db := h.db.WithContext(ctx)
	if err := db.Model(&models.ChallengeParticipation{}).Where("challenge_id = ?", c.ID).Count(&res.ParticipantCount).Error; err != nil {
		return res, err
	}
	var mine models.ChallengeParticipation
	err := db.Where("challenge_id = ? AND user_id = ?", c.ID, userID).First(&mine).Error
	if err == nil {
		res.IsParticipating = true
		res.Completed = mine.Completed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return res, err
	}
	return res, nil
}

func (h *CommunityHandler) HandleListChallenges(ctx context.Context, input *ListChallengesInput) (*ChallengesOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at desc")
	if input.Type != "" {
		q = q.Where("challenge_type = ?", input.Type)
	}
	var challenges []models.CommunityChallenge
	if err := q.Find(&challenges).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list challenges", err)
	}

	res := make([]ChallengeResponse, 0, len(challenges))
	for _, c := range challenges {
		cr, err := h.challengeResponse(ctx, userID, c)
		if err != nil {
			return nil, internalError(h.logger, "Failed to list challenges", err)
		}
		res = append(res, cr)
	}
	return &ChallengesOutput{Body: res}, nil
}

type CreateChallengeInput struct {
	auth.AuthInput
	Body struct {
		Title         string    `json:"title" minLength:"1" maxLength:"200" required:"true"`
		Description   string    `json:"description" required:"true"`
		Goal          string    `json:"goal,omitempty"`
		StartDate     time.Time `json:"start_date" required:"true"`
		EndDate       time.Time `json:"end_date" required:"true"`
		ChallengeType string    `json:"challenge_type,omitempty"`
	}
}

type ChallengeOutput struct {
	Body ChallengeResponse
}

func (h *CommunityHandler) HandleCreateChallenge(ctx context.Context, input *CreateChallengeInput) (*ChallengeOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	b := input.Body
	if b.EndDate.Before(b.StartDate) {
		return nil, huma.Error400BadRequest("End date cannot be before start date")
	}
	if !h.screen.Allow(b.Title) || !h.screen.Allow(b.Description) {
		return nil, huma.Error403Forbidden(failedModeration)
	}

	challenge := models.CommunityChallenge{
		Title:         b.Title,
		Description:   b.Description,
		Goal:          b.Goal,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		CreatedByID:   &userID,
		IsActive:      true,
		ChallengeType: b.ChallengeType,
	}
	if err := h.db.WithContext(ctx).Create(&challenge).Error; err != nil {
		return nil, internalError(h.logger, "Failed to create challenge", err)
	}
	return &ChallengeOutput{Body: ChallengeResponse{CommunityChallenge: challenge}}, nil
}

type ChallengeIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *CommunityHandler) activeChallenge(ctx context.Context, id uint) (*models.CommunityChallenge, error) {
	var challenge models.CommunityChallenge
	err := h.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("Challenge not found")
	}
	if err != nil {
		return nil, internalError(h.logger, "Failed to load challenge", err)
	}
	return &challenge, nil
}

func (h *CommunityHandler) HandleJoinChallenge(ctx context.Context, input *ChallengeIDInput) (*DetailOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	challenge, err := h.activeChallenge(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	participation := models.ChallengeParticipation{ChallengeID: challenge.ID, UserID: userID}
	if err := h.db.WithContext(ctx).Create(&participation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("Already participating in this challenge.")
		}
		return nil, internalError(h.logger, "Failed to join challenge", err)
	}
	return detail(http.StatusCreated, "Successfully joined the challenge."), nil
}

func (h *CommunityHandler) HandleCompleteChallenge(ctx context.Context, input *ChallengeIDInput) (*DetailOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	challenge, err := h.activeChallenge(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	res := h.db.WithContext(ctx).Model(&models.ChallengeParticipation{}).
		Where("challenge_id = ? AND user_id = ?", challenge.ID, userID).
		Updates(map[string]any{"completed": true, "completion_date": time.Now()})
	if res.Error != nil {
		return nil, internalError(h.logger, "Failed to complete challenge", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, huma.Error400BadRequest("Not participating in this challenge.")
	}
	return detail(http.StatusOK, "Challenge marked as completed."), nil
}
