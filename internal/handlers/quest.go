package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/gamification"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/gdg-garage/mental-health-partner-api/internal/notifier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recommendationLimit = 5

type QuestHandler struct {
	db          *gorm.DB
	quests      *gamification.Service
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
	logger      *zap.Logger
}

func NewQuestHandler(db *gorm.DB, quests *gamification.Service, notifier notifier.Notifier, authHandler *auth.AuthHandler, logger *zap.Logger) *QuestHandler {
	return &QuestHandler{db: db, quests: quests, notifier: notifier, authHandler: authHandler, logger: logger}
}

type ListQuestsInput struct {
	auth.AuthInput
	Category string `query:"category" enum:"cbt,mindfulness,activity,social,gratitude" doc:"Filter by category"`
}

type QuestsOutput struct {
	Body []models.Quest
}

func (h *QuestHandler) HandleList(ctx context.Context, input *ListQuestsInput) (*QuestsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Where("is_active = ?", true)
	if input.Category != "" {
		q = q.Where("category = ?", input.Category)
	}
	quests := []models.Quest{}
	if err := q.Order("id").Find(&quests).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list quests", err)
	}
	return &QuestsOutput{Body: quests}, nil
}

type CategoryResponse struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

type CategoriesOutput struct {
	Body []CategoryResponse
}

func (h *QuestHandler) HandleCategories(ctx context.Context, input *auth.AuthInput) (*CategoriesOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	categories := models.QuestCategories()
	res := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, CategoryResponse{Value: string(c), Name: c.DisplayName()})
	}
	return &CategoriesOutput{Body: res}, nil
}

func (h *QuestHandler) HandleRecommended(ctx context.Context, input *auth.AuthInput) (*QuestsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	quests, err := h.quests.RecommendedQuests(ctx, userID, recommendationLimit)
	if err != nil {
		return nil, internalError(h.logger, "Failed to recommend quests", err)
	}
	return &QuestsOutput{Body: quests}, nil
}

type QuestIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type QuestOutput struct {
	Body models.Quest
}

func (h *QuestHandler) HandleGet(ctx context.Context, input *QuestIDInput) (*QuestOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var quest models.Quest
	if err := h.db.WithContext(ctx).Where("id = ? AND is_active = ?", input.ID, true).First(&quest).Error; err != nil {
		return nil, huma.Error404NotFound("Quest not found.")
	}
	return &QuestOutput{Body: quest}, nil
}

type StartQuestInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		MoodBefore *int `json:"mood_before,omitempty" minimum:"1" maximum:"5" doc:"Mood before starting, 1-5"`
	}
}

type UserQuestOutput struct {
	Status int
	Body   models.UserQuest
}

// HandleStart returns the caller's open attempt at the quest (200) or starts a new one (201).
func (h *QuestHandler) HandleStart(ctx context.Context, input *StartQuestInput) (*UserQuestOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	return h.start(ctx, userID, input.ID, input.Body.MoodBefore)
}

type CreateUserQuestInput struct {
	auth.AuthInput
	Body struct {
		QuestID    uint `json:"quest_id" required:"true"`
		MoodBefore *int `json:"mood_before,omitempty" minimum:"1" maximum:"5"`
	}
}

func (h *QuestHandler) HandleCreateUserQuest(ctx context.Context, input *CreateUserQuestInput) (*UserQuestOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	return h.start(ctx, userID, input.Body.QuestID, input.Body.MoodBefore)
}

func (h *QuestHandler) start(ctx context.Context, userID, questID uint, moodBefore *int) (*UserQuestOutput, error) {
	if !validMood(moodBefore, 5) {
		return nil, huma.Error400BadRequest("Mood must be between 1 and 5")
	}

	userQuest, created, err := h.quests.StartQuest(ctx, userID, questID, moodBefore)
	if errors.Is(err, gamification.ErrNotFound) {
		return nil, huma.Error404NotFound("Quest not found.")
	}
	if err != nil {
		return nil, internalError(h.logger, "Failed to start quest", err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return &UserQuestOutput{Status: status, Body: *userQuest}, nil
}

type ListUserQuestsInput struct {
	auth.AuthInput
	Status string `query:"status" enum:"active,completed,recent" doc:"active, completed, or recent (completed in the last 7 days)"`
}

type UserQuestsOutput struct {
	Body []models.UserQuest
}

func (h *QuestHandler) HandleListUserQuests(ctx context.Context, input *ListUserQuestsInput) (*UserQuestsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Preload("Quest").Where("user_id = ?", userID)
	switch input.Status {
	case "active":
		q = q.Where("is_completed = ?", false)
	case "completed":
		q = q.Where("is_completed = ?", true)
	case "recent":
		q = q.Where("is_completed = ? AND completed_at >= ?", true, time.Now().AddDate(0, 0, -7))
	}

	userQuests := []models.UserQuest{}
	if err := q.Order("started_at desc").Find(&userQuests).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list quests", err)
	}
	return &UserQuestsOutput{Body: userQuests}, nil
}

type CompleteQuestInput struct {
	auth.AuthInput
	ID   uint `path:"id" doc:"User quest ID"`
	Body struct {
		Reflection string `json:"reflection,omitempty"`
		MoodAfter  *int   `json:"mood_after,omitempty" minimum:"1" maximum:"5"`
	}
}

type CompleteQuestOutput struct {
	Body struct {
		UserQuest    models.UserQuest     `json:"user_quest"`
		PointsEarned int                  `json:"points_earned"`
		Points       models.UserPoints    `json:"points"`
		Achievements []models.Achievement `json:"new_achievements"`
	}
}

func (h *QuestHandler) HandleComplete(ctx context.Context, input *CompleteQuestInput) (*CompleteQuestOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if !validMood(input.Body.MoodAfter, 5) {
		return nil, huma.Error400BadRequest("Mood must be between 1 and 5")
	}

	result, err := h.quests.CompleteQuest(ctx, userID, input.ID, input.Body.Reflection, input.Body.MoodAfter)
	switch {
	case errors.Is(err, gamification.ErrNotFound):
		return nil, huma.Error404NotFound("Quest not found.")
	case errors.Is(err, gamification.ErrAlreadyCompleted):
		return nil, huma.Error400BadRequest("Quest already completed.")
	case err != nil:
		return nil, internalError(h.logger, "Failed to complete quest", err)
	}

	if len(result.Unlocked) > 0 {
		var user models.User
		if err := h.db.WithContext(ctx).First(&user, userID).Error; err == nil {
			if err := h.notifier.NotifyAchievementsUnlocked(user, result.Unlocked); err != nil {
				h.logger.Warn("Failed to send achievement notification", zap.Uint("user_id", userID), zap.Error(err))
			}
		}
	}

	res := &CompleteQuestOutput{}
	res.Body.UserQuest = result.UserQuest
	res.Body.PointsEarned = result.PointsEarned
	res.Body.Points = result.Points
	res.Body.Achievements = result.Unlocked
	if res.Body.Achievements == nil {
		res.Body.Achievements = []models.Achievement{}
	}
	return res, nil
}

type StreakOutput struct {
	Body struct {
		CurrentStreak      int     `json:"current_streak"`
		LongestStreak      int     `json:"longest_streak"`
		LastCompletionDate *string `json:"last_completion_date"`
		CompletedToday     bool    `json:"completed_today"`
		DaysUntilNextLevel int     `json:"days_until_next_level"`
		NextLevelName      string  `json:"next_level_name"`
	}
}

func (h *QuestHandler) HandleStreak(ctx context.Context, input *auth.AuthInput) (*StreakOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	streak, err := h.quests.Streak(ctx, userID)
	if err != nil {
		return nil, internalError(h.logger, "Failed to calculate streak", err)
	}

	res := &StreakOutput{}
	res.Body.CurrentStreak = streak.CurrentStreak
	res.Body.LongestStreak = streak.LongestStreak
	res.Body.CompletedToday = streak.CompletedToday
	res.Body.DaysUntilNextLevel = streak.DaysUntilNextLevel
	res.Body.NextLevelName = streak.NextLevelName
	if streak.LastCompletionDate != nil {
		date := streak.LastCompletionDate.Format(time.DateOnly)
		res.Body.LastCompletionDate = &date
	}
	return res, nil
}

type CompletedDatesOutput struct {
	Body struct {
		Dates []string `json:"dates"`
	}
}

func (h *QuestHandler) HandleCompletedDates(ctx context.Context, input *auth.AuthInput) (*CompletedDatesOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	dates, err := h.quests.CompletedDates(ctx, userID)
	if err != nil {
		return nil, internalError(h.logger, "Failed to list completion dates", err)
	}
	res := &CompletedDatesOutput{}
	res.Body.Dates = dates
	if res.Body.Dates == nil {
		res.Body.Dates = []string{}
	}
	return res, nil
}
