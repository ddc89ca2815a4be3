package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WellbeingHandler serves mood entries, journals and the analytics built on them.
type WellbeingHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	logger      *zap.Logger
}

func NewWellbeingHandler(db *gorm.DB, authHandler *auth.AuthHandler, logger *zap.Logger) *WellbeingHandler {
	return &WellbeingHandler{db: db, authHandler: authHandler, logger: logger}
}

type MoodsOutput struct {
	Body []models.Mood
}

func (h *WellbeingHandler) HandleListMoods(ctx context.Context, input *auth.AuthInput) (*MoodsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	moods := []models.Mood{}
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&moods).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list moods", err)
	}
	return &MoodsOutput{Body: moods}, nil
}

type MoodBody struct {
	Score int    `json:"score" minimum:"1" maximum:"10" required:"true"`
	Note  string `json:"note,omitempty"`
}

type CreateMoodInput struct {
	auth.AuthInput
	Body MoodBody
}

type MoodOutput struct {
	Body models.Mood
}

func (h *WellbeingHandler) HandleCreateMood(ctx context.Context, input *CreateMoodInput) (*MoodOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if input.Body.Score < 1 || input.Body.Score > 10 {
		return nil, huma.Error400BadRequest("Score must be between 1 and 10")
	}

	mood := models.Mood{UserID: userID, Score: input.Body.Score, Note: input.Body.Note}
	if err := h.db.WithContext(ctx).Create(&mood).Error; err != nil {
		return nil, internalError(h.logger, "Failed to save mood", err)
	}
	return &MoodOutput{Body: mood}, nil
}

type MoodIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *WellbeingHandler) ownedMood(ctx context.Context, userID, id uint) (*models.Mood, error) {
	var mood models.Mood
	err := h.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&mood).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("Mood not found")
	}
	if err != nil {
		return nil, internalError(h.logger, "Failed to load mood", err)
	}
	return &mood, nil
}

func (h *WellbeingHandler) HandleGetMood(ctx context.Context, input *MoodIDInput) (*MoodOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	mood, err := h.ownedMood(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &MoodOutput{Body: *mood}, nil
}

type UpdateMoodInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body MoodBody
}

func (h *WellbeingHandler) HandleUpdateMood(ctx context.Context, input *UpdateMoodInput) (*MoodOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if input.Body.Score < 1 || input.Body.Score > 10 {
		return nil, huma.Error400BadRequest("Score must be between 1 and 10")
	}
	mood, err := h.ownedMood(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	mood.Score = input.Body.Score
	mood.Note = input.Body.Note
	if err := h.db.WithContext(ctx).Save(mood).Error; err != nil {
		return nil, internalError(h.logger, "Failed to update mood", err)
	}
	return &MoodOutput{Body: *mood}, nil
}

func (h *WellbeingHandler) HandleDeleteMood(ctx context.Context, input *MoodIDInput) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	mood, err := h.ownedMood(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Delete(mood).Error; err != nil {
		return nil, internalError(h.logger, "Failed to delete mood", err)
	}
	return nil, nil
}

type JournalsOutput struct {
	Body []models.Journal
}

func (h *WellbeingHandler) HandleListJournals(ctx context.Context, input *auth.AuthInput) (*JournalsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	journals := []models.Journal{}
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&journals).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list journals", err)
	}
	return &JournalsOutput{Body: journals}, nil
}

type JournalBody struct {
	Title     string `json:"title" maxLength:"200" required:"true"`
	Content   string `json:"content" required:"true"`
	MoodScore *int   `json:"mood_score,omitempty" minimum:"1" maximum:"10"`
	MoodNote  string `json:"mood_note,omitempty"`
}

type CreateJournalInput struct {
	auth.AuthInput
	Body JournalBody
}

type JournalOutput struct {
	Body models.Journal
}

func (h *WellbeingHandler) HandleCreateJournal(ctx context.Context, input *CreateJournalInput) (*JournalOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if !validMood(input.Body.MoodScore, 10) {
		return nil, huma.Error400BadRequest("Mood score must be between 1 and 10")
	}

	journal := models.Journal{
		UserID:    userID,
		Title:     input.Body.Title,
		Content:   input.Body.Content,
		MoodScore: input.Body.MoodScore,
		MoodNote:  input.Body.MoodNote,
	}
	if err := h.db.WithContext(ctx).Create(&journal).Error; err != nil {
		return nil, internalError(h.logger, "Failed to save journal", err)
	}
	return &JournalOutput{Body: journal}, nil
}

type JournalIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *WellbeingHandler) ownedJournal(ctx context.Context, userID, id uint) (*models.Journal, error) {
	var journal models.Journal
	err := h.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&journal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("Journal not found")
	}
	if err != nil {
		return nil, internalError(h.logger, "Failed to load journal", err)
	}
	return &journal, nil
}

func (h *WellbeingHandler) HandleGetJournal(ctx context.Context, input *JournalIDInput) (*JournalOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	journal, err := h.ownedJournal(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &JournalOutput{Body: *journal}, nil
}

type UpdateJournalInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body JournalBody
}

func (h *WellbeingHandler) HandleUpdateJournal(ctx context.Context, input *UpdateJournalInput) (*JournalOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if !validMood(input.Body.MoodScore, 10) {
		return nil, huma.Error400BadRequest("Mood score must be between 1 and 10")
	}
	journal, err := h.ownedJournal(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	journal.Title = input.Body.Title
	journal.Content = input.Body.Content
	journal.MoodScore = input.Body.MoodScore
	journal.MoodNote = input.Body.MoodNote
	if err := h.db.WithContext(ctx).Save(journal).Error; err != nil {
		return nil, internalError(h.logger, "Failed to update journal", err)
	}
	return &JournalOutput{Body: *journal}, nil
}

func (h *WellbeingHandler) HandleDeleteJournal(ctx context.Context, input *JournalIDInput) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	journal, err := h.ownedJournal(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	if err := h.db.WithContext(ctx).Delete(journal).Error; err != nil {
		return nil, internalError(h.logger, "Failed to delete journal", err)
	}
	return nil, nil
}

type MoodAnalyticsInput struct {
	auth.AuthInput
	Days int `query:"days" default:"7" minimum:"1" maximum:"365"`
}

type DailyMood struct {
	Date     string  `json:"date"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

type MoodAnalyticsOutput struct {
	Body []DailyMood
}

// HandleMoodAnalytics averages the caller's mood scores per day over the last Days days.
func (h *WellbeingHandler) HandleMoodAnalytics(ctx context.Context, input *MoodAnalyticsInput) (*MoodAnalyticsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	days := input.Days
	if days <= 0 {
		days = 7
	}

	var moods []models.Mood
	err = h.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, time.Now().AddDate(0, 0, -days)).
		Order("created_at").
		Find(&moods).Error
	if err != nil {
		return nil, internalError(h.logger, "Failed to load moods", err)
	}
	return &MoodAnalyticsOutput{Body: dailyMoods(moods)}, nil
}

// dailyMoods groups moods (sorted by creation) by calendar date.
func dailyMoods(moods []models.Mood) []DailyMood {
	days := []DailyMood{}
	totals := []int{}
	for _, m := range moods {
		date := m.CreatedAt.Format(time.DateOnly)
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, DailyMood{Date: date})
			totals = append(totals, 0)
		}
		i := len(days) - 1
		days[i].Count++
		totals[i] += m.Score
	}
	for i := range days {
		days[i].AvgScore = float64(totals[i]) / float64(days[i].Count)
	}
	return days
}

type ActivityOutput struct {
	Body struct {
		ConversationsCount  int64   `json:"conversations_count"`
		MessagesCount       int64   `json:"messages_count"`
		JournalsCount       int64   `json:"journals_count"`
		MoodsCount          int64   `json:"moods_count"`
		ConversationMinutes float64 `json:"conversation_minutes"`
	}
}

func (h *WellbeingHandler) HandleActivity(ctx context.Context, input *auth.AuthInput) (*ActivityOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	res := &ActivityOutput{}
	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&models.Conversation{}).Where("user_id = ?", userID), &res.Body.ConversationsCount},
		{db.Model(&models.Message{}).
			Joins("JOIN conversations ON conversations.id = messages.conversation_id").
			Where("conversations.user_id = ? AND conversations.deleted_at IS NULL", userID), &res.Body.MessagesCount},
		{db.Model(&models.Journal{}).Where("user_id = ?", userID), &res.Body.JournalsCount},
		{db.Model(&models.Mood{}).Where("user_id = ?", userID), &res.Body.MoodsCount},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, internalError(h.logger, "Failed to load activity", err)
		}
	}
	// roughly 30 seconds per message
	res.Body.ConversationMinutes = float64(res.Body.MessagesCount) * 0.5
	return res, nil
}
