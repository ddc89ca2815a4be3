package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StoryResponse struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	Category           string    `json:"category"`
	Author             string    `json:"author"`
	IsAnonymous        bool      `json:"is_anonymous"`
	IsApproved         bool      `json:"is_approved"`
	EncouragementCount int64     `json:"encouragement_count"`
	CreatedAt          time.Time `json:"created_at"`
}

func (h *CommunityHandler) storyResponse(ctx context.Context, s models.SuccessStory) (StoryResponse, error) {
	res := StoryResponse{
		ID:          s.ID,
		Title:       s.Title,
		Content:     s.Content,
		Category:    s.Category,
		Author:      h.displayName(s.Author, s.IsAnonymous),
		IsAnonymous: s.IsAnonymous,
		IsApproved:  s.IsApproved,
		CreatedAt:   s.CreatedAt,
	}
	err := h.db.WithContext(ctx).Model(&models.StoryEncouragement{}).Where("story_id = ?", s.ID).Count(&res.EncouragementCount).Error
	return res, err
}

type ListStoriesInput struct {
	auth.AuthInput
	Category string `query:"category" doc:"Filter by category"`
}

type StoriesOutput struct {
	Body []StoryResponse
}

// HandleListStories lists approved stories only.
func (h *CommunityHandler) HandleListStories(ctx context.Context, input *ListStoriesInput) (*StoriesOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	q := h.db.WithContext(ctx).Preload("Author").Where("is_approved = ?", true).Order("created_at desc")
	if input.Category != "" {
		q = q.Where("category = ?", input.Category)
	}
	var stories []models.SuccessStory
	if err := q.Find(&stories).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list stories", err)
	}

	res := make([]StoryResponse, 0, len(stories))
	for _, s := range stories {
		sr, err := h.storyResponse(ctx, s)
		if err != nil {
			return nil, internalError(h.logger, "Failed to list stories", err)
		}
		res = append(res, sr)
	}
	return &StoriesOutput{Body: res}, nil
}

type CreateStoryInput struct {
	auth.AuthInput
	Body struct {
		Title       string `json:"title" minLength:"1" maxLength:"200" required:"true"`
		Content     string `json:"content" minLength:"1" required:"true"`
		Category    string `json:"category,omitempty"`
		IsAnonymous bool   `json:"is_anonymous,omitempty"`
	}
}

type StoryOutput struct {
	Body StoryResponse
}

// HandleCreateStory stores the story for review; new stories are never approved.
func (h *CommunityHandler) HandleCreateStory(ctx context.Context, input *CreateStoryInput) (*StoryOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if !h.screen.Allow(input.Body.Content) {
		return nil, huma.Error403Forbidden(failedModeration)
	}

	var author models.User
	if err := h.db.WithContext(ctx).First(&author, userID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	story := models.SuccessStory{
		Title:       input.Body.Title,
		Content:     input.Body.Content,
		Category:    input.Body.Category,
		AuthorID:    &userID,
		IsAnonymous: input.Body.IsAnonymous,
		IsApproved:  false,
	}
	if err := h.db.WithContext(ctx).Omit("Author").Create(&story).Error; err != nil {
		return nil, internalError(h.logger, "Failed to create story", err)
	}
	story.Author = &author

	if err := h.notifier.NotifyStorySubmitted(author, story); err != nil {
		h.logger.Warn("Failed to notify moderators", zap.Uint("story_id", story.ID), zap.Error(err))
	}

	res, err := h.storyResponse(ctx, story)
	if err != nil {
		return nil, internalError(h.logger, "Failed to create story", err)
	}
	return &StoryOutput{Body: res}, nil
}

type ToggleStoryEncouragementInput struct {
	auth.AuthInput
	Body struct {
		StoryID uint `json:"story" required:"true"`
	}
}

type StoryToggleOutput struct {
	Status int
	Body   struct {
		Detail        string                     `json:"detail,omitempty"`
		Encouragement *models.StoryEncouragement `json:"encouragement,omitempty"`
	}
}

func (h *CommunityHandler) HandleToggleStoryEncouragement(ctx context.Context, input *ToggleStoryEncouragementInput) (*StoryToggleOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	var story models.SuccessStory
	if err := h.db.WithContext(ctx).Where("id = ? AND is_approved = ?", input.Body.StoryID, true).First(&story).Error; err != nil {
		return nil, huma.Error404NotFound("Story not found")
	}

	res := &StoryToggleOutput{}
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx.Where("story_id = ? AND user_id = ?", story.ID, userID).Delete(&models.StoryEncouragement{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected > 0 {
			res.Status = http.StatusOK
			res.Body.Detail = "Encouragement removed."
			return nil
		}

		enc := models.StoryEncouragement{StoryID: story.ID, UserID: userID}
		if err := tx.Create(&enc).Error; err != nil {
			return err
		}
		res.Status = http.StatusCreated
		res.Body.Encouragement = &enc
		return nil
	})
	if err != nil {
		return nil, internalError(h.logger, "Failed to toggle encouragement", err)
	}
	return res, nil
}
