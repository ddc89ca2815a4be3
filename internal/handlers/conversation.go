package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/conversation"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ConversationHandler struct {
	db           *gorm.DB
	orchestrator *conversation.Orchestrator
	authHandler  *auth.AuthHandler
	logger       *zap.Logger
}

func NewConversationHandler(db *gorm.DB, orchestrator *conversation.Orchestrator, authHandler *auth.AuthHandler, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{db: db, orchestrator: orchestrator, authHandler: authHandler, logger: logger}
}

type ConversationSummary struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	MessageCount int64           `json:"message_count"`
	LastMessage  *models.Message `json:"last_message"`
}

type ListConversationsOutput struct {
	Body []ConversationSummary
}

func (h *ConversationHandler) HandleList(ctx context.Context, input *auth.AuthInput) (*ListConversationsOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var conversations []models.Conversation
	if err := db.Where("user_id = ?", userID).Order("updated_at desc").Find(&conversations).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list conversations", err)
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, c := range conversations {
		s := ConversationSummary{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
		if err := db.Model(&models.Message{}).Where("conversation_id = ?", c.ID).Count(&s.MessageCount).Error; err != nil {
			return nil, internalError(h.logger, "Failed to list conversations", err)
		}
		if s.MessageCount > 0 {
			var last models.Message
			if err := db.Where("conversation_id = ?", c.ID).Order("created_at desc, id desc").First(&last).Error; err == nil {
				s.LastMessage = &last
			}
		}
		summaries = append(summaries, s)
	}
	return &ListConversationsOutput{Body: summaries}, nil
}

type CreateConversationInput struct {
	auth.AuthInput
	Body struct {
		Title string `json:"title,omitempty" maxLength:"255"`
	}
}

type ConversationOutput struct {
	Body models.Conversation
}

func (h *ConversationHandler) HandleCreate(ctx context.Context, input *CreateConversationInput) (*ConversationOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Body.Title)
	if title == "" {
		title = "New conversation"
	}
	conv := models.Conversation{UserID: userID, Title: title}
	if err := h.db.WithContext(ctx).Create(&conv).Error; err != nil {
		return nil, internalError(h.logger, "Failed to create conversation", err)
	}
	conv.Messages = []models.Message{}
	return &ConversationOutput{Body: conv}, nil
}

type ConversationIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

// owned loads the conversation if it belongs to userID. Other users' conversations are not found.
func (h *ConversationHandler) owned(ctx context.Context, userID, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := h.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("Conversation not found")
	}
	if err != nil {
		return nil, internalError(h.logger, "Failed to load conversation", err)
	}
	return &conv, nil
}

func (h *ConversationHandler) HandleGet(ctx context.Context, input *ConversationIDInput) (*ConversationOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	conv, err := h.owned(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	conv.Messages = []models.Message{}
	if err := h.db.WithContext(ctx).Where("conversation_id = ?", conv.ID).Order("created_at, id").Find(&conv.Messages).Error; err != nil {
		return nil, internalError(h.logger, "Failed to load messages", err)
	}
	return &ConversationOutput{Body: *conv}, nil
}

type UpdateConversationInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Title string `json:"title" minLength:"1" maxLength:"255" required:"true"`
	}
}

func (h *ConversationHandler) HandleUpdate(ctx context.Context, input *UpdateConversationInput) (*ConversationOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	conv, err := h.owned(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Body.Title)
	if title == "" {
		return nil, huma.Error400BadRequest("Title is required")
	}
	if err := h.db.WithContext(ctx).Model(conv).Update("title", title).Error; err != nil {
		return nil, internalError(h.logger, "Failed to update conversation", err)
	}
	conv.Title = title
	return &ConversationOutput{Body: *conv}, nil
}

func (h *ConversationHandler) HandleDelete(ctx context.Context, input *ConversationIDInput) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	conv, err := h.owned(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", conv.ID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(conv).Error
	})
	if err != nil {
		return nil, internalError(h.logger, "Failed to delete conversation", err)
	}
	return nil, nil
}

type SendMessageInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Content string `json:"content" minLength:"1" maxLength:"4000" required:"true"`
	}
}

type SendMessageOutput struct {
	Body struct {
		UserMessage models.Message `json:"user_message"`
		AIMessage   models.Message `json:"ai_message"`
	}
}

func (h *ConversationHandler) HandleSendMessage(ctx context.Context, input *SendMessageInput) (*SendMessageOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	conv, err := h.owned(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(input.Body.Content)
	if content == "" {
		return nil, huma.Error400BadRequest("Message content is required")
	}

	userMessage, aiMessage, err := h.orchestrator.SendMessage(ctx, conv, content)
	if err != nil {
		return nil, internalError(h.logger, "An error occurred while processing your message", err)
	}

	res := &SendMessageOutput{}
	res.Body.UserMessage = *userMessage
	res.Body.AIMessage = *aiMessage
	return res, nil
}
