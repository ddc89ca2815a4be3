// Package conversation produces partner replies for user messages, screening for crisis
// language before any provider is involved.
package conversation

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gdg-garage/mental-health-partner-api/internal/llm"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HistoryWindow is the number of earlier messages sent to the provider with a new message.
const HistoryWindow = 6

const (
	rateLimitedResponse = "I'm currently unavailable due to high demand. Please try again later."
	fallbackResponse    = "I'm having trouble generating a response. Please try again."
)

var systemPrompt = strings.Join([]string{
	"You are a supportive mental health partner. Follow these guidelines:",
	"1. Practice active listening and validate the user's feelings.",
	"2. Ask open-ended questions to help the user explore their thoughts.",
	"3. Suggest evidence-based coping strategies when appropriate.",
	"4. Never diagnose conditions or prescribe medication.",
	"5. Recommend professional help when the user's needs go beyond peer support.",
	"6. Keep replies concise, two or three sentences.",
	"7. Use simple, warm language.",
	"8. If the user appears to be in crisis, share emergency contacts and urge them to reach out immediately.",
}, "\n")

type Orchestrator struct {
	db       *gorm.DB
	provider llm.Provider
	logger   *zap.Logger
}

func NewOrchestrator(db *gorm.DB, provider llm.Provider, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{db: db, provider: provider, logger: logger}
}

// SendMessage stores the user's message, produces a reply and stores it as well.
// Provider failures are turned into canned replies; only storage failures are returned.
func (o *Orchestrator) SendMessage(ctx context.Context, conv *models.Conversation, content string) (*models.Message, *models.Message, error) {
	db := o.db.WithContext(ctx)

	userMessage := models.Message{
		ConversationID: conv.ID,
		Content:        content,
		Sender:         models.SenderUser,
	}
	if err := db.Create(&userMessage).Error; err != nil {
		return nil, nil, fmt.Errorf("save user message: %w", err)
	}

	reply, err := o.reply(ctx, conv, userMessage)
	if err != nil {
		return nil, nil, err
	}

	aiMessage := models.Message{
		ConversationID: conv.ID,
		Content:        reply,
		Sender:         models.SenderAI,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&aiMessage).Error; err != nil {
			return fmt.Errorf("save reply: %w", err)
		}
		if err := tx.Model(conv).Update("updated_at", aiMessage.CreatedAt).Error; err != nil {
			return fmt.Errorf("touch conversation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &userMessage, &aiMessage, nil
}

func (o *Orchestrator) reply(ctx context.Context, conv *models.Conversation, userMessage models.Message) (string, error) {
	if safe, crisisReply := CheckMessage(userMessage.Content); !safe {
		o.logger.Warn("Crisis language detected", zap.Uint("conversation_id", conv.ID))
		return crisisReply, nil
	}

	history, err := o.history(ctx, conv.ID, userMessage.ID)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}
	messages := BuildPrompt(history, userMessage.Content)

	generated, err := o.provider.Complete(ctx, llm.DefaultRequest(messages))
	if err != nil {
		kind := llm.KindOf(err)
		o.logger.Error("Provider failed",
			zap.Uint("conversation_id", conv.ID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		if kind == llm.KindRateLimited {
			return rateLimitedResponse, nil
		}
		return fallbackResponse, nil
	}

	screened, _ := CheckResponse(generated, userMessage.Content)
	return screened, nil
}

// history returns up to HistoryWindow messages written before exclude, oldest first.
func (o *Orchestrator) history(ctx context.Context, conversationID, exclude uint) ([]models.Message, error) {
	var recent []models.Message
	err := o.db.WithContext(ctx).
		Where("conversation_id = ? AND id <> ?", conversationID, exclude).
		Order("created_at desc, id desc").
		Limit(HistoryWindow).
		Find(&recent).Error
	if err != nil {
		return nil, err
	}
	slices.Reverse(recent)
	return recent, nil
}

// BuildPrompt assembles the provider messages: system instruction, prior history, new message.
func BuildPrompt(history []models.Message, content string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, m := range history {
		role := llm.RoleUser
		if m.Sender == models.SenderAI {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	return append(messages, llm.Message{Role: llm.RoleUser, Content: content})
}
