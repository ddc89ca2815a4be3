package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gdg-garage/mental-health-partner-api/internal/database"
	"github.com/gdg-garage/mental-health-partner-api/internal/llm"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeProvider struct {
	reply    string
	err      error
	requests []llm.Request
}

func (f *fakeProvider) Complete(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func setupConversation(t *testing.T, provider llm.Provider) (*gorm.DB, *Orchestrator, *models.Conversation) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)

	user := models.User{Email: "alex@example.com", Username: "alex"}
	require.NoError(t, db.Create(&user).Error)
	conv := &models.Conversation{UserID: user.ID, Title: "Evening check-in"}
	require.NoError(t, db.Create(conv).Error)

	return db, NewOrchestrator(db, provider, zap.NewNop()), conv
}

func TestCheckMessage(t *testing.T) {
	tests := []struct {
		message string
		safe    bool
	}{
		{"I had a long day at work", true},
		{"Sometimes I think about SUICIDE", false},
		{"I don't want to live like this", false},
		{"I want to hurt myself", false},
		{"thinking about self harm again", false},
		{"I could kill myself laughing at that", false},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			safe, reply := CheckMessage(tt.message)
			assert.Equal(t, tt.safe, safe)
			if !tt.safe {
				assert.Equal(t, CrisisResponse, reply)
			} else {
				assert.Empty(t, reply)
			}
		})
	}
}

func TestCheckResponse(t *testing.T) {
	reply, ok := CheckResponse("That sounds tough.", "hi")
	assert.True(t, ok)
	assert.Equal(t, "That sounds tough.", reply)

	reply, ok = CheckResponse("  ", "hi")
	assert.False(t, ok)
	assert.Equal(t, "I'm having trouble generating a response.", reply)
}

func TestSendMessage_CrisisSkipsProvider(t *testing.T) {
	provider := &fakeProvider{reply: "should not be used"}
	db, o, conv := setupConversation(t, provider)

	userMsg, aiMsg, err := o.SendMessage(context.Background(), conv, "I want to end my life")
	require.NoError(t, err)

	assert.Empty(t, provider.requests)
	assert.Equal(t, models.SenderUser, userMsg.Sender)
	assert.Equal(t, models.SenderAI, aiMsg.Sender)
	assert.Equal(t, CrisisResponse, aiMsg.Content)
	assert.Contains(t, aiMsg.Content, "988")

	var count int64
	db.Model(&models.Message{}).Where("conversation_id = ?", conv.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestSendMessage_ProviderReply(t *testing.T) {
	provider := &fakeProvider{reply: "What made today feel heavy?"}
	_, o, conv := setupConversation(t, provider)

	_, aiMsg, err := o.SendMessage(context.Background(), conv, "Today was heavy")
	require.NoError(t, err)
	assert.Equal(t, "What made today feel heavy?", aiMsg.Content)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "Today was heavy"}, req.Messages[1])
	assert.InDelta(t, 0.7, req.Temperature, 1e-6)
	assert.InDelta(t, 0.9, req.TopP, 1e-6)
	assert.Equal(t, 350, req.MaxTokens)
}

func TestSendMessage_ProviderFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Timeout", &llm.Error{Kind: llm.KindTimeout, Err: context.DeadlineExceeded}, fallbackResponse},
		{"ServerError", &llm.Error{Kind: llm.KindHTTPError, StatusCode: 500, Err: errors.New("boom")}, fallbackResponse},
		{"Malformed", &llm.Error{Kind: llm.KindMalformedResponse, Err: errors.New("no choices")}, fallbackResponse},
		{"Untyped", errors.New("something odd"), fallbackResponse},
		{"RateLimited", &llm.Error{Kind: llm.KindRateLimited, StatusCode: 429, Err: errors.New("slow down")}, rateLimitedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, o, conv := setupConversation(t, &fakeProvider{err: tt.err})

			userMsg, aiMsg, err := o.SendMessage(context.Background(), conv, "hello")
			require.NoError(t, err)
			assert.Equal(t, "hello", userMsg.Content)
			assert.Equal(t, tt.want, aiMsg.Content)
			assert.Equal(t, models.SenderAI, aiMsg.Sender)
		})
	}
}

func TestSendMessage_HistoryWindow(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	db, o, conv := setupConversation(t, provider)

	for i := range 10 {
		sender := models.SenderUser
		if i%2 == 1 {
			sender = models.SenderAI
		}
		require.NoError(t, db.Create(&models.Message{
			ConversationID: conv.ID,
			Content:        fmt.Sprintf("message %d", i),
			Sender:         sender,
		}).Error)
	}

	_, _, err := o.SendMessage(context.Background(), conv, "latest")
	require.NoError(t, err)

	require.Len(t, provider.requests, 1)
	msgs := provider.requests[0].Messages
	require.Len(t, msgs, 1+HistoryWindow+1)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, "message 4", msgs[1].Content)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, "message 9", msgs[6].Content)
	assert.Equal(t, llm.RoleAssistant, msgs[6].Role)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "latest"}, msgs[7])

	for _, m := range msgs[1:7] {
		assert.NotEqual(t, "latest", m.Content)
	}
}

func TestSendMessage_TouchesConversation(t *testing.T) {
	db, o, conv := setupConversation(t, &fakeProvider{reply: "hi"})
	before := conv.UpdatedAt

	_, aiMsg, err := o.SendMessage(context.Background(), conv, "hello")
	require.NoError(t, err)

	var stored models.Conversation
	require.NoError(t, db.First(&stored, conv.ID).Error)
	assert.False(t, stored.UpdatedAt.Before(before))
	assert.False(t, stored.UpdatedAt.Before(aiMsg.CreatedAt))
}

func TestSendMessage_ReplyRolledBackWhenTouchFails(t *testing.T) {
	db, o, conv := setupConversation(t, &fakeProvider{reply: "Tell me more."})
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_conversation_touch", func(tx *gorm.DB) {
		if tx.Statement.Table == "conversations" {
			tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)

	_, _, err = o.SendMessage(context.Background(), conv, "hello")
	require.Error(t, err)

	var replies int64
	require.NoError(t, db.Model(&models.Message{}).Where("conversation_id = ? AND sender = ?", conv.ID, models.SenderAI).Count(&replies).Error)
	assert.Equal(t, int64(0), replies)
}
