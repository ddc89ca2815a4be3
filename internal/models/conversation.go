package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

type Conversation struct {
	gorm.Model
	UserID   uint      `json:"user_id" gorm:"index"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages,omitempty"`
}

// Message is immutable once written.
type Message struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID uint      `json:"conversation_id" gorm:"index"`
	Content        string    `json:"content"`
	Sender         string    `json:"sender"`
	SentimentScore *float64  `json:"sentiment_score"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}
