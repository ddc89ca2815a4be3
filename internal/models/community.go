package models

import (
	"time"

	"gorm.io/gorm"
)

type DiscussionGroup struct {
	gorm.Model
	Name        string `json:"name"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	Description string `json:"description"`
	TopicType   string `json:"topic_type" gorm:"index"`
	IsModerated bool   `json:"is_moderated"`
}

type DiscussionGroupMembership struct {
	ID                uint      `gorm:"primaryKey"`
	UserID            uint      `gorm:"uniqueIndex:idx_group_member"`
	DiscussionGroupID uint      `gorm:"uniqueIndex:idx_group_member"`
	IsAnonymous       bool
	JoinedAt          time.Time `gorm:"autoCreateTime"`
}

type ForumThread struct {
	gorm.Model
	Title             string          `json:"title"`
	DiscussionGroupID uint            `json:"discussion_group_id" gorm:"index"`
	DiscussionGroup   DiscussionGroup `json:"-"`
	CreatedByID       *uint           `json:"-"`
	CreatedBy         *User           `json:"-"`
	IsAnonymous       bool            `json:"is_anonymous"`
	IsPinned          bool            `json:"is_pinned"`
	IsLocked          bool            `json:"is_locked"`
}

type ForumPost struct {
	gorm.Model
	ThreadID    uint   `json:"thread_id" gorm:"index"`
	Content     string `json:"content"`
	AuthorID    *uint  `json:"-"`
	Author      *User  `json:"-"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type Encouragement struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	PostID            uint      `json:"post_id" gorm:"uniqueIndex:idx_post_encouragement"`
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_post_encouragement"`
	EncouragementType string    `json:"encouragement_type" gorm:"default:support"`
	CreatedAt         time.Time `json:"created_at"`
}

type CommunityChallenge struct {
	gorm.Model
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Goal          string    `json:"goal"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	CreatedByID   *uint     `json:"-"`
	IsActive      bool      `json:"is_active"`
	ChallengeType string    `json:"challenge_type" gorm:"index"`
}

type ChallengeParticipation struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ChallengeID    uint       `json:"challenge_id" gorm:"uniqueIndex:idx_challenge_user"`
	UserID         uint       `json:"user_id" gorm:"uniqueIndex:idx_challenge_user"`
	JoinedAt       time.Time  `json:"joined_at" gorm:"autoCreateTime"`
	Completed      bool       `json:"completed"`
	CompletionDate *time.Time `json:"completion_date"`
}

type SuccessStory struct {
	gorm.Model
	Title       string `json:"title"`
	Content     string `json:"content"`
	AuthorID    *uint  `json:"-"`
	Author      *User  `json:"-"`
	IsAnonymous bool   `json:"is_anonymous"`
	IsApproved  bool   `json:"is_approved" gorm:"index"`
	Category    string `json:"category" gorm:"index"`
}

type StoryEncouragement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"story_id" gorm:"uniqueIndex:idx_story_encouragement"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_story_encouragement"`
	CreatedAt time.Time `json:"created_at"`
}

// All returns every model for migration.
func All() []any {
	return []any{
		&User{}, &APIKey{},
		&Quest{}, &UserQuest{}, &Achievement{}, &UserAchievement{},
		&Reward{}, &UserReward{}, &UserPoints{}, &PointLedger{},
		&Conversation{}, &Message{},
		&Mood{}, &Journal{},
		&DiscussionGroup{}, &DiscussionGroupMembership{}, &ForumThread{}, &ForumPost{}, &Encouragement{},
		&CommunityChallenge{}, &ChallengeParticipation{}, &SuccessStory{}, &StoryEncouragement{},
	}
}
