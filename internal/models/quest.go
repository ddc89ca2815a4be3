package models

import (
	"time"

	"gorm.io/gorm"
)

type QuestCategory string

const (
	CategoryCBT         QuestCategory = "cbt"
	CategoryMindfulness QuestCategory = "mindfulness"
	CategoryActivity    QuestCategory = "activity"
	CategorySocial      QuestCategory = "social"
	CategoryGratitude   QuestCategory = "gratitude"
)

var questCategoryNames = map[QuestCategory]string{
	CategoryCBT:         "Cognitive Behavioral Therapy",
	CategoryMindfulness: "Mindfulness",
	CategoryActivity:    "Physical Activity",
	CategorySocial:      "Social Connection",
	CategoryGratitude:   "Gratitude Practice",
}

// QuestCategories lists the categories in display order.
func QuestCategories() []QuestCategory {
	return []QuestCategory{CategoryCBT, CategoryMindfulness, CategoryActivity, CategorySocial, CategoryGratitude}
}

func (c QuestCategory) Valid() bool {
	_, ok := questCategoryNames[c]
	return ok
}

func (c QuestCategory) DisplayName() string {
	return questCategoryNames[c]
}

type Quest struct {
	gorm.Model
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Category        QuestCategory `json:"category" gorm:"index;default:mindfulness"`
	Points          int           `json:"points" gorm:"default:10"`
	DurationMinutes int           `json:"duration_minutes" gorm:"default:5"`
	Instructions    string        `json:"instructions"`
	Difficulty      int           `json:"difficulty" gorm:"default:1"` // 1-5
	IsActive        bool          `json:"is_active"`
}

// UserQuest is one attempt of a user at a quest. It is completed at most once.
type UserQuest struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index:idx_user_quest_state"`
	QuestID     uint       `json:"quest_id" gorm:"index:idx_user_quest_state"`
	Quest       Quest      `json:"quest"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at" gorm:"index"`
	IsCompleted bool       `json:"is_completed" gorm:"index:idx_user_quest_state"`
	Reflection  string     `json:"reflection"`
	MoodBefore  *int       `json:"mood_before"` // 1-5
	MoodAfter   *int       `json:"mood_after"`  // 1-5
}
