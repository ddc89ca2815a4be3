package models

import "gorm.io/gorm"

type Mood struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index"`
	Score  int    `json:"score"` // 1-10
	Note   string `json:"note"`
}

type Journal struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	MoodScore *int   `json:"mood_score"` // 1-10
	MoodNote  string `json:"mood_note"`
}
