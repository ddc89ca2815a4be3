package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyCompleted   = errors.New("quest already completed")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrInvalidAmount      = errors.New("points amount must not be negative")
)

// Service runs quest completion, achievement unlocking and the points economy.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger, now: time.Now}
}

// WithClock replaces the service clock. Used by tests to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Completion is the outcome of completing a UserQuest.
type Completion struct {
	UserQuest    models.UserQuest
	PointsEarned int
	Points       models.UserPoints
	Unlocked     []models.Achievement
}

// StartQuest returns the user's in-progress attempt at questID, creating one when none exists.
// The boolean reports whether a new attempt was created.
func (s *Service) StartQuest(ctx context.Context, userID, questID uint, moodBefore *int) (*models.UserQuest, bool, error) {
	var quest models.Quest
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", questID, true).First(&quest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var userQuest models.UserQuest
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND quest_id = ? AND is_completed = ?", userID, questID, false).
		Order("started_at desc").
		First(&userQuest).Error
	if err == nil {
		userQuest.Quest = quest
		return &userQuest, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	userQuest = models.UserQuest{
		UserID:     userID,
		QuestID:    questID,
		StartedAt:  s.now(),
		MoodBefore: moodBefore,
	}
	if err := s.db.WithContext(ctx).Create(&userQuest).Error; err != nil {
		return nil, false, err
	}
	userQuest.Quest = quest
	return &userQuest, true, nil
}

// CompleteQuest marks the attempt completed, unlocks achievements and awards the quest's
// points, all in one transaction. A completed attempt yields ErrAlreadyCompleted and no change.
func (s *Service) CompleteQuest(ctx context.Context, userID, userQuestID uint, reflection string, moodAfter *int) (*Completion, error) {
	var result Completion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userQuest models.UserQuest
		if err := tx.Preload("Quest").Where("id = ? AND user_id = ?", userQuestID, userID).First(&userQuest).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if userQuest.IsCompleted {
			return ErrAlreadyCompleted
		}

		now := s.now()
		res := tx.Model(&models.UserQuest{}).
			Where("id = ? AND is_completed = ?", userQuest.ID, false).
			Updates(map[string]any{
				"completed_at": now,
				"is_completed": true,
				"reflection":   reflection,
				"mood_after":   moodAfter,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// lost a race with a concurrent completion
			return ErrAlreadyCompleted
		}
		userQuest.CompletedAt = &now
		userQuest.IsCompleted = true
		userQuest.Reflection = reflection
		userQuest.MoodAfter = moodAfter

		unlocked, err := s.unlockAchievements(tx, userID, userQuest.Quest.Category)
		if err != nil {
			return fmt.Errorf("unlock achievements: %w", err)
		}

		points, err := s.awardPoints(tx, userID, userQuest.Quest.Points, fmt.Sprintf("user_quest:%d", userQuest.ID))
		if err != nil {
			return fmt.Errorf("award points: %w", err)
		}

		result = Completion{
			UserQuest:    userQuest,
			PointsEarned: userQuest.Quest.Points,
			Points:       *points,
			Unlocked:     unlocked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quest completed",
		zap.Uint("user_id", userID),
		zap.Uint("user_quest_id", userQuestID),
		zap.Int("points", result.PointsEarned),
		zap.Int("unlocked", len(result.Unlocked)))
	return &result, nil
}

// Streak computes the user's streak as of the service clock.
func (s *Service) Streak(ctx context.Context, userID uint) (StreakInfo, error) {
	completions, err := completionTimes(s.db.WithContext(ctx), userID)
	if err != nil {
		return StreakInfo{}, err
	}
	return CalculateStreak(completions, s.now()), nil
}

// CompletedDates lists the distinct days on which the user completed a quest.
func (s *Service) CompletedDates(ctx context.Context, userID uint) ([]string, error) {
	completions, err := completionTimes(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return CompletedDates(completions, s.now().Location()), nil
}

func completionTimes(db *gorm.DB, userID uint) ([]time.Time, error) {
	var completed []models.UserQuest
	err := db.Select("id", "completed_at").
		Where("user_id = ? AND is_completed = ? AND completed_at IS NOT NULL", userID, true).
		Order("completed_at desc").
		Find(&completed).Error
	if err != nil {
		return nil, err
	}

	completions := make([]time.Time, 0, len(completed))
	for _, uq := range completed {
		completions = append(completions, *uq.CompletedAt)
	}
	return completions, nil
}

// unlockAchievements runs the category-count and streak-length checks and grants every
// achievement whose threshold is met and which the user does not hold yet.
func (s *Service) unlockAchievements(tx *gorm.DB, userID uint, category models.QuestCategory) ([]models.Achievement, error) {
	var categoryCount int64
	err := tx.Model(&models.UserQuest{}).
		Joins("JOIN quests ON quests.id = user_quests.quest_id").
		Where("user_quests.user_id = ? AND user_quests.is_completed = ? AND quests.category = ?", userID, true, category).
		Count(&categoryCount).Error
	if err != nil {
		return nil, err
	}

	completions, err := completionTimes(tx, userID)
	if err != nil {
		return nil, err
	}
	streak := CalculateStreak(completions, s.now()).CurrentStreak

	var byCategory []models.Achievement
	err = tx.Where("is_active = ? AND unlock_kind = ? AND category = ? AND required_count <= ?",
		true, models.UnlockCategoryCount, category, categoryCount).
		Order("id").Find(&byCategory).Error
	if err != nil {
		return nil, err
	}

	var byStreak []models.Achievement
	err = tx.Where("is_active = ? AND unlock_kind = ? AND required_count <= ?",
		true, models.UnlockStreakLength, streak).
		Order("id").Find(&byStreak).Error
	if err != nil {
		return nil, err
	}

	var unlocked []models.Achievement
	for _, achievement := range append(byCategory, byStreak...) {
		granted, err := s.grant(tx, userID, achievement.ID)
		if err != nil {
			return nil, err
		}
		if granted {
			unlocked = append(unlocked, achievement)
		}
	}
	return unlocked, nil
}

// grant inserts the UserAchievement unless it already exists.
func (s *Service) grant(tx *gorm.DB, userID, achievementID uint) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		EarnedAt:      s.now(),
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
