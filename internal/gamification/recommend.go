package gamification

import (
	"context"

	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"gorm.io/gorm"
)

const preferredCategoryPicks = 3

// RecommendedQuests suggests up to limit quests the user has not completed yet.
// New users get easy quests; others get quests from their most completed category,
// topped up with anything else they have not done.
func (s *Service) RecommendedQuests(ctx context.Context, userID uint, limit int) ([]models.Quest, error) {
	db := s.db.WithContext(ctx)
	completed := db.Model(&models.UserQuest{}).
		Select("quest_id").
		Where("user_id = ? AND is_completed = ?", userID, true)

	var top struct {
		Category models.QuestCategory
		Total    int64
	}
	err := db.Model(&models.UserQuest{}).
		Select("quests.category AS category, COUNT(*) AS total").
		Joins("JOIN quests ON quests.id = user_quests.quest_id").
		Where("user_quests.user_id = ? AND user_quests.is_completed = ?", userID, true).
		Group("quests.category").
		Order("total DESC").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}

	var quests []models.Quest
	if top.Total == 0 {
		err := db.Where("is_active = ? AND difficulty <= ?", true, 2).
			Order("id").Limit(limit).Find(&quests).Error
		return quests, err
	}

	var ids []uint
	err = uncompleted(db, completed).
		Where("category = ?", top.Category).
		Order("id").Limit(min(preferredCategoryPicks, limit)).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	if len(ids) < limit {
		var extra []uint
		q := uncompleted(db, completed)
		if len(ids) > 0 {
			q = q.Where("id NOT IN ?", ids)
		}
		if err := q.Order("id").Limit(limit-len(ids)).Pluck("id", &extra).Error; err != nil {
			return nil, err
		}
		ids = append(ids, extra...)
	}

	if len(ids) == 0 {
		return []models.Quest{}, nil
	}
	err = db.Where("id IN ?", ids).Order("id").Find(&quests).Error
	return quests, err
}

func uncompleted(db *gorm.DB, completed *gorm.DB) *gorm.DB {
	return db.Model(&models.Quest{}).Where("is_active = ? AND id NOT IN (?)", true, completed)
}
