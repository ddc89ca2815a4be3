package database

import (
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"gorm.io/gorm"
)

func category(c models.QuestCategory) *models.QuestCategory { return &c }

func seedQuests() []models.Quest {
	return []models.Quest{
		{Title: "Thought Record", Description: "Catch and reframe one unhelpful thought.", Category: models.CategoryCBT, Points: 15, DurationMinutes: 10, Difficulty: 2, IsActive: true,
			Instructions: "Write down a situation, the automatic thought, the evidence for and against it, and a balanced alternative."},
		{Title: "Box Breathing", Description: "Four slow rounds of box breathing.", Category: models.CategoryMindfulness, Points: 10, DurationMinutes: 5, Difficulty: 1, IsActive: true,
			Instructions: "Inhale for 4 seconds, hold for 4, exhale for 4, hold for 4. Repeat four times."},
		{Title: "Body Scan", Description: "Notice sensations from head to toe.", Category: models.CategoryMindfulness, Points: 15, DurationMinutes: 10, Difficulty: 2, IsActive: true,
			Instructions: "Lie down and slowly move your attention through each part of your body without judging what you find."},
		{Title: "Ten Minute Walk", Description: "Get outside and move.", Category: models.CategoryActivity, Points: 20, DurationMinutes: 10, Difficulty: 1, IsActive: true,
			Instructions: "Take a ten minute walk. Notice five things you can see along the way."},
		{Title: "Reach Out", Description: "Send a message to someone you care about.", Category: models.CategorySocial, Points: 20, DurationMinutes: 5, Difficulty: 3, IsActive: true,
			Instructions: "Pick one person you have not talked to this week and send them a short note."},
		{Title: "Three Good Things", Description: "List three things that went well today.", Category: models.CategoryGratitude, Points: 10, DurationMinutes: 5, Difficulty: 1, IsActive: true,
			Instructions: "Write down three good things from today and why each of them happened."},
	}
}

func seedAchievements() []models.Achievement {
	return []models.Achievement{
		{Title: "First Reframe", Description: "Complete your first CBT quest.", Category: category(models.CategoryCBT), UnlockKind: models.UnlockCategoryCount, RequiredCount: 1, Points: 50, IsActive: true},
		{Title: "Mindful Beginner", Description: "Complete 5 mindfulness quests.", Category: category(models.CategoryMindfulness), UnlockKind: models.UnlockCategoryCount, RequiredCount: 5, Points: 50, IsActive: true},
		{Title: "On The Move", Description: "Complete 5 activity quests.", Category: category(models.CategoryActivity), UnlockKind: models.UnlockCategoryCount, RequiredCount: 5, Points: 50, IsActive: true},
		{Title: "Connector", Description: "Complete 3 social quests.", Category: category(models.CategorySocial), UnlockKind: models.UnlockCategoryCount, RequiredCount: 3, Points: 50, IsActive: true},
		{Title: "Grateful Heart", Description: "Complete 7 gratitude quests.", Category: category(models.CategoryGratitude), UnlockKind: models.UnlockCategoryCount, RequiredCount: 7, Points: 75, IsActive: true},
		{Title: "3 Day Streak", Description: "Complete a quest three days in a row.", UnlockKind: models.UnlockStreakLength, RequiredCount: 3, Points: 50, IsActive: true},
		{Title: "Week Warrior Streak", Description: "Complete a quest seven days in a row.", UnlockKind: models.UnlockStreakLength, RequiredCount: 7, Points: 100, IsActive: true},
		{Title: "Month Master Streak", Description: "Complete a quest thirty days in a row.", UnlockKind: models.UnlockStreakLength, RequiredCount: 30, Points: 300, IsActive: true},
	}
}

func seedRewards() []models.Reward {
	return []models.Reward{
		{Title: "Calm Playlist", Description: "A curated playlist for winding down.", PointsRequired: 50, CodeTemplate: "CALM-{RANDOM6}", IsActive: true},
		{Title: "Meditation App Trial", Description: "One month of a guided meditation app.", PointsRequired: 200, PartnerName: "Headspace", CodeTemplate: "HS-{USERID}-{DATE}-{RANDOM4}", IsActive: true},
		{Title: "Tea Voucher", Description: "A voucher for a cup of tea at a partner cafe.", PointsRequired: 100, IsActive: true},
	}
}

func seedGroups() []models.DiscussionGroup {
	return []models.DiscussionGroup{
		{Name: "Anxiety Support", Slug: "anxiety-support", Description: "Share and learn ways of living with anxiety.", TopicType: "anxiety", IsModerated: true},
		{Name: "Depression Support", Slug: "depression-support", Description: "A gentle space for low days.", TopicType: "depression", IsModerated: true},
		{Name: "Mindful Living", Slug: "mindful-living", Description: "Mindfulness practice and questions.", TopicType: "mindfulness", IsModerated: true},
	}
}

// SeedCatalog inserts the reference catalog into empty tables. It is safe to call on every start.
func SeedCatalog(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedTable(tx, &models.Quest{}, seedQuests()); err != nil {
			return err
		}
		if err := seedTable(tx, &models.Achievement{}, seedAchievements()); err != nil {
			return err
		}
		if err := seedTable(tx, &models.Reward{}, seedRewards()); err != nil {
			return err
		}
		return seedTable(tx, &models.DiscussionGroup{}, seedGroups())
	})
}

func seedTable[T any](tx *gorm.DB, model any, rows []T) error {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
