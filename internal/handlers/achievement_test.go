package handlers

import (
	"testing"

	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementsAvailableExcludesEarned(t *testing.T) {
	f := setup(t)
	h := NewAchievementHandler(f.db, f.auth, f.logger)

	earned := models.Achievement{Title: "Streak Starter", UnlockKind: models.UnlockStreakLength, RequiredCount: 3, IsActive: true}
	open := models.Achievement{Title: "Week Warrior", UnlockKind: models.UnlockStreakLength, RequiredCount: 7, IsActive: true}
	retired := models.Achievement{Title: "Beta Tester", IsActive: false}
	for _, a := range []*models.Achievement{&earned, &open, &retired} {
		require.NoError(t, f.db.Create(a).Error)
	}
	require.NoError(t, f.db.Create(&models.UserAchievement{UserID: f.user.ID, AchievementID: earned.ID}).Error)

	all, err := h.HandleList(f.ctx, &auth.AuthInput{})
	require.NoError(t, err)
	assert.Len(t, all.Body, 2)

	available, err := h.HandleAvailable(f.ctx, &auth.AuthInput{})
	require.NoError(t, err)
	require.Len(t, available.Body, 1)
	assert.Equal(t, "Week Warrior", available.Body[0].Title)

	mine, err := h.HandleUserAchievements(f.ctx, &auth.AuthInput{})
	require.NoError(t, err)
	require.Len(t, mine.Body, 1)
	assert.Equal(t, "Streak Starter", mine.Body[0].Achievement.Title)
}
