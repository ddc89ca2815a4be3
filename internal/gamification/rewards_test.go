package gamification

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRedemptionCode(t *testing.T) {
	user := models.User{Username: "sam"}
	user.ID = 42
	now := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Template", func(t *testing.T) {
		code := GenerateRedemptionCode(models.Reward{CodeTemplate: "HS-{USERNAME}-{USERID}-{DATE}-{RANDOM4}"}, user, now)
		assert.Regexp(t, regexp.MustCompile(`^HS-sam-42-20250310-[A-Z0-9]{4}$`), code)
	})

	t.Run("Generated", func(t *testing.T) {
		code := GenerateRedemptionCode(models.Reward{}, user, now)
		assert.Regexp(t, regexp.MustCompile(`^[A-F0-9]{5}-[A-F0-9]{5}-[A-F0-9]{5}$`), code)
		assert.NotEqual(t, code, GenerateRedemptionCode(models.Reward{}, user, now))
	})

	t.Run("RandomLengths", func(t *testing.T) {
		code := GenerateRedemptionCode(models.Reward{CodeTemplate: "{RANDOM6}|{RANDOM8}"}, user, now)
		parts := strings.Split(code, "|")
		require.Len(t, parts, 2)
		assert.Len(t, parts[0], 6)
		assert.Len(t, parts[1], 8)
	})
}

func TestRedeemReward(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	reward := models.Reward{Title: "Tea Voucher", PointsRequired: 20, IsActive: true}
	require.NoError(t, f.db.Create(&reward).Error)

	_, err := f.svc.CompleteQuest(ctx, f.user.ID, f.start(t, f.cbt).ID, "", nil)
	require.NoError(t, err)

	_, err = f.svc.RedeemReward(ctx, f.user.ID, reward.ID)
	assert.ErrorIs(t, err, ErrInsufficientPoints)

	var redeemed int64
	f.db.Model(&models.UserReward{}).Count(&redeemed)
	assert.Zero(t, redeemed)

	_, err = f.svc.CompleteQuest(ctx, f.user.ID, f.start(t, f.mindful).ID, "", nil)
	require.NoError(t, err)

	userReward, err := f.svc.RedeemReward(ctx, f.user.ID, reward.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, userReward.RedemptionCode)
	assert.Equal(t, reward.Title, userReward.Reward.Title)

	points, err := f.svc.Points(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, points.TotalPoints)
	assert.Equal(t, 5, points.CurrentPoints)
}

func TestRedeemReward_ExpiredOrInactive(t *testing.T) {
	f := setup(t)
	past := today.Add(-time.Hour)
	expired := models.Reward{Title: "Old", PointsRequired: 0, IsActive: true, ExpiryDate: &past}
	inactive := models.Reward{Title: "Hidden", PointsRequired: 0}
	require.NoError(t, f.db.Create(&expired).Error)
	require.NoError(t, f.db.Create(&inactive).Error)

	_, err := f.svc.RedeemReward(context.Background(), f.user.ID, expired.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.RedeemReward(context.Background(), f.user.ID, inactive.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendedQuests(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	hard := models.Quest{Title: "Reach Out", Category: models.CategorySocial, Points: 20, Difficulty: 4, IsActive: true}
	cbt2 := models.Quest{Title: "Core Beliefs", Category: models.CategoryCBT, Points: 20, Difficulty: 3, IsActive: true}
	require.NoError(t, f.db.Create(&hard).Error)
	require.NoError(t, f.db.Create(&cbt2).Error)

	quests, err := f.svc.RecommendedQuests(ctx, f.user.ID, 5)
	require.NoError(t, err)
	titles := questTitles(quests)
	assert.ElementsMatch(t, []string{"Thought Record", "Box Breathing"}, titles, "new users get easy quests")

	f.completedOn(t, f.cbt, daysAgo(1, 9))

	quests, err = f.svc.RecommendedQuests(ctx, f.user.ID, 5)
	require.NoError(t, err)
	titles = questTitles(quests)
	assert.NotContains(t, titles, "Thought Record")
	assert.ElementsMatch(t, []string{"Box Breathing", "Reach Out", "Core Beliefs"}, titles)

	quests, err = f.svc.RecommendedQuests(ctx, f.user.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Core Beliefs"}, questTitles(quests))
}

func questTitles(quests []models.Quest) []string {
	titles := make([]string, 0, len(quests))
	for _, q := range quests {
		titles = append(titles, q.Title)
	}
	return titles
}
