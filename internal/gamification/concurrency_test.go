package gamification

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gdg-garage/mental-health-partner-api/internal/database"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompleteQuest_ConcurrentOnFileDatabase(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "partner.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	svc := NewService(db, zap.NewNop())
	user := models.User{Email: "sam@example.com", Username: "sam"}
	require.NoError(t, db.Create(&user).Error)
	quest := models.Quest{Title: "Gratitude List", Category: models.CategoryGratitude, Points: 15, IsActive: true}
	require.NoError(t, db.Create(&quest).Error)

	const n = 20
	attempts := make([]models.UserQuest, n)
	for i := range attempts {
		attempts[i] = models.UserQuest{UserID: user.ID, QuestID: quest.ID, StartedAt: time.Now()}
		require.NoError(t, db.Create(&attempts[i]).Error)
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, uq := range attempts {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.CompleteQuest(context.Background(), user.ID, id, "", nil)
			errs <- err
		}(uq.ID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	points, err := svc.Points(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, n*15, points.TotalPoints)
	assert.Equal(t, n*15, points.CurrentPoints)
}
