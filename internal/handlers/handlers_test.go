package handlers

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/config"
	"github.com/gdg-garage/mental-health-partner-api/internal/database"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	auth   *auth.AuthHandler
	logger *zap.Logger
	user   models.User
	ctx    context.Context
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)

	logger := zap.NewNop()
	f := &fixture{
		db:     db,
		auth:   auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db, logger),
		logger: logger,
	}
	f.user = f.newUser(t, "alice")
	f.ctx = asUser(f.user.ID)
	return f
}

func (f *fixture) newUser(t *testing.T, name string) models.User {
	t.Helper()
	user := models.User{Username: name, Email: name + "@example.com", IsEmailVerified: true}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func asUser(id uint) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, id)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

type recordingNotifier struct {
	stories      []models.SuccessStory
	achievements []models.Achievement
}

func (n *recordingNotifier) NotifyStorySubmitted(_ models.User, story models.SuccessStory) error {
	n.stories = append(n.stories, story)
	return nil
}

func (n *recordingNotifier) NotifyAchievementsUnlocked(_ models.User, achievements []models.Achievement) error {
	n.achievements = append(n.achievements, achievements...)
	return nil
}

// allowAll lets every text through moderation except the ones listed.
type allowAll struct {
	deny map[string]bool
}

func (s allowAll) Allow(text string) bool {
	return !s.deny[text]
}
