package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gdg-garage/mental-health-partner-api/internal/conversation"
	"github.com/gdg-garage/mental-health-partner-api/internal/gamification"
	"github.com/gdg-garage/mental-health-partner-api/internal/moderation"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, corsOrigin string) (*fixture, *chi.Mux) {
	t.Helper()
	f := setup(t)
	quests := gamification.NewService(f.db, f.logger)
	notify := &recordingNotifier{}
	r := chi.NewRouter()
	RegisterRoutes(r, Handlers{
		Auth:         f.auth,
		APIKeys:      NewAPIKeyHandler(f.db, f.auth, f.logger),
		Quests:       NewQuestHandler(f.db, quests, notify, f.auth, f.logger),
		Achievements: NewAchievementHandler(f.db, f.auth, f.logger),
		Rewards:      NewRewardHandler(f.db, quests, f.auth, f.logger),
		Conversation: NewConversationHandler(f.db, conversation.NewOrchestrator(f.db, &stubProvider{reply: "ok"}, f.logger), f.auth, f.logger),
		Wellbeing:    NewWellbeingHandler(f.db, f.auth, f.logger),
		Community:    NewCommunityHandler(f.db, moderation.NewPatternScreen(f.logger), notify, f.auth, f.logger, testSalt),
	}, corsOrigin)
	return f, r
}

func TestRoutesRequireSession(t *testing.T) {
	f, r := newRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quests", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := f.auth.GenerateToken(f.user.ID)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/quests", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	_, r := newRouter(t, "http://localhost:3000")

	req := httptest.NewRequest(http.MethodOptions, "/api/quests", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
