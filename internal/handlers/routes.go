package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups every resource handler registered by RegisterRoutes.
type Handlers struct {
	Auth         *auth.AuthHandler
	APIKeys      *APIKeyHandler
	Quests       *QuestHandler
	Achievements *AchievementHandler
	Rewards      *RewardHandler
	Conversation *ConversationHandler
	Wellbeing    *WellbeingHandler
	Community    *CommunityHandler
}

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}, {"bearerAuth": {}}}
}

func created(o *huma.Operation) {
	secured(o)
	o.DefaultStatus = http.StatusCreated
}

func RegisterRoutes(r *chi.Mux, h Handlers, corsOrigin string) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if corsOrigin != "" {
		r.Use(cors(corsOrigin))
	}
	r.Use(h.Auth.AuthMiddleware)

	// Initialize Huma API
	config := huma.DefaultConfig("Mental Health Partner API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/api/auth/discord/login", h.Auth.HandleDiscordLogin)
	r.Get("/api/auth/discord/callback", h.Auth.HandleDiscordCallback)

	huma.Post(api, "/api/auth/register", h.Auth.HandleRegister, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Get(api, "/api/auth/verify-email/{token}", h.Auth.HandleVerifyEmail)
	huma.Post(api, "/api/auth/login", h.Auth.HandleLogin)
	huma.Post(api, "/api/auth/logout", h.Auth.HandleLogout)
	huma.Post(api, "/api/auth/forgot-password", h.Auth.HandleForgotPassword)
	huma.Post(api, "/api/auth/reset-password/{token}", h.Auth.HandleResetPassword)

	// Users
	huma.Get(api, "/api/me", h.Auth.HandleMe, secured)
	huma.Patch(api, "/api/me", h.Auth.HandleUpdateMe, secured)
	huma.Post(api, "/api/api-keys", h.APIKeys.HandleCreate, created)
	huma.Get(api, "/api/api-keys", h.APIKeys.HandleList, secured)
	huma.Delete(api, "/api/api-keys/{id}", h.APIKeys.HandleDelete, secured)

	// Gamification
	huma.Get(api, "/api/quests", h.Quests.HandleList, secured)
	huma.Get(api, "/api/quests/categories", h.Quests.HandleCategories, secured)
	huma.Get(api, "/api/quests/recommended", h.Quests.HandleRecommended, secured)
	huma.Get(api, "/api/quests/{id}", h.Quests.HandleGet, secured)
	huma.Post(api, "/api/quests/{id}/start", h.Quests.HandleStart, created)
	huma.Get(api, "/api/user-quests", h.Quests.HandleListUserQuests, secured)
	huma.Post(api, "/api/user-quests", h.Quests.HandleCreateUserQuest, created)
	huma.Post(api, "/api/user-quests/{id}/complete", h.Quests.HandleComplete, secured)
	huma.Get(api, "/api/streak", h.Quests.HandleStreak, secured)
	huma.Get(api, "/api/streak/completed-dates", h.Quests.HandleCompletedDates, secured)

	huma.Get(api, "/api/achievements", h.Achievements.HandleList, secured)
	huma.Get(api, "/api/achievements/mine", h.Achievements.HandleUserAchievements, secured)
	huma.Get(api, "/api/achievements/available", h.Achievements.HandleAvailable, secured)

	huma.Get(api, "/api/rewards", h.Rewards.HandleList, secured)
	huma.Get(api, "/api/rewards/available", h.Rewards.HandleAvailable, secured)
	huma.Get(api, "/api/rewards/mine", h.Rewards.HandleUserRewards, secured)
	huma.Post(api, "/api/rewards/{id}/redeem", h.Rewards.HandleRedeem, created)
	huma.Get(api, "/api/points", h.Rewards.HandlePoints, secured)
	huma.Get(api, "/api/points/history", h.Rewards.HandlePointHistory, secured)

	// Conversations
	huma.Get(api, "/api/conversations", h.Conversation.HandleList, secured)
	huma.Post(api, "/api/conversations", h.Conversation.HandleCreate, created)
	huma.Get(api, "/api/conversations/{id}", h.Conversation.HandleGet, secured)
	huma.Patch(api, "/api/conversations/{id}", h.Conversation.HandleUpdate, secured)
	huma.Delete(api, "/api/conversations/{id}", h.Conversation.HandleDelete, secured)
	huma.Post(api, "/api/conversations/{id}/messages", h.Conversation.HandleSendMessage, created)

	// Wellbeing
	huma.Get(api, "/api/moods", h.Wellbeing.HandleListMoods, secured)
	huma.Post(api, "/api/moods", h.Wellbeing.HandleCreateMood, created)
	huma.Get(api, "/api/moods/{id}", h.Wellbeing.HandleGetMood, secured)
	huma.Put(api, "/api/moods/{id}", h.Wellbeing.HandleUpdateMood, secured)
	huma.Delete(api, "/api/moods/{id}", h.Wellbeing.HandleDeleteMood, secured)
	huma.Get(api, "/api/journals", h.Wellbeing.HandleListJournals, secured)
	huma.Post(api, "/api/journals", h.Wellbeing.HandleCreateJournal, created)
	huma.Get(api, "/api/journals/{id}", h.Wellbeing.HandleGetJournal, secured)
	huma.Put(api, "/api/journals/{id}", h.Wellbeing.HandleUpdateJournal, secured)
	huma.Delete(api, "/api/journals/{id}", h.Wellbeing.HandleDeleteJournal, secured)
	huma.Get(api, "/api/analytics/mood", h.Wellbeing.HandleMoodAnalytics, secured)
	huma.Get(api, "/api/analytics/activity", h.Wellbeing.HandleActivity, secured)

	// Community
	huma.Get(api, "/api/community/groups", h.Community.HandleListGroups, secured)
	huma.Post(api, "/api/community/groups", h.Community.HandleCreateGroup, created)
	huma.Get(api, "/api/community/groups/{slug}", h.Community.HandleGetGroup, secured)
	huma.Post(api, "/api/community/groups/{slug}/join", h.Community.HandleJoinGroup, created)
	huma.Post(api, "/api/community/groups/{slug}/leave", h.Community.HandleLeaveGroup, secured)
	huma.Get(api, "/api/community/threads", h.Community.HandleListThreads, secured)
	huma.Post(api, "/api/community/threads", h.Community.HandleCreateThread, created)
	huma.Get(api, "/api/community/threads/{id}", h.Community.HandleGetThread, secured)
	huma.Patch(api, "/api/community/threads/{id}", h.Community.HandleUpdateThread, secured)
	huma.Delete(api, "/api/community/threads/{id}", h.Community.HandleDeleteThread, secured)
	huma.Get(api, "/api/community/posts", h.Community.HandleListPosts, secured)
	huma.Post(api, "/api/community/posts", h.Community.HandleCreatePost, created)
	huma.Delete(api, "/api/community/posts/{id}", h.Community.HandleDeletePost, secured)
	huma.Get(api, "/api/community/encouragements", h.Community.HandleListEncouragements, secured)
	huma.Post(api, "/api/community/encouragements/toggle", h.Community.HandleToggleEncouragement, created)
	huma.Get(api, "/api/community/challenges", h.Community.HandleListChallenges, secured)
	huma.Post(api, "/api/community/challenges", h.Community.HandleCreateChallenge, created)
	huma.Post(api, "/api/community/challenges/{id}/join", h.Community.HandleJoinChallenge, created)
	huma.Post(api, "/api/community/challenges/{id}/complete", h.Community.HandleCompleteChallenge, secured)
	huma.Get(api, "/api/community/stories", h.Community.HandleListStories, secured)
	huma.Post(api, "/api/community/stories", h.Community.HandleCreateStory, created)
	huma.Post(api, "/api/community/story-encouragements/toggle", h.Community.HandleToggleStoryEncouragement, created)

	return api
}

// cors allows the configured frontend origin to call the API with credentials.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Origin") == origin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-KEY")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
