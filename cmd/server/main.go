package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/config"
	"github.com/gdg-garage/mental-health-partner-api/internal/conversation"
	"github.com/gdg-garage/mental-health-partner-api/internal/database"
	"github.com/gdg-garage/mental-health-partner-api/internal/gamification"
	"github.com/gdg-garage/mental-health-partner-api/internal/handlers"
	"github.com/gdg-garage/mental-health-partner-api/internal/llm"
	"github.com/gdg-garage/mental-health-partner-api/internal/moderation"
	"github.com/gdg-garage/mental-health-partner-api/internal/notifier"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg.Level = lvl
	return zcfg.Build()
}

func newProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	switch cfg.LLMProvider {
	case "gemini":
		return llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.LLMTimeout,
		})
	case "openrouter", "":
		return llm.NewOpenRouterClient(llm.OpenRouterConfig{
			APIKey:  cfg.OpenRouterAPIKey,
			URL:     cfg.OpenRouterURL,
			Model:   cfg.OpenRouterModel,
			SiteURL: cfg.SiteURL,
			Timeout: cfg.LLMTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to Database
	db := database.Connect(cfg)

	provider, err := newProvider(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to initialize LLM provider", zap.Error(err))
	}

	var notify notifier.Notifier = notifier.Nop{}
	discordNotifier, err := notifier.NewDiscordNotifier(cfg, logger)
	if err != nil {
		logger.Warn("Discord notifier not initialized", zap.Error(err))
	} else {
		notify = discordNotifier
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db, logger)
	quests := gamification.NewService(db, logger)
	orchestrator := conversation.NewOrchestrator(db, provider, logger)

	h := handlers.Handlers{
		Auth:         authHandler,
		APIKeys:      handlers.NewAPIKeyHandler(db, authHandler, logger),
		Quests:       handlers.NewQuestHandler(db, quests, notify, authHandler, logger),
		Achievements: handlers.NewAchievementHandler(db, authHandler, logger),
		Rewards:      handlers.NewRewardHandler(db, quests, authHandler, logger),
		Conversation: handlers.NewConversationHandler(db, orchestrator, authHandler, logger),
		Wellbeing:    handlers.NewWellbeingHandler(db, authHandler, logger),
		Community: handlers.NewCommunityHandler(db, moderation.NewPatternScreen(logger), notify,
			authHandler, logger, cfg.AnonymizerSalt),
	}

	// Initialize Router
	r := chi.NewRouter()

	corsOrigin := ""
	if cfg.EnableCORS {
		corsOrigin = cfg.FrontendURL
	}
	handlers.RegisterRoutes(r, h, corsOrigin)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("llm_provider", cfg.LLMProvider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}
