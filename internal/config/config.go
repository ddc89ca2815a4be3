package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                       string        `mapstructure:"PORT"`
	DatabasePath               string        `mapstructure:"DATABASE_PATH"`
	LogLevel                   string        `mapstructure:"LOG_LEVEL"`
	JWTSecret                  string        `mapstructure:"JWT_SECRET"`
	FrontendURL                string        `mapstructure:"FRONTEND_URL"`
	EnableCORS                 bool          `mapstructure:"ENABLE_CORS"`
	SeedCatalog                bool          `mapstructure:"SEED_CATALOG"`
	DiscordClientID            string        `mapstructure:"DISCORD_CLIENT_ID"`
	DiscordClientSecret        string        `mapstructure:"DISCORD_CLIENT_SECRET"`
	DiscordRedirectURL         string        `mapstructure:"DISCORD_REDIRECT_URL"`
	DiscordBotToken            string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordModerationChannelID string        `mapstructure:"DISCORD_MODERATION_CHANNEL_ID"`
	DiscordAchievementChannel  string        `mapstructure:"DISCORD_ACHIEVEMENT_CHANNEL_ID"`
	DiscordGuildID             string        `mapstructure:"DISCORD_GUILD_ID"`
	LLMProvider                string        `mapstructure:"LLM_PROVIDER"`
	LLMTimeout                 time.Duration `mapstructure:"LLM_TIMEOUT"`
	OpenRouterAPIKey           string        `mapstructure:"OPENROUTER_API_KEY"`
	OpenRouterURL              string        `mapstructure:"OPENROUTER_URL"`
	OpenRouterModel            string        `mapstructure:"OPENROUTER_MODEL"`
	SiteURL                    string        `mapstructure:"SITE_URL"`
	GeminiAPIKey               string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel                string        `mapstructure:"GEMINI_MODEL"`
	AnonymizerSalt             string        `mapstructure:"ANONYMIZER_SALT"`
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "mental_health.db")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:3000")
	viper.SetDefault("SEED_CATALOG", true)
	viper.SetDefault("DISCORD_REDIRECT_URL", "http://127.0.0.1:8080/api/auth/discord/callback")
	viper.SetDefault("LLM_PROVIDER", "openrouter")
	viper.SetDefault("LLM_TIMEOUT", "15s")
	viper.SetDefault("OPENROUTER_URL", "https://openrouter.ai/api/v1/chat/completions")
	viper.SetDefault("OPENROUTER_MODEL", "deepseek/deepseek-chat-v3-0324:free")
	viper.SetDefault("SITE_URL", "http://localhost:8080")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("ANONYMIZER_SALT", "default_salt_value")

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("DISCORD_CLIENT_ID")
	viper.BindEnv("DISCORD_CLIENT_SECRET")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_MODERATION_CHANNEL_ID")
	viper.BindEnv("DISCORD_ACHIEVEMENT_CHANNEL_ID")
	viper.BindEnv("DISCORD_GUILD_ID")
	viper.BindEnv("OPENROUTER_API_KEY")
	viper.BindEnv("GEMINI_API_KEY")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	if config.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	return &config
}
