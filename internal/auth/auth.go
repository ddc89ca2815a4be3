package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/config"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	DiscordAuthorizeEndpoint = "https://discord.com/api/oauth2/authorize"
	DiscordTokenEndpoint     = "https://discord.com/api/oauth2/token"
	DiscordUserAPI           = "https://discord.com/api/users/@me"
	DiscordUserGuildsAPI     = "https://discord.com/api/users/@me/guilds"

	CookieName      = "auth_token"
	stateCookieName = "oauth_state"
	TokenDuration   = 24 * time.Hour
)

type AuthHandler struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
	logger      *zap.Logger
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
			Scopes:       []string{"identify", "email", "guilds"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  DiscordAuthorizeEndpoint,
				TokenURL: DiscordTokenEndpoint,
			},
		},
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// AuthInput is embedded in every huma input of an authenticated operation.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie (auth_token)"`
}

// Authorize returns the caller's user ID. The session middleware may already have
// resolved it from an API key or bearer token; otherwise the auth_token cookie is checked.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (uint, error) {
	if userID, ok := ctx.Value(UserIDKey).(uint); ok {
		return userID, nil
	}
	if cookieHeader == "" {
		return 0, huma.Error401Unauthorized("Unauthorized")
	}

	cookies, err := http.ParseCookie(cookieHeader)
	if err != nil {
		return 0, huma.Error401Unauthorized("Unauthorized")
	}
	for _, c := range cookies {
		if c.Name != CookieName {
			continue
		}
		userID, _, err := h.ParseToken(c.Value)
		if err != nil {
			return 0, huma.Error401Unauthorized("Unauthorized: Invalid token")
		}
		return userID, nil
	}
	return 0, huma.Error401Unauthorized("Unauthorized")
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken validates a session token and returns its user ID and expiry.
func (h *AuthHandler) ParseToken(tokenString string) (uint, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, time.Time{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, errors.New("invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, time.Time{}, errors.New("invalid token claims")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, time.Time{}, errors.New("invalid token claims")
	}
	return uint(userIDFloat), exp.Time, nil
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) HandleDiscordLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	url := h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

type discordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Avatar   string `json:"avatar"`
}

func (h *AuthHandler) HandleDiscordCallback(w http.ResponseWriter, r *http.Request) {
	state, err := r.Cookie(stateCookieName)
	if err != nil || state.Value == "" || state.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Warn("Discord token exchange failed", zap.Error(err))
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := h.oauthConfig.Client(r.Context(), token)

	// Check Guild Membership
	if h.cfg.DiscordGuildID != "" {
		ok, err := inGuild(client, h.cfg.DiscordGuildID)
		if err != nil {
			http.Error(w, "Failed to get user guilds", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "Access denied: You are not a member of the required guild.", http.StatusForbidden)
			return
		}
	}

	resp, err := client.Get(DiscordUserAPI)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var du discordUser
	if err := json.NewDecoder(resp.Body).Decode(&du); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	user, err := h.upsertDiscordUser(du)
	if err != nil {
		h.logger.Error("Failed to save discord user", zap.String("discord_id", du.ID), zap.Error(err))
		http.Error(w, "Failed to save user", http.StatusInternalServerError)
		return
	}

	jwtToken, err := h.GenerateToken(user.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, h.sessionCookie(jwtToken))
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	if h.cfg.FrontendURL != "" {
		http.Redirect(w, r, h.cfg.FrontendURL, http.StatusTemporaryRedirect)
		return
	}
	w.Write([]byte(fmt.Sprintf("Welcome %s! You are logged in.", user.Username)))
}

func inGuild(client *http.Client, guildID string) (bool, error) {
	resp, err := client.Get(DiscordUserGuildsAPI)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var guilds []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&guilds); err != nil {
		return false, err
	}
	for _, g := range guilds {
		if g.ID == guildID {
			return true, nil
		}
	}
	return false, nil
}

// upsertDiscordUser finds the user by Discord ID, links an existing account with the same
// verified email, or creates a new account.
func (h *AuthHandler) upsertDiscordUser(du discordUser) (*models.User, error) {
	var user models.User
	err := h.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("discord_id = ?", du.ID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) && du.Email != "" && du.Verified {
			err = tx.Where("email = ?", du.Email).First(&user).Error
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		discordID := du.ID
		user.DiscordID = &discordID
		user.Avatar = du.Avatar
		if user.Username == "" {
			user.Username = du.Username
		}
		if user.Email == "" {
			// an unverified address may belong to someone else
			user.Email = du.ID + "@users.discord"
			if du.Verified && du.Email != "" {
				user.Email = du.Email
			}
		}
		if du.Verified {
			user.IsEmailVerified = true
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
