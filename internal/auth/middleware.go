package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthMiddleware resolves the caller from the X-API-KEY header, a bearer token or the
// auth_token cookie and stores the user ID in the request context. Requests without
// credentials pass through; operations reject them in Authorize.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Check for API Key Header
		if apiKey := r.Header.Get("X-API-KEY"); apiKey != "" {
			var keyModel models.APIKey
			if err := h.db.Where("key = ?", apiKey).First(&keyModel).Error; err == nil {
				if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
					http.Error(w, "Unauthorized: API Key expired", http.StatusUnauthorized)
					return
				}

				if err := h.db.Model(&keyModel).Update("last_used_at", time.Now()).Error; err != nil {
					h.logger.Warn("Failed to touch API key", zap.Uint("api_key_id", keyModel.ID), zap.Error(err))
				}

				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserIDKey, keyModel.UserID)))
				return
			}
		}

		// 2. Bearer token for clients that cannot keep cookies
		if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			if userID, _, err := h.ParseToken(bearer); err == nil {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserIDKey, userID)))
				return
			}
		}

		// 3. Fallback to JWT Cookie
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		userID, expiresAt, err := h.ParseToken(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		// Sliding session: refresh token if it's more than halfway through its duration
		if time.Until(expiresAt) < TokenDuration/2 {
			if newToken, err := h.GenerateToken(userID); err == nil {
				http.SetCookie(w, h.sessionCookie(newToken))
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserIDKey, userID)))
	})
}
