package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// keyPrefix marks partner API keys so they are recognisable in logs and secret scanners.
const keyPrefix = "mhp_"

type APIKeyHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
	logger      *zap.Logger
}

func NewAPIKeyHandler(db *gorm.DB, authHandler *auth.AuthHandler, logger *zap.Logger) *APIKeyHandler {
	return &APIKeyHandler{db: db, authHandler: authHandler, logger: logger}
}

type CreateAPIKeyInput struct {
	auth.AuthInput
	Body struct {
		Name      string     `json:"name" minLength:"1" maxLength:"100" doc:"Device or app using the key"`
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
	}
}

type APIKeyResponse struct {
	ID         uint       `json:"id"`
	Name       string     `json:"name"`
	Key        string     `json:"key"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
}

func apiKeyResponse(k models.APIKey, key string) APIKeyResponse {
	return APIKeyResponse{
		ID:         k.ID,
		Name:       k.Name,
		Key:        key,
		CreatedAt:  k.CreatedAt,
		ExpiresAt:  k.ExpiresAt,
		LastUsedAt: k.LastUsedAt,
	}
}

type CreateAPIKeyOutput struct {
	Body APIKeyResponse
}

// HandleCreate issues a key. The full key is only ever returned here.
func (h *APIKeyHandler) HandleCreate(ctx context.Context, input *CreateAPIKeyInput) (*CreateAPIKeyOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if input.Body.ExpiresAt != nil && input.Body.ExpiresAt.Before(time.Now()) {
		return nil, huma.Error400BadRequest("Expiry must be in the future")
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate key")
	}

	apiKey := models.APIKey{
		UserID:    userID,
		Key:       keyPrefix + hex.EncodeToString(keyBytes),
		Name:      input.Body.Name,
		ExpiresAt: input.Body.ExpiresAt,
	}
	if err := h.db.WithContext(ctx).Create(&apiKey).Error; err != nil {
		return nil, internalError(h.logger, "Failed to create API key", err)
	}
	h.logger.Info("API key created", zap.Uint("user_id", userID), zap.Uint("api_key_id", apiKey.ID))

	return &CreateAPIKeyOutput{Body: apiKeyResponse(apiKey, apiKey.Key)}, nil
}

type ListAPIKeysOutput struct {
	Body []APIKeyResponse
}

func (h *APIKeyHandler) HandleList(ctx context.Context, input *auth.AuthInput) (*ListAPIKeysOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var apiKeys []models.APIKey
	if err := h.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&apiKeys).Error; err != nil {
		return nil, internalError(h.logger, "Failed to list API keys", err)
	}

	response := make([]APIKeyResponse, 0, len(apiKeys))
	for _, k := range apiKeys {
		maskedKey := k.Key
		if len(k.Key) > 4 {
			maskedKey = "..." + k.Key[len(k.Key)-4:]
		}
		response = append(response, apiKeyResponse(k, maskedKey))
	}
	return &ListAPIKeysOutput{Body: response}, nil
}

type DeleteAPIKeyInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *APIKeyHandler) HandleDelete(ctx context.Context, input *DeleteAPIKeyInput) (*struct{}, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	res := h.db.WithContext(ctx).Where("id = ? AND user_id = ?", input.ID, userID).Delete(&models.APIKey{})
	if res.Error != nil {
		return nil, internalError(h.logger, "Failed to delete API key", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, huma.Error404NotFound("API key not found")
	}
	return nil, nil
}
