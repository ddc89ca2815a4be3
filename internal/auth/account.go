package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func message(msg string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Message = msg
	return out
}

type RegisterInput struct {
	Body struct {
		Email    string `json:"email" format:"email" doc:"Account email" required:"true"`
		Username string `json:"username" minLength:"1" maxLength:"150" required:"true"`
		Password string `json:"password" minLength:"8" required:"true"`
	}
}

type RegisterOutput struct {
	Body struct {
		Message string `json:"message"`
		Email   string `json:"email"`
	}
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Body.Email))
	if email == "" || strings.TrimSpace(input.Body.Username) == "" {
		return nil, huma.Error400BadRequest("Email and username are required")
	}
	if len(input.Body.Password) < minPasswordLength {
		return nil, huma.Error400BadRequest("Password must be at least 8 characters")
	}

	var existing int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create account")
	}
	if existing > 0 {
		return nil, huma.Error400BadRequest("A user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create account")
	}

	user := models.User{
		Email:                  email,
		Username:               strings.TrimSpace(input.Body.Username),
		PasswordHash:           string(hash),
		EmailVerificationToken: uuid.NewString(),
	}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, huma.Error400BadRequest("A user with this email already exists")
		}
		h.logger.Error("Failed to create user", zap.Error(err))
		return nil, huma.Error500InternalServerError("Failed to create account")
	}
	h.logger.Info("User registered", zap.Uint("user_id", user.ID))

	res := &RegisterOutput{}
	res.Body.Message = "Account created successfully. Please check your email to verify your account."
	res.Body.Email = user.Email
	return res, nil
}

type VerifyEmailInput struct {
	Token string `path:"token"`
}

func (h *AuthHandler) HandleVerifyEmail(ctx context.Context, input *VerifyEmailInput) (*MessageOutput, error) {
	var user models.User
	if err := h.db.WithContext(ctx).Where("email_verification_token = ?", input.Token).First(&user).Error; err != nil || input.Token == "" {
		return nil, huma.Error400BadRequest("Invalid verification token.")
	}
	if user.IsEmailVerified {
		return message("Your email was already verified."), nil
	}
	if err := h.db.WithContext(ctx).Model(&user).Update("is_email_verified", true).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to verify email")
	}
	return message("Email verified successfully. You can now log in."), nil
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Token     string      `json:"token"`
		ExpiresAt time.Time   `json:"expires_at"`
		User      models.User `json:"user"`
	}
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	var user models.User
	email := strings.ToLower(strings.TrimSpace(input.Body.Email))
	if err := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}
	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Body.Password)) != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}
	if !user.IsEmailVerified {
		return nil, huma.Error401Unauthorized("Please verify your email before logging in.")
	}

	token, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}
	cookie := h.sessionCookie(token)

	res := &LoginOutput{SetCookie: *cookie}
	res.Body.Token = token
	res.Body.ExpiresAt = cookie.Expires
	res.Body.User = user
	return res, nil
}

type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *struct{}) (*LogoutOutput, error) {
	return &LogoutOutput{SetCookie: http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true}}, nil
}

type ForgotPasswordInput struct {
	Body struct {
		Email string `json:"email" required:"true"`
	}
}

// HandleForgotPassword stores a reset token. The response never reveals whether the email exists.
func (h *AuthHandler) HandleForgotPassword(ctx context.Context, input *ForgotPasswordInput) (*MessageOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Body.Email))
	if email == "" {
		return nil, huma.Error400BadRequest("Email is required")
	}

	token := uuid.NewString()
	res := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Update("password_reset_token", token)
	if res.Error != nil {
		h.logger.Error("Failed to store reset token", zap.Error(res.Error))
	} else if res.RowsAffected > 0 {
		h.logger.Info("Password reset requested")
	}
	return message("Password reset link sent to your email"), nil
}

type ResetPasswordInput struct {
	Token string `path:"token"`
	Body  struct {
		Password string `json:"password" minLength:"8" required:"true"`
	}
}

func (h *AuthHandler) HandleResetPassword(ctx context.Context, input *ResetPasswordInput) (*MessageOutput, error) {
	if input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Password is required")
	}
	if len(input.Body.Password) < minPasswordLength {
		return nil, huma.Error400BadRequest("Password must be at least 8 characters")
	}

	var user models.User
	if err := h.db.WithContext(ctx).Where("password_reset_token = ?", input.Token).First(&user).Error; err != nil || input.Token == "" {
		return nil, huma.Error400BadRequest("Invalid reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to reset password")
	}
	err = h.db.WithContext(ctx).Model(&user).Updates(map[string]any{
		"password_hash":        string(hash),
		"password_reset_token": nil,
	}).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to reset password")
	}
	return message("Password reset successfully"), nil
}

type MeOutput struct {
	Body models.User
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeOutput, error) {
	userID, err := h.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}
	return &MeOutput{Body: user}, nil
}

type UpdateMeInput struct {
	AuthInput
	Body struct {
		Username            *string    `json:"username,omitempty" minLength:"1"`
		Bio                 *string    `json:"bio,omitempty"`
		Avatar              *string    `json:"avatar,omitempty"`
		DateOfBirth         *time.Time `json:"date_of_birth,omitempty"`
		MentalHealthGoals   *string    `json:"mental_health_goals,omitempty"`
		StressLevel         *int       `json:"stress_level,omitempty" minimum:"1" maximum:"10"`
		PreferredActivities *string    `json:"preferred_activities,omitempty"`
	}
}

func (h *AuthHandler) HandleUpdateMe(ctx context.Context, input *UpdateMeInput) (*MeOutput, error) {
	userID, err := h.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	if lvl := input.Body.StressLevel; lvl != nil && (*lvl < 1 || *lvl > 10) {
		return nil, huma.Error400BadRequest("Stress level must be between 1 and 10")
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	b := input.Body
	if b.Username != nil {
		user.Username = strings.TrimSpace(*b.Username)
	}
	if b.Bio != nil {
		user.Bio = *b.Bio
	}
	if b.Avatar != nil {
		user.Avatar = *b.Avatar
	}
	if b.DateOfBirth != nil {
		user.DateOfBirth = b.DateOfBirth
	}
	if b.MentalHealthGoals != nil {
		user.MentalHealthGoals = *b.MentalHealthGoals
	}
	if b.StressLevel != nil {
		user.StressLevel = b.StressLevel
	}
	if b.PreferredActivities != nil {
		user.PreferredActivities = *b.PreferredActivities
	}

	if err := h.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update profile")
	}
	return &MeOutput{Body: user}, nil
}
