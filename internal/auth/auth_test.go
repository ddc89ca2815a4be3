package auth

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/mental-health-partner-api/internal/config"
	"github.com/gdg-garage/mental-health-partner-api/internal/database"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*gorm.DB, *AuthHandler) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	return db, NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db, nil)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestHandleMe(t *testing.T) {
	db, handler := setupAuth(t)

	discordID := "123456"
	user := models.User{
		DiscordID: &discordID,
		Username:  "testuser",
		Email:     "test@example.com",
		Avatar:    "avatar_url",
	}
	require.NoError(t, db.Create(&user).Error)

	t.Run("Authenticated", func(t *testing.T) {
		token, err := handler.GenerateToken(user.ID)
		require.NoError(t, err)
		input := &AuthInput{
			Cookie: "theme=dark; auth_token=" + token,
		}
		resp, err := handler.HandleMe(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, user.Username, resp.Body.Username)
		assert.Equal(t, user.Email, resp.Body.Email)
	})

	t.Run("ContextUser", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserIDKey, user.ID)
		resp, err := handler.HandleMe(ctx, &AuthInput{})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.Body.ID)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := handler.HandleMe(context.Background(), &AuthInput{})
		assert.Equal(t, 401, statusOf(t, err))
	})

	t.Run("TamperedToken", func(t *testing.T) {
		other := NewAuthHandler(&config.Config{JWTSecret: "other-secret"}, db, nil)
		token, err := other.GenerateToken(user.ID)
		require.NoError(t, err)
		_, err = handler.HandleMe(context.Background(), &AuthInput{Cookie: "auth_token=" + token})
		assert.Equal(t, 401, statusOf(t, err))
	})
}

func TestRegisterVerifyLogin(t *testing.T) {
	db, handler := setupAuth(t)
	ctx := context.Background()

	reg := &RegisterInput{}
	reg.Body.Email = "Sam@Example.com"
	reg.Body.Username = "sam"
	reg.Body.Password = "correct horse"
	out, err := handler.HandleRegister(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", out.Body.Email)

	_, err = handler.HandleRegister(ctx, reg)
	assert.Equal(t, 400, statusOf(t, err))

	var user models.User
	require.NoError(t, db.Where("email = ?", "sam@example.com").First(&user).Error)
	assert.NotEqual(t, "correct horse", user.PasswordHash)
	assert.NotEmpty(t, user.EmailVerificationToken)

	login := &LoginInput{}
	login.Body.Email = "sam@example.com"
	login.Body.Password = "correct horse"

	_, err = handler.HandleLogin(ctx, login)
	assert.Equal(t, 401, statusOf(t, err), "unverified accounts cannot log in")

	_, err = handler.HandleVerifyEmail(ctx, &VerifyEmailInput{Token: "nope"})
	assert.Equal(t, 400, statusOf(t, err))

	msg, err := handler.HandleVerifyEmail(ctx, &VerifyEmailInput{Token: user.EmailVerificationToken})
	require.NoError(t, err)
	assert.Equal(t, "Email verified successfully. You can now log in.", msg.Body.Message)

	msg, err = handler.HandleVerifyEmail(ctx, &VerifyEmailInput{Token: user.EmailVerificationToken})
	require.NoError(t, err)
	assert.Equal(t, "Your email was already verified.", msg.Body.Message)

	res, err := handler.HandleLogin(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, CookieName, res.SetCookie.Name)
	assert.Equal(t, res.Body.Token, res.SetCookie.Value)

	userID, _, err := handler.ParseToken(res.Body.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	login.Body.Password = "wrong password"
	_, err = handler.HandleLogin(ctx, login)
	assert.Equal(t, 401, statusOf(t, err))
}

func TestRegister_ShortPassword(t *testing.T) {
	_, handler := setupAuth(t)
	reg := &RegisterInput{}
	reg.Body.Email = "a@example.com"
	reg.Body.Username = "a"
	reg.Body.Password = "short"
	_, err := handler.HandleRegister(context.Background(), reg)
	assert.Equal(t, 400, statusOf(t, err))
}

func TestPasswordReset(t *testing.T) {
	db, handler := setupAuth(t)
	ctx := context.Background()

	user := models.User{Email: "kim@example.com", Username: "kim", IsEmailVerified: true}
	require.NoError(t, db.Create(&user).Error)

	forgot := &ForgotPasswordInput{}
	forgot.Body.Email = "unknown@example.com"
	msg, err := handler.HandleForgotPassword(ctx, forgot)
	require.NoError(t, err)
	assert.Equal(t, "Password reset link sent to your email", msg.Body.Message)

	forgot.Body.Email = "kim@example.com"
	_, err = handler.HandleForgotPassword(ctx, forgot)
	require.NoError(t, err)

	require.NoError(t, db.First(&user, user.ID).Error)
	require.NotNil(t, user.PasswordResetToken)

	reset := &ResetPasswordInput{Token: "bogus"}
	reset.Body.Password = "new password"
	_, err = handler.HandleResetPassword(ctx, reset)
	assert.Equal(t, 400, statusOf(t, err))

	reset.Token = *user.PasswordResetToken
	_, err = handler.HandleResetPassword(ctx, reset)
	require.NoError(t, err)

	require.NoError(t, db.First(&user, user.ID).Error)
	assert.Nil(t, user.PasswordResetToken)

	login := &LoginInput{}
	login.Body.Email = "kim@example.com"
	login.Body.Password = "new password"
	_, err = handler.HandleLogin(ctx, login)
	require.NoError(t, err)
}

func TestHandleUpdateMe(t *testing.T) {
	db, handler := setupAuth(t)
	user := models.User{Email: "lee@example.com", Username: "lee"}
	require.NoError(t, db.Create(&user).Error)
	ctx := context.WithValue(context.Background(), UserIDKey, user.ID)

	input := &UpdateMeInput{}
	bio := "learning to slow down"
	level := 6
	input.Body.Bio = &bio
	input.Body.StressLevel = &level

	out, err := handler.HandleUpdateMe(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, bio, out.Body.Bio)
	assert.Equal(t, "lee", out.Body.Username)
	require.NotNil(t, out.Body.StressLevel)
	assert.Equal(t, 6, *out.Body.StressLevel)

	level = 11
	_, err = handler.HandleUpdateMe(ctx, input)
	assert.Equal(t, 400, statusOf(t, err))
}

func TestUpsertDiscordUser(t *testing.T) {
	db, handler := setupAuth(t)

	existing := models.User{Email: "jo@example.com", Username: "jo"}
	require.NoError(t, db.Create(&existing).Error)

	linked, err := handler.upsertDiscordUser(discordUser{ID: "42", Username: "jo_discord", Email: "jo@example.com", Verified: true})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.ID)
	assert.Equal(t, "jo", linked.Username)
	require.NotNil(t, linked.DiscordID)
	assert.Equal(t, "42", *linked.DiscordID)

	again, err := handler.upsertDiscordUser(discordUser{ID: "42", Username: "jo_discord", Avatar: "new"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, again.ID)
	assert.Equal(t, "new", again.Avatar)

	fresh, err := handler.upsertDiscordUser(discordUser{ID: "77", Username: "noemail"})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, fresh.ID)
	assert.Equal(t, "77@users.discord", fresh.Email)
}

func TestUpsertDiscordUser_UnverifiedEmail(t *testing.T) {
	db, handler := setupAuth(t)

	existing := models.User{Email: "jo@example.com", Username: "jo"}
	require.NoError(t, db.Create(&existing).Error)

	// matches an existing account but cannot be trusted to link it
	other, err := handler.upsertDiscordUser(discordUser{ID: "99", Username: "not_jo", Email: "jo@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, other.ID)
	assert.Equal(t, "99@users.discord", other.Email)
	assert.False(t, other.IsEmailVerified)

	// an unclaimed address stays free for its owner
	squatter, err := handler.upsertDiscordUser(discordUser{ID: "100", Username: "sam", Email: "sam@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "100@users.discord", squatter.Email)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "sam@example.com").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
