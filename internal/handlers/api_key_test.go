package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gdg-garage/mental-health-partner-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyLifecycle(t *testing.T) {
	f := setup(t)
	h := NewAPIKeyHandler(f.db, f.auth, f.logger)

	input := &CreateAPIKeyInput{}
	input.Body.Name = "watch"
	created, err := h.HandleCreate(f.ctx, input)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.Body.Key, keyPrefix))

	list, err := h.HandleList(f.ctx, &auth.AuthInput{})
	require.NoError(t, err)
	require.Len(t, list.Body, 1)
	assert.Equal(t, "..."+created.Body.Key[len(created.Body.Key)-4:], list.Body[0].Key)

	other := asUser(f.newUser(t, "bob").ID)
	_, err = h.HandleDelete(other, &DeleteAPIKeyInput{ID: created.Body.ID})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = h.HandleDelete(f.ctx, &DeleteAPIKeyInput{ID: created.Body.ID})
	require.NoError(t, err)

	list, err = h.HandleList(f.ctx, &auth.AuthInput{})
	require.NoError(t, err)
	assert.Empty(t, list.Body)
}

func TestAPIKeyExpiryMustBeInFuture(t *testing.T) {
	f := setup(t)
	h := NewAPIKeyHandler(f.db, f.auth, f.logger)

	past := time.Now().Add(-time.Hour)
	input := &CreateAPIKeyInput{}
	input.Body.Name = "widget"
	input.Body.ExpiresAt = &past
	_, err := h.HandleCreate(f.ctx, input)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}
