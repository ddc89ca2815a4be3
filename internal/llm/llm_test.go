package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenRouterClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenRouterClient(OpenRouterConfig{
		APIKey:  "test-key",
		URL:     srv.URL,
		SiteURL: "http://localhost:3000",
		Timeout: time.Second,
	})
}

func TestOpenRouterClient_Complete(t *testing.T) {
	var got chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "http://localhost:3000", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "Mental Health Partner", r.Header.Get("X-Title"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  That sounds hard.  "}}]}`))
	})

	reply, err := client.Complete(context.Background(), DefaultRequest([]Message{
		{Role: RoleSystem, Content: "be kind"},
		{Role: RoleUser, Content: "rough day"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "That sounds hard.", reply)

	assert.Equal(t, DefaultOpenRouterModel, got.Model)
	assert.Len(t, got.Messages, 2)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)
	assert.InDelta(t, 0.9, got.TopP, 1e-6)
	assert.Equal(t, 350, got.MaxTokens)
}

func TestOpenRouterClient_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   Kind
		wantStatus int
	}{
		{"RateLimited", http.StatusTooManyRequests, `{}`, KindRateLimited, 429},
		{"ServerError", http.StatusInternalServerError, `oops`, KindHTTPError, 500},
		{"MalformedBody", http.StatusOK, `not json`, KindMalformedResponse, 0},
		{"NoChoices", http.StatusOK, `{"choices":[]}`, KindMalformedResponse, 0},
		{"EmptyContent", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`, KindMalformedResponse, 0},
		{"ErrorPayload", http.StatusOK, `{"error":{"message":"model overloaded"}}`, KindHTTPError, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Complete(context.Background(), DefaultRequest(nil))
			require.Error(t, err)

			var llmErr *Error
			require.True(t, errors.As(err, &llmErr))
			assert.Equal(t, tt.wantKind, llmErr.Kind)
			assert.Equal(t, tt.wantStatus, llmErr.StatusCode)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestOpenRouterClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, DefaultRequest(nil))
	assert.Equal(t, KindTimeout, KindOf(err))
}

func TestOpenRouterClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewOpenRouterClient(OpenRouterConfig{APIKey: "test-key", URL: url, Timeout: time.Second})
	_, err := client.Complete(context.Background(), DefaultRequest(nil))
	assert.Equal(t, KindConnectionError, KindOf(err))
}

func TestOpenRouterClient_MissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	client := NewOpenRouterClient(OpenRouterConfig{URL: srv.URL})
	_, err := client.Complete(context.Background(), DefaultRequest(nil))
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.False(t, called)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindTimeout, KindOf(context.DeadlineExceeded))
	assert.Equal(t, KindRateLimited, KindOf(&Error{Kind: KindRateLimited}))
}

func TestToGeminiContents(t *testing.T) {
	system, contents := toGeminiContents([]Message{
		{Role: RoleSystem, Content: "rules"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: RoleUser, Content: "help"},
	})
	require.NotNil(t, system)
	assert.Equal(t, "rules", system.Parts[0].Text)
	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "help", contents[2].Parts[0].Text)

	system, _ = toGeminiContents([]Message{{Role: RoleUser, Content: "hi"}})
	assert.Nil(t, system)
}

func newTestGeminiClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewGeminiClient(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestGeminiClient_Complete(t *testing.T) {
	client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, DefaultGeminiModel)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":" Take a slow breath. "}]}}]}`))
	})

	reply, err := client.Complete(context.Background(), DefaultRequest([]Message{
		{Role: RoleSystem, Content: "be kind"},
		{Role: RoleUser, Content: "rough day"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Take a slow breath.", reply)
}

func TestGeminiClient_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
	}{
		{"RateLimited", http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`, KindRateLimited},
		{"ServerError", http.StatusInternalServerError, `{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`, KindHTTPError},
		{"NoCandidates", http.StatusOK, `{"candidates":[]}`, KindMalformedResponse},
		{"NotJSON", http.StatusOK, `not json`, KindMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Complete(context.Background(), DefaultRequest([]Message{{Role: RoleUser, Content: "hi"}}))
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), GeminiConfig{})
	assert.Error(t, err)
}
