package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultOpenRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultOpenRouterModel = "deepseek/deepseek-chat-v3-0324:free"
	appTitle               = "Mental Health Partner"
)

type OpenRouterConfig struct {
	APIKey  string
	URL     string
	Model   string
	SiteURL string
	Timeout time.Duration
}

// OpenRouterClient calls an OpenAI compatible chat completions endpoint.
type OpenRouterClient struct {
	apiKey     string
	url        string
	model      string
	siteURL    string
	httpClient *http.Client
}

func NewOpenRouterClient(cfg OpenRouterConfig) *OpenRouterClient {
	if cfg.URL == "" {
		cfg.URL = DefaultOpenRouterURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &OpenRouterClient{
		apiKey:     cfg.APIKey,
		url:        cfg.URL,
		model:      cfg.Model,
		siteURL:    cfg.SiteURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float32   `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenRouterClient) Complete(ctx context.Context, req Request) (string, error) {
	if c.apiKey == "" {
		return "", newError(KindUnknown, 0, errors.New("openrouter API key is not configured"))
	}

	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		TopP:        req.TopP,
	})
	if err != nil {
		return "", newError(KindUnknown, 0, fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", newError(KindUnknown, 0, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("HTTP-Referer", c.siteURL)
	httpReq.Header.Set("X-Title", appTitle)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", newError(KindRateLimited, resp.StatusCode, errors.New("rate limit exceeded"))
	}
	if resp.StatusCode != http.StatusOK {
		return "", newError(KindHTTPError, resp.StatusCode, fmt.Errorf("unexpected status: %s", truncate(string(body), 200)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", newError(KindMalformedResponse, 0, fmt.Errorf("parse response: %w", err))
	}
	if parsed.Error != nil {
		return "", newError(KindHTTPError, resp.StatusCode, errors.New(parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return "", newError(KindMalformedResponse, 0, errors.New("no choices in response"))
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", newError(KindMalformedResponse, 0, errors.New("empty completion"))
	}
	return content, nil
}

func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(KindTimeout, 0, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(KindTimeout, 0, err)
	}
	return newError(KindConnectionError, 0, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
