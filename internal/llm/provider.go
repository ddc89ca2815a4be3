// Package llm talks to the chat completion providers behind the conversational partner.
package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a provider independent chat completion request.
type Request struct {
	Messages    []Message
	Temperature float32
	TopP        float32
	MaxTokens   int
}

// DefaultRequest carries the sampling settings used for partner replies.
func DefaultRequest(messages []Message) Request {
	return Request{
		Messages:    messages,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   350,
	}
}

// Provider produces a single assistant reply for a chat history.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

type Kind string

const (
	KindRateLimited       Kind = "rate_limited"
	KindHTTPError         Kind = "http_error"
	KindTimeout           Kind = "timeout"
	KindConnectionError   Kind = "connection_error"
	KindMalformedResponse Kind = "malformed_response"
	KindUnknown           Kind = "unknown"
)

// Error is returned by every Provider. StatusCode is set for KindRateLimited and KindHTTPError.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("llm %s (status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf classifies err. Errors that did not come from a Provider are KindUnknown.
func KindOf(err error) Kind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindUnknown
}

func newError(kind Kind, status int, err error) *Error {
	return &Error{Kind: kind, StatusCode: status, Err: err}
}
