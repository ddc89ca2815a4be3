// Package moderation screens community content and renders anonymous author names.
package moderation

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(hate|kill|attack|destroy)\s+(group|community|people|race|gender)\b`),
	regexp.MustCompile(`(?i)\b(explicit|pornographic|obscene)\b`),
	// phone numbers
	regexp.MustCompile(`(?i)\b(\d{3}[-.\s]??\d{3}[-.\s]??\d{4}|\(\d{3}\)\s*\d{3}[-.\s]??\d{4}|\d{3}[-.\s]??\d{4})\b`),
	regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
}

// CheckContent reports whether text may be published. Empty text never passes.
func CheckContent(text string) bool {
	return matchedPattern(text) == -1 && strings.TrimSpace(text) != ""
}

func matchedPattern(text string) int {
	for i, p := range patterns {
		if p.MatchString(text) {
			return i
		}
	}
	return -1
}

// Screen decides whether user submitted content may be published.
type Screen interface {
	Allow(text string) bool
}

// PatternScreen is the default Screen backed by CheckContent.
type PatternScreen struct {
	logger *zap.Logger
}

func NewPatternScreen(logger *zap.Logger) *PatternScreen {
	return &PatternScreen{logger: logger}
}

func (s *PatternScreen) Allow(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	if i := matchedPattern(text); i >= 0 {
		s.logger.Warn("Content failed moderation", zap.Int("pattern", i))
		return false
	}
	return true
}
