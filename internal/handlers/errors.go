package handlers

import (
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// internalError logs err and returns a 500 that does not leak it.
func internalError(logger *zap.Logger, msg string, err error) error {
	logger.Error(msg, zap.Error(err))
	return huma.Error500InternalServerError(msg)
}

func validMood(score *int, upper int) bool {
	return score == nil || (*score >= 1 && *score <= upper)
}
