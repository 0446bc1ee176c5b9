package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestLogger_Levels(t *testing.T) {
	logger := New()

	// None of the levels should panic
	logger.Info("work %s published", "work-123")
	logger.Warn("draft cap reached for author %s", "author-123")
	logger.Error("cascade step failed: %v", "connection reset")
}

func TestLogger_Formatting(t *testing.T) {
	logger := New()

	// Formatting with multiple args should not panic
	logger.Info("review %s drove work %s to %s", "rev-1", "work-1", "approved")
	logger.Error("failed to delete %d of %d comments", 2, 5)
}
