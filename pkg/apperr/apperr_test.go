package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", Validation("bad status %q", "live"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("Unauthorized"), http.StatusUnauthorized},
		{"not found", NotFound("Work"), http.StatusNotFound},
		{"invalid state", InvalidState("work must be submitted"), http.StatusConflict},
		{"capacity", CapacityExceeded("draft limit reached"), http.StatusBadRequest},
		{"conflict", Conflict("username already taken"), http.StatusConflict},
		{"internal", Internal("store failed", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("toggling like: %w", NotFound("Work"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("creating draft: %w", CapacityExceeded("draft limit reached"))

	assert.True(t, IsKind(err, KindCapacityExceeded))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("boom"), KindCapacityExceeded))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("store failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "Work not found", NotFound("Work").Error())
}
