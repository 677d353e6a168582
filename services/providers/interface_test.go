package providers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	retryable := NewExtractorError("gemini", "INTERNAL", "server error", 500, true, nil)
	assert.True(t, IsRetryable(retryable))

	permanent := NewExtractorError("gemini", "INVALID_ARGUMENT", "bad key", 400, false, nil)
	assert.False(t, IsRetryable(permanent))

	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(nil))
}

func TestExtractorErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewExtractorError("gemini", "HTTP_ERROR", "HTTP request failed", 0, true, cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "HTTP request failed")
	assert.Contains(t, err.Error(), "connection reset")
}
