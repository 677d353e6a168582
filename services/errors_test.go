package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorClassification(t *testing.T) {
	assert.True(t, IsValidationError(ErrNoDocuments))
	assert.True(t, IsNoEventsError(ErrNoEvents))
	assert.True(t, IsExternalError(ErrExtractorUnavailable))
	assert.True(t, IsInternalError(ErrChronologyBuild))

	assert.False(t, IsValidationError(errors.New("plain")))
	assert.Equal(t, ErrorType(""), GetErrorType(errors.New("plain")))
}

func TestDomainErrorIsMatchesByType(t *testing.T) {
	wrapped := fmt.Errorf("request failed: %w", ErrNoEvents.WithDetail("documents", 3))
	assert.True(t, errors.Is(wrapped, ErrNoEvents))
	assert.True(t, IsNoEventsError(wrapped))
	assert.False(t, errors.Is(wrapped, ErrNoDocuments))
}

func TestWithDetailDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrNoEvents.WithDetail("documents", 2)

	require.NotSame(t, ErrNoEvents, detailed)
	assert.Equal(t, 2, detailed.Details["documents"])
	assert.NotContains(t, ErrNoEvents.Details, "documents")

	chained := detailed.WithDetail("case", "x")
	assert.Equal(t, 2, chained.Details["documents"])
	assert.NotContains(t, detailed.Details, "case")
}

func TestWrapHelpers(t *testing.T) {
	cause := errors.New("connection refused")

	external := WrapExternal("extractor call failed", cause)
	assert.True(t, IsExternalError(external))
	assert.True(t, errors.Is(external, cause))
	assert.Contains(t, external.Error(), "extractor call failed")
	assert.Contains(t, external.Error(), "connection refused")

	internal := WrapInternal("pipeline broke", cause)
	assert.True(t, IsInternalError(internal))
	assert.Equal(t, ErrorTypeInternal, GetErrorType(internal))
}

func TestGetErrorDetails(t *testing.T) {
	err := ErrNoEvents.WithDetail("documents", 4)
	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, 4, details["documents"])

	assert.Nil(t, GetErrorDetails(errors.New("plain")))
}
