package providers

import (
	"context"
	"time"

	"github.com/lexops/casechron/models"
)

// Extractor is the boundary to the external LLM collaborator. Both
// operations return raw event-like records; normalization of those
// records is the pipeline's job, but tolerating the model's response
// envelope (prose around a JSON array, formatting noise) is the
// implementation's.
type Extractor interface {
	// Name returns the extractor name (e.g., "gemini")
	Name() string

	// ExtractEvents pulls raw candidate events out of one document.
	// An empty result is legitimate and not an error.
	ExtractEvents(ctx context.Context, documentText, documentName string) ([]map[string]interface{}, error)

	// ReasonOverEvents asks the model to re-annotate and reorder an
	// accumulated event list in light of the case description. Output
	// may legitimately be unusable; callers fall back to their input.
	ReasonOverEvents(ctx context.Context, events []models.Event, caseDescription string) ([]map[string]interface{}, error)

	// IsAvailable checks if the extractor is currently reachable
	IsAvailable(ctx context.Context) bool
}

// ExtractorConfig holds common configuration for extractor adapters
type ExtractorConfig struct {
	// APIKey for authentication
	APIKey string

	// BaseURL for the API (optional override)
	BaseURL string

	// Model identifier to request
	Model string

	// Timeout for requests
	Timeout time.Duration

	// MaxRetries for failed requests
	MaxRetries int

	// RetryDelay between retries
	RetryDelay time.Duration

	// Additional headers
	Headers map[string]string
}

// DefaultExtractorConfig returns a sensible default configuration
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Timeout:    60 * time.Second,
		MaxRetries: 3,
		RetryDelay: 1 * time.Second,
		Headers:    make(map[string]string),
	}
}

// ExtractorError represents an error from an extractor adapter
type ExtractorError struct {
	// Extractor that generated the error
	Extractor string

	// Code is the error code
	Code string

	// Message is the error message
	Message string

	// StatusCode is the HTTP status code (if applicable)
	StatusCode int

	// Retryable indicates if the request can be retried
	Retryable bool

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface
func (e *ExtractorError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap implements error unwrapping
func (e *ExtractorError) Unwrap() error {
	return e.Cause
}

// NewExtractorError creates a new extractor error
func NewExtractorError(extractor, code, message string, statusCode int, retryable bool, cause error) *ExtractorError {
	return &ExtractorError{
		Extractor:  extractor,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  retryable,
		Cause:      cause,
	}
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if extErr, ok := err.(*ExtractorError); ok {
		return extErr.Retryable
	}
	return false
}
