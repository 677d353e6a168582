package handlers

import (
	"net/http"

	"github.com/lexops/casechron/services"
	"github.com/lexops/casechron/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses. Internal
// detail stays in the logs, never in the response body.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	switch services.GetErrorType(err) {
	case services.ErrorTypeValidation:
		_ = utils.WriteBadRequest(w, err.Error(), services.GetErrorDetails(err))
	case services.ErrorTypeNoEvents:
		_ = utils.WriteUnprocessableEntity(w,
			"No events could be extracted from the provided documents",
			services.GetErrorDetails(err))
	case services.ErrorTypeExternal:
		logger.Error("extractor error", zap.Error(err))
		_ = utils.WriteBadGateway(w, "Event extraction service unavailable")
	default:
		logger.Error("unexpected service error", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
	}
}

// HandleValidationError writes a 400 with per-field messages.
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	details := map[string]interface{}{}
	for field, msg := range utils.GetValidationFields(err) {
		details[field] = msg
	}
	logger.Warn("request validation failed", zap.Error(err))
	_ = utils.WriteBadRequest(w, "Validation failed", details)
}
