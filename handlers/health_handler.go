package handlers

import (
	"context"
	"net/http"

	"github.com/lexops/casechron/utils"
)

// AvailabilityChecker reports whether the external extractor is reachable.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context) bool
}

// HealthCheck returns a simple liveness handler.
func HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// ReadinessCheck reports readiness including extractor reachability.
func ReadinessCheck(extractor AvailabilityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ready", "extractor": "ok"}
		code := http.StatusOK

		if !extractor.IsAvailable(r.Context()) {
			status["status"] = "degraded"
			status["extractor"] = "unreachable"
			code = http.StatusServiceUnavailable
		}

		_ = utils.WriteJSON(w, code, status)
	}
}
