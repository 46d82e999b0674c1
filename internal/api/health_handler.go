package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ukp-platform/ukp-api/internal/api/shared"
	"github.com/ukp-platform/ukp-api/internal/health"
	"github.com/ukp-platform/ukp-api/internal/platform/logger"
)

// HealthChecker is implemented by *health.Service.
type HealthChecker interface {
	AssertHealthy(ctx context.Context) error
	DetailedHealth(ctx context.Context) health.Report
}

// HealthHandler serves the health endpoints.
type HealthHandler struct {
	checker HealthChecker
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(checker HealthChecker, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		checker: checker,
		logger:  logger.With("component", "health_handler"),
	}
}

// Config handles GET /health/config. It answers {"status":"ok"} when every
// configured dependency is reachable and 503 naming the failures otherwise.
func (h *HealthHandler) Config(w http.ResponseWriter, r *http.Request) {
	err := h.checker.AssertHealthy(r.Context())
	if err == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "ok"})
		return
	}

	var unavailable *health.UnavailableError
	if !errors.As(err, &unavailable) {
		HandleAPIError(w, r, err, "Health check failed")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Warn("health check failed",
		"dependencies", unavailable.Dependencies)
	shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, UnhealthyResponse{
		Status:       "error",
		Error:        unavailable.Error(),
		Dependencies: unavailable.Dependencies,
		TraceID:      shared.GetTraceID(r.Context()),
	})
}

// Detailed handles GET /health/detailed. The report is returned with 200
// when healthy and 503 otherwise.
func (h *HealthHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	report := h.checker.DetailedHealth(r.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	shared.RespondWithJSON(w, r, status, report)
}
