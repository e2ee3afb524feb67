package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is the dependency probe used by the readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests.
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Uptime    string    `json:"uptime"`
}

type ReadinessResponse struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Service   string                  `json:"service"`
	Checks    map[string]HealthStatus `json:"checks"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// HealthCheck reports basic service liveness.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   "auth-gateway",
		Uptime:    time.Since(startTime).String(),
	})
}

// ReadinessCheck verifies the database is reachable.
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	checks := make(map[string]HealthStatus)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Readiness check failed", "error", err)
		checks["database"] = HealthStatus{
			Status:  "unhealthy",
			Message: err.Error(),
		}
	} else {
		checks["database"] = HealthStatus{
			Status:  "healthy",
			Latency: time.Since(start).Round(time.Millisecond).String(),
		}
	}

	allHealthy := true
	for _, check := range checks {
		if check.Status != "healthy" {
			allHealthy = false
			break
		}
	}

	status := "ready"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, ReadinessResponse{
		Status:    status,
		Timestamp: time.Now(),
		Service:   "auth-gateway",
		Checks:    checks,
	})
}

// LivenessCheck reports process liveness.
func (h *HealthHandler) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Service:   "auth-gateway",
		Uptime:    time.Since(startTime).String(),
	})
}

var startTime = time.Now()
