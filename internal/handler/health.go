package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/PlantTycoon_Go/internal/logger"
)

const readinessTimeout = 2 * time.Second

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Pinger is a backing store that can report connectivity, such as the
// Postgres pool or the Redis bank.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NamedPinger labels a Pinger for readiness failure messages
type NamedPinger struct {
	Name   string
	Pinger Pinger
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports ready when every backing store answers a ping.
// With no pingers configured (file store, in-memory bank) it is always ready.
// @Summary Readiness check
// @Description Returns OK if the service is ready to accept traffic
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(pingers ...NamedPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for _, p := range pingers {
			if p.Pinger == nil {
				continue
			}
			if err := p.Pinger.Ping(ctx); err != nil {
				logger.FromContext(ctx).Error("Readiness check failed", "dependency", p.Name, "error", err)
				respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
					Status:  "unavailable",
					Message: p.Name + " connection failed",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
