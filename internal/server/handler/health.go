package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether a backing store is reachable. Optional; a nil
// pinger is reported as "disabled".
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the health-check endpoint.
type HealthHandler struct {
	redis  Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a HealthHandler. redis may be nil when running
// on the in-memory history store.
func NewHealthHandler(redis Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{redis: redis, logger: logger}
}

// HealthCheck responds with the server status and backing-store reachability.
// GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "ok"
		if err := h.redis.Ping(r.Context()); err != nil {
			redisStatus = "unreachable"
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"redis":     redisStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
