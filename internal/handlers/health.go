package handlers

import (
	"net/http"
	"time"

	"github.com/bobmcallan/weather-mcp/internal/common"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger  *common.Logger
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *common.Logger) *HealthHandler {
	return &HealthHandler{logger: logger, started: time.Now()}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
