package handlers

import (
	"net/http"

	"github.com/bobmcallan/weather-mcp/internal/common"
	"github.com/bobmcallan/weather-mcp/internal/router"
)

// SecretsHandler lists the secrets the router expects its host to provide.
// Only names and descriptions are served, never values.
type SecretsHandler struct {
	logger *common.Logger
	list   func() []router.SecretDescription
}

// NewSecretsHandler creates a new secrets handler.
func NewSecretsHandler(logger *common.Logger, list func() []router.SecretDescription) *SecretsHandler {
	return &SecretsHandler{logger: logger, list: list}
}

// ServeHTTP handles GET /api/secrets.
func (h *SecretsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	if h.list == nil {
		WriteError(w, http.StatusServiceUnavailable, "secret catalog unavailable")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"secrets": h.list(),
	})
}
