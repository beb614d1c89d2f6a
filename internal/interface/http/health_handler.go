package http

import (
	"net/http"

	"flight-inventory-service/pkg/api"
	"flight-inventory-service/pkg/logger"
)

// SyncStatus reports the state of the index synchronization queue
type SyncStatus interface {
	Pending() int
	Parked() []string
}

// HealthHandler handles health check requests
type HealthHandler struct {
	version string
	sync    SyncStatus
	logger  logger.Logger
	api     api.Api
}

// NewHealthHandler creates a new instance of HealthHandler
func NewHealthHandler(version string, sync SyncStatus, log logger.Logger) *HealthHandler {
	return &HealthHandler{version: version, sync: sync, logger: log, api: api.New()}
}

// HealthCheckHandler reports the service as degraded while changes are parked
func (h *HealthHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	parked := h.sync.Parked()
	status := "healthy"
	if parked == nil {
		parked = []string{}
	}
	if len(parked) > 0 {
		status = "degraded"
	}

	h.api.Success(r.Context(), w, map[string]interface{}{
		"status":       status,
		"version":      h.version,
		"sync_pending": h.sync.Pending(),
		"sync_parked":  parked,
	})
}
