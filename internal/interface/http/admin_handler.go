package http

import (
	"context"
	"fmt"
	"net/http"

	"flight-inventory-service/internal/domain"
	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/usecase/indexsync"
	"flight-inventory-service/pkg/api"
	"flight-inventory-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Rebuilder re-synchronizes one kind of the search index with the store
type Rebuilder interface {
	Rebuild(ctx context.Context, kind entity.Kind) (indexsync.RebuildStats, error)
}

// AdminHandler handles index maintenance requests
type AdminHandler struct {
	rebuilder Rebuilder
	logger    logger.Logger
	api       api.Api
}

// NewAdminHandler creates a new instance of AdminHandler
func NewAdminHandler(rebuilder Rebuilder, log logger.Logger) *AdminHandler {
	return &AdminHandler{rebuilder: rebuilder, logger: log, api: api.New()}
}

func (h *AdminHandler) Prefix() string { return "/admin" }

func (h *AdminHandler) Routes(r chi.Router) {
	r.Post("/reindex/{kind}", h.Reindex)
}

// Reindex handles POST /admin/reindex/{kind}; kind "all" rebuilds every kind
func (h *AdminHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	param := chi.URLParam(r, "kind")
	var kinds []entity.Kind
	if param == "all" {
		kinds = entity.Kinds()
	} else {
		kind, ok := entity.ParseKind(param)
		if !ok {
			writeError(ctx, w, h.api, h.logger, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, param))
			return
		}
		kinds = []entity.Kind{kind}
	}

	stats := make([]indexsync.RebuildStats, 0, len(kinds))
	for _, kind := range kinds {
		s, err := h.rebuilder.Rebuild(ctx, kind)
		if err != nil {
			writeError(ctx, w, h.api, h.logger, err)
			return
		}
		h.logger.Info("Reindex requested", "kind", string(kind), "reindexed", s.Reindexed, "orphans", s.Orphans)
		stats = append(stats, s)
	}
	h.api.Success(ctx, w, stats)
}
