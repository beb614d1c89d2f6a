package http

import (
	"context"
	"net/http"
	"strconv"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/pkg/api"
	"flight-inventory-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Searcher runs keyword queries against the search index
type Searcher interface {
	Search(ctx context.Context, kind entity.Kind, text string, limit int) ([]entity.Document, error)
}

// SearchHit is one search result
type SearchHit struct {
	ID       string                 `json:"id"`
	Document map[string]interface{} `json:"document"`
}

// SearchHandler handles keyword search requests
type SearchHandler struct {
	searcher Searcher
	logger   logger.Logger
	api      api.Api
}

// NewSearchHandler creates a new instance of SearchHandler
func NewSearchHandler(searcher Searcher, log logger.Logger) *SearchHandler {
	return &SearchHandler{searcher: searcher, logger: log, api: api.New()}
}

func (h *SearchHandler) Prefix() string { return "/search" }

func (h *SearchHandler) Routes(r chi.Router) {
	r.Get("/{kind}", h.Search)
}

// Search handles GET /search/{kind}?q=&limit=. A missing or malformed limit
// falls back to the default.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, ok := entity.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		kind = entity.Kind(chi.URLParam(r, "kind"))
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}

	docs, err := h.searcher.Search(ctx, kind, r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(ctx, w, h.api, h.logger, err)
		return
	}

	hits := make([]SearchHit, 0, len(docs))
	for _, d := range docs {
		hits = append(hits, SearchHit{ID: d.ID, Document: d.Fields})
	}
	h.api.Success(ctx, w, hits)
}
