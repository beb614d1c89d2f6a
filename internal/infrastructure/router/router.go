package router

import (
	"net/http"
	"time"

	"flight-inventory-service/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resource is a group of API routes mounted under a common prefix
type Resource interface {
	Prefix() string
	Routes(r chi.Router)
}

// Router mounts registered resources under /api/v1
type Router struct {
	resources []Resource
	logger    logger.Logger
}

// NewRouter creates a new router
func NewRouter(logger logger.Logger) *Router {
	return &Router{
		resources: make([]Resource, 0),
		logger:    logger,
	}
}

// Register adds a resource to the API
func (r *Router) Register(resource Resource) {
	r.resources = append(r.resources, resource)
	r.logger.Info("Registered resource", "prefix", resource.Prefix())
}

// Handler builds the HTTP handler serving /health, /metrics and every registered resource
func (r *Router) Handler(health http.HandlerFunc, metrics http.Handler) http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(r.requestLogger)
	mux.Use(middleware.Recoverer)

	if metrics == nil {
		metrics = promhttp.Handler()
	}
	mux.Get("/health", health)
	mux.Method(http.MethodGet, "/metrics", metrics)

	mux.Route("/api/v1", func(api chi.Router) {
		for _, res := range r.resources {
			api.Route(res.Prefix(), res.Routes)
		}
	})
	return mux
}

func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		defer func() {
			r.logger.Debug("Request served",
				"request_id", middleware.GetReqID(req.Context()),
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start))
		}()
		next.ServeHTTP(ww, req)
	})
}
