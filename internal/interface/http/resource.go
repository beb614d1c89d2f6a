package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"flight-inventory-service/internal/domain"
	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/usecase/command"
	"flight-inventory-service/pkg/api"
	"flight-inventory-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Resource exposes the commands and reads of one entity type. T is the
// entity and P its update patch.
type Resource[T any, P any] struct {
	prefix  string
	handler *command.Handler[T]
	list    func(ctx context.Context) ([]*T, error)
	get     func(ctx context.Context, key string) (*T, error)
	create  func(e T) command.Command[T]
	update  func(key string, patch P) command.Command[T]
	remove  func(key string) command.Command[T]
	logger  logger.Logger
	api     api.Api
}

// Prefix is the path the resource is mounted under
func (res *Resource[T, P]) Prefix() string { return res.prefix }

// Routes registers the resource endpoints. The history routes are static and
// take precedence over /{key}.
func (res *Resource[T, P]) Routes(r chi.Router) {
	r.Post("/", res.Create)
	r.Get("/", res.List)
	r.Post("/undo", res.Undo)
	r.Post("/redo", res.Redo)
	r.Get("/history", res.History)
	r.Get("/{key}", res.Get)
	r.Patch("/{key}", res.Update)
	r.Delete("/{key}", res.Delete)
}

// Create handles POST /
func (res *Resource[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var e T
	if err := decode(r, &e); err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}

	result, err := res.handler.Execute(ctx, res.create(e))
	if err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}
	res.api.Created(ctx, w, result.Entity)
}

// List handles GET /
func (res *Resource[T, P]) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := res.list(ctx)
	if err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}
	if items == nil {
		items = []*T{}
	}
	res.api.Success(ctx, w, items)
}

// Get handles GET /{key}
func (res *Resource[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e, err := res.get(ctx, chi.URLParam(r, "key"))
	if err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}
	res.api.Success(ctx, w, e)
}

// Update handles PATCH /{key}
func (res *Resource[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var patch P
	if err := decode(r, &patch); err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}

	result, err := res.handler.Execute(ctx, res.update(chi.URLParam(r, "key"), patch))
	if err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}
	res.api.Success(ctx, w, result.Entity)
}

// Delete handles DELETE /{key}
func (res *Resource[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := res.handler.Execute(ctx, res.remove(chi.URLParam(r, "key")))
	if err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}
	res.api.Success(ctx, w, map[string]string{"message": result.Summary})
}

// Undo handles POST /undo and answers with the resulting history
func (res *Resource[T, P]) Undo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := res.handler.Undo(ctx); err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}
	res.api.Success(ctx, w, res.handler.History())
}

// Redo handles POST /redo
func (res *Resource[T, P]) Redo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := res.handler.Redo(ctx)
	if err != nil {
		writeError(ctx, w, res.api, res.logger, err)
		return
	}
	if result.Entity == nil {
		res.api.Success(ctx, w, map[string]string{"message": result.Summary})
		return
	}
	res.api.Success(ctx, w, result.Entity)
}

// History handles GET /history
func (res *Resource[T, P]) History(w http.ResponseWriter, r *http.Request) {
	res.api.Success(r.Context(), w, res.handler.History())
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// Reads is the read side the resources list and fetch from
type Reads interface {
	ListAirlines(ctx context.Context) ([]*entity.Airline, error)
	ListAirports(ctx context.Context) ([]*entity.Airport, error)
	ListAircraft(ctx context.Context) ([]*entity.Aircraft, error)
	ListFlights(ctx context.Context) ([]*entity.Flight, error)
	GetAirline(ctx context.Context, code string) (*entity.Airline, error)
	GetAirport(ctx context.Context, code string) (*entity.Airport, error)
	GetAircraft(ctx context.Context, model string) (*entity.Aircraft, error)
	GetFlight(ctx context.Context, number string) (*entity.Flight, error)
}

// NewAirlineResource mounts airline commands under /airlines
func NewAirlineResource(h *command.Handler[entity.Airline], store command.Store[entity.Airline], reads Reads, log logger.Logger) *Resource[entity.Airline, entity.AirlinePatch] {
	return &Resource[entity.Airline, entity.AirlinePatch]{
		prefix:  "/airlines",
		handler: h,
		list:    reads.ListAirlines,
		get:     reads.GetAirline,
		create:  func(e entity.Airline) command.Command[entity.Airline] { return command.NewCreateAirline(store, e) },
		update: func(key string, p entity.AirlinePatch) command.Command[entity.Airline] {
			return command.NewUpdateAirline(store, key, p)
		},
		remove: func(key string) command.Command[entity.Airline] { return command.NewDeleteAirline(store, key) },
		logger: log,
		api:    api.New(),
	}
}

// NewAirportResource mounts airport commands under /airports
func NewAirportResource(h *command.Handler[entity.Airport], store command.Store[entity.Airport], reads Reads, log logger.Logger) *Resource[entity.Airport, entity.AirportPatch] {
	return &Resource[entity.Airport, entity.AirportPatch]{
		prefix:  "/airports",
		handler: h,
		list:    reads.ListAirports,
		get:     reads.GetAirport,
		create:  func(e entity.Airport) command.Command[entity.Airport] { return command.NewCreateAirport(store, e) },
		update: func(key string, p entity.AirportPatch) command.Command[entity.Airport] {
			return command.NewUpdateAirport(store, key, p)
		},
		remove: func(key string) command.Command[entity.Airport] { return command.NewDeleteAirport(store, key) },
		logger: log,
		api:    api.New(),
	}
}

// NewAircraftResource mounts aircraft commands under /aircrafts
func NewAircraftResource(h *command.Handler[entity.Aircraft], store command.Store[entity.Aircraft], reads Reads, log logger.Logger) *Resource[entity.Aircraft, entity.AircraftPatch] {
	return &Resource[entity.Aircraft, entity.AircraftPatch]{
		prefix:  "/aircrafts",
		handler: h,
		list:    reads.ListAircraft,
		get:     reads.GetAircraft,
		create:  func(e entity.Aircraft) command.Command[entity.Aircraft] { return command.NewCreateAircraft(store, e) },
		update: func(key string, p entity.AircraftPatch) command.Command[entity.Aircraft] {
			return command.NewUpdateAircraft(store, key, p)
		},
		remove: func(key string) command.Command[entity.Aircraft] { return command.NewDeleteAircraft(store, key) },
		logger: log,
		api:    api.New(),
	}
}

// NewFlightResource mounts flight commands under /flights
func NewFlightResource(h *command.Handler[entity.Flight], store command.Store[entity.Flight], reads Reads, log logger.Logger) *Resource[entity.Flight, entity.FlightPatch] {
	return &Resource[entity.Flight, entity.FlightPatch]{
		prefix:  "/flights",
		handler: h,
		list:    reads.ListFlights,
		get:     reads.GetFlight,
		create:  func(e entity.Flight) command.Command[entity.Flight] { return command.NewCreateFlight(store, e) },
		update: func(key string, p entity.FlightPatch) command.Command[entity.Flight] {
			return command.NewUpdateFlight(store, key, p)
		},
		remove: func(key string) command.Command[entity.Flight] { return command.NewDeleteFlight(store, key) },
		logger: log,
		api:    api.New(),
	}
}
