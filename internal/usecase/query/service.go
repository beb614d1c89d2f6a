// Package query serves inventory reads from the entity store, the read cache
// and the search index.
package query

import (
	"context"
	"fmt"
	"time"

	"flight-inventory-service/internal/domain"
	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"
	"flight-inventory-service/pkg/logger"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// Service answers list, get-by-key and search requests
type Service struct {
	airlines  repository.AirlineRepository
	airports  repository.AirportRepository
	aircrafts repository.AircraftRepository
	flights   repository.FlightRepository
	index     repository.SearchIndex
	cache     repository.EntityCache
	timeout   time.Duration
	logger    logger.Logger
}

// NewService creates a query service. cache may be nil to read straight from the store.
func NewService(
	airlines repository.AirlineRepository,
	airports repository.AirportRepository,
	aircrafts repository.AircraftRepository,
	flights repository.FlightRepository,
	index repository.SearchIndex,
	cache repository.EntityCache,
	timeout time.Duration,
	log logger.Logger,
) *Service {
	return &Service{
		airlines:  airlines,
		airports:  airports,
		aircrafts: aircrafts,
		flights:   flights,
		index:     index,
		cache:     cache,
		timeout:   timeout,
		logger:    log.With("component", "query"),
	}
}

func (s *Service) ListAirlines(ctx context.Context) ([]*entity.Airline, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.airlines.List(ctx)
}

func (s *Service) ListAirports(ctx context.Context) ([]*entity.Airport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.airports.List(ctx)
}

func (s *Service) ListAircraft(ctx context.Context) ([]*entity.Aircraft, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.aircrafts.List(ctx)
}

func (s *Service) ListFlights(ctx context.Context) ([]*entity.Flight, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.flights.List(ctx)
}

// GetAirline returns the airline with code
func (s *Service) GetAirline(ctx context.Context, code string) (*entity.Airline, error) {
	return readThrough(ctx, s, entity.KindAirline, code, s.airlines.GetByCode)
}

// GetAirport returns the airport with code
func (s *Service) GetAirport(ctx context.Context, code string) (*entity.Airport, error) {
	return readThrough(ctx, s, entity.KindAirport, code, s.airports.GetByCode)
}

// GetAircraft returns the aircraft with model
func (s *Service) GetAircraft(ctx context.Context, model string) (*entity.Aircraft, error) {
	return readThrough(ctx, s, entity.KindAircraft, model, s.aircrafts.GetByModel)
}

// GetFlight returns the flight with number, references included
func (s *Service) GetFlight(ctx context.Context, number string) (*entity.Flight, error) {
	return readThrough(ctx, s, entity.KindFlight, number, s.flights.GetByNumber)
}

// Search runs a keyword query against the search index. limit is clamped to [1, 100].
func (s *Service) Search(ctx context.Context, kind entity.Kind, text string, limit int) ([]entity.Document, error) {
	if kind.IndexName() == "" {
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, kind)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	docs, err := s.index.Search(ctx, kind, text, limit)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []entity.Document{}
	}
	return docs, nil
}

// readThrough serves key from the cache, loading and caching it on a miss.
// The cache generation is read before the load, so an invalidation that lands
// while the load is in flight makes the cache refuse the stale value.
// Cache failures degrade to a store read.
func readThrough[T any](ctx context.Context, s *Service, kind entity.Kind, key string, load func(context.Context, string) (*T, error)) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		var cached T
		found, err := s.cache.Get(ctx, kind, key, &cached)
		if err != nil {
			s.logger.Warn("Cache read failed", "kind", string(kind), "key", key, "error", err)
		} else if found {
			return &cached, nil
		}

		version, err = s.cache.Version(ctx, kind, key)
		if err != nil {
			s.logger.Warn("Cache version read failed", "kind", string(kind), "key", key, "error", err)
		} else {
			cacheable = true
		}
	}

	e, err := load(ctx, key)
	if err != nil {
		return nil, err
	}

	if cacheable {
		stored, err := s.cache.Set(ctx, kind, key, e, version)
		if err != nil {
			s.logger.Warn("Cache write failed", "kind", string(kind), "key", key, "error", err)
		} else if !stored {
			s.logger.Debug("Cache write skipped, entity changed during read", "kind", string(kind), "key", key)
		}
	}
	return e, nil
}
