package command

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"
)

type airlineStore struct{ repo repository.AirlineRepository }

// NewAirlineStore adapts an airline repository to Store
func NewAirlineStore(repo repository.AirlineRepository) Store[entity.Airline] {
	return airlineStore{repo: repo}
}

func (s airlineStore) Kind() entity.Kind { return entity.KindAirline }
func (s airlineStore) Create(ctx context.Context, e *entity.Airline) error {
	return s.repo.Create(ctx, e)
}
func (s airlineStore) Get(ctx context.Context, key string) (*entity.Airline, error) {
	return s.repo.GetByCode(ctx, key)
}
func (s airlineStore) Update(ctx context.Context, e *entity.Airline) error {
	return s.repo.Update(ctx, e)
}
func (s airlineStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

type airportStore struct{ repo repository.AirportRepository }

// NewAirportStore adapts an airport repository to Store
func NewAirportStore(repo repository.AirportRepository) Store[entity.Airport] {
	return airportStore{repo: repo}
}

func (s airportStore) Kind() entity.Kind { return entity.KindAirport }
func (s airportStore) Create(ctx context.Context, e *entity.Airport) error {
	return s.repo.Create(ctx, e)
}
func (s airportStore) Get(ctx context.Context, key string) (*entity.Airport, error) {
	return s.repo.GetByCode(ctx, key)
}
func (s airportStore) Update(ctx context.Context, e *entity.Airport) error {
	return s.repo.Update(ctx, e)
}
func (s airportStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

type aircraftStore struct{ repo repository.AircraftRepository }

// NewAircraftStore adapts an aircraft repository to Store
func NewAircraftStore(repo repository.AircraftRepository) Store[entity.Aircraft] {
	return aircraftStore{repo: repo}
}

func (s aircraftStore) Kind() entity.Kind { return entity.KindAircraft }
func (s aircraftStore) Create(ctx context.Context, e *entity.Aircraft) error {
	return s.repo.Create(ctx, e)
}
func (s aircraftStore) Get(ctx context.Context, key string) (*entity.Aircraft, error) {
	return s.repo.GetByModel(ctx, key)
}
func (s aircraftStore) Update(ctx context.Context, e *entity.Aircraft) error {
	return s.repo.Update(ctx, e)
}
func (s aircraftStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

type flightStore struct{ repo repository.FlightRepository }

// NewFlightStore adapts a flight repository to Store
func NewFlightStore(repo repository.FlightRepository) Store[entity.Flight] {
	return flightStore{repo: repo}
}

func (s flightStore) Kind() entity.Kind { return entity.KindFlight }
func (s flightStore) Create(ctx context.Context, e *entity.Flight) error {
	return s.repo.Create(ctx, e)
}
func (s flightStore) Get(ctx context.Context, key string) (*entity.Flight, error) {
	return s.repo.GetByNumber(ctx, key)
}
func (s flightStore) Update(ctx context.Context, e *entity.Flight) error {
	return s.repo.Update(ctx, e)
}
func (s flightStore) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}
