package repository

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
)

// FlightRepository defines the entity store operations for flights.
// Create and Update resolve the airport, airline and aircraft keys and fail
// with domain.ErrNotFound when one does not exist.
type FlightRepository interface {
	Create(ctx context.Context, flight *entity.Flight) error
	GetByNumber(ctx context.Context, number string) (*entity.Flight, error)
	Update(ctx context.Context, flight *entity.Flight) error
	Delete(ctx context.Context, number string) error
	List(ctx context.Context) ([]*entity.Flight, error)
	// ListNumbersByReference returns the numbers of flights referencing the given airline, airport or aircraft
	ListNumbersByReference(ctx context.Context, kind entity.Kind, key string) ([]string, error)
}
