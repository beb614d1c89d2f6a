package repository

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
)

// AirlineRepository defines the entity store operations for airlines
type AirlineRepository interface {
	Create(ctx context.Context, airline *entity.Airline) error
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
	Update(ctx context.Context, airline *entity.Airline) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]*entity.Airline, error)
}
