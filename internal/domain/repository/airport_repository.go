package repository

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
)

// AirportRepository defines the entity store operations for airports
type AirportRepository interface {
	Create(ctx context.Context, airport *entity.Airport) error
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
	Update(ctx context.Context, airport *entity.Airport) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]*entity.Airport, error)
}
