package repository

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
)

// AircraftRepository defines the entity store operations for aircraft
type AircraftRepository interface {
	Create(ctx context.Context, aircraft *entity.Aircraft) error
	GetByModel(ctx context.Context, model string) (*entity.Aircraft, error)
	Update(ctx context.Context, aircraft *entity.Aircraft) error
	Delete(ctx context.Context, model string) error
	List(ctx context.Context) ([]*entity.Aircraft, error)
}
