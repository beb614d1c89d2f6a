package repository

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
)

// ChangeFeed publishes committed entity changes to downstream consumers
type ChangeFeed interface {
	Publish(ctx context.Context, event entity.ChangeEvent) error
}
