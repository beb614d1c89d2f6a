package repository

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
)

// EntityCache is a read-through cache of entities by business key. Writes are
// fenced by a per-key generation so a read that raced an invalidation cannot
// put the old value back.
type EntityCache interface {
	// Get decodes the cached value into dest and reports whether it was present
	Get(ctx context.Context, kind entity.Kind, key string, dest interface{}) (bool, error)
	// Version returns the current generation of key; read it before loading from the store
	Version(ctx context.Context, kind entity.Kind, key string) (int64, error)
	// Set stores value only if key is still at version and reports whether it did
	Set(ctx context.Context, kind entity.Kind, key string, value interface{}, version int64) (bool, error)
	// Invalidate drops the cached value and advances the generation
	Invalidate(ctx context.Context, kind entity.Kind, key string) error
}
