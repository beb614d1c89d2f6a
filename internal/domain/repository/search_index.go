package repository

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
)

// SearchIndex is the derived keyword index of inventory entities.
// Upsert and Remove are idempotent.
type SearchIndex interface {
	Upsert(ctx context.Context, doc entity.Document) error
	Remove(ctx context.Context, kind entity.Kind, id string) error
	Search(ctx context.Context, kind entity.Kind, text string, limit int) ([]entity.Document, error)
	IDs(ctx context.Context, kind entity.Kind) ([]string, error)
}
