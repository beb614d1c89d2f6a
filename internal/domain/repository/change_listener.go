package repository

import "flight-inventory-service/internal/domain/entity"

// ChangeListener receives entity store commits. Implementations must return
// quickly and must not fail the commit.
type ChangeListener interface {
	OnCommit(kind entity.Kind, key string, isCreate bool)
	OnDelete(kind entity.Kind, key string)
}
