// Package command implements the undoable inventory mutations and the
// per-entity-type handlers that keep their undo/redo history.
package command

import (
	"context"

	"flight-inventory-service/internal/domain/entity"
)

// Result is what a command's Execute produces: the affected entity, or a
// summary message for deletions.
type Result[T any] struct {
	Entity  *T
	Summary string
}

// Command is an undoable mutation of one entity. Arguments are captured at
// construction so Execute can be run again on redo.
type Command[T any] interface {
	Execute(ctx context.Context) (Result[T], error)
	Undo(ctx context.Context) error
	Name() string
	// Key is the business key of the entity the command acts on
	Key() string
}

// Store is the typed entity store a command family runs against
type Store[T any] interface {
	Kind() entity.Kind
	Create(ctx context.Context, e *T) error
	Get(ctx context.Context, key string) (*T, error)
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, key string) error
}

// Patch is a partial update of T that can capture the values it overwrites
type Patch[T any, P any] interface {
	Apply(e *T)
	Capture(e *T) P
}
