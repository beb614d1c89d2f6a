package command

import (
	"context"
	"errors"
	"fmt"

	"flight-inventory-service/internal/domain/entity"
)

var errNotExecuted = errors.New("command has not been executed")

type createCommand[T any] struct {
	store  Store[T]
	key    string
	fields T
}

func (c *createCommand[T]) Name() string { return "Create" + c.store.Kind().Title() }
func (c *createCommand[T]) Key() string  { return c.key }

// Execute inserts a fresh copy of the captured fields
func (c *createCommand[T]) Execute(ctx context.Context) (Result[T], error) {
	e := c.fields
	if err := entity.Validate(&e); err != nil {
		return Result[T]{}, err
	}
	if err := c.store.Create(ctx, &e); err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Entity: &e}, nil
}

func (c *createCommand[T]) Undo(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}

type updateCommand[T any, P Patch[T, P]] struct {
	store Store[T]
	key   string
	patch P
	prev  *P
}

func (c *updateCommand[T, P]) Name() string { return "Update" + c.store.Kind().Title() }
func (c *updateCommand[T, P]) Key() string  { return c.key }

// Execute records the current value of every patched field, then applies the patch
func (c *updateCommand[T, P]) Execute(ctx context.Context) (Result[T], error) {
	if err := entity.Validate(&c.patch); err != nil {
		return Result[T]{}, err
	}
	current, err := c.store.Get(ctx, c.key)
	if err != nil {
		return Result[T]{}, err
	}

	prev := c.patch.Capture(current)
	c.patch.Apply(current)
	if err := entity.Validate(current); err != nil {
		return Result[T]{}, err
	}
	if err := c.store.Update(ctx, current); err != nil {
		return Result[T]{}, err
	}

	c.prev = &prev
	return Result[T]{Entity: current}, nil
}

// Undo restores only the fields the patch set
func (c *updateCommand[T, P]) Undo(ctx context.Context) error {
	if c.prev == nil {
		return fmt.Errorf("%s %s: %w", c.Name(), c.key, errNotExecuted)
	}
	current, err := c.store.Get(ctx, c.key)
	if err != nil {
		return err
	}
	(*c.prev).Apply(current)
	return c.store.Update(ctx, current)
}

type deleteCommand[T any] struct {
	store    Store[T]
	key      string
	snapshot *T
}

func (c *deleteCommand[T]) Name() string { return "Delete" + c.store.Kind().Title() }
func (c *deleteCommand[T]) Key() string  { return c.key }

// Execute snapshots the complete entity and deletes it
func (c *deleteCommand[T]) Execute(ctx context.Context) (Result[T], error) {
	snapshot, err := c.store.Get(ctx, c.key)
	if err != nil {
		return Result[T]{}, err
	}
	if err := c.store.Delete(ctx, c.key); err != nil {
		return Result[T]{}, err
	}

	c.snapshot = snapshot
	return Result[T]{
		Summary: fmt.Sprintf("%s %s deleted successfully.", c.store.Kind().Title(), c.key),
	}, nil
}

// Undo recreates the entity from the snapshot under the same key
func (c *deleteCommand[T]) Undo(ctx context.Context) error {
	if c.snapshot == nil {
		return fmt.Errorf("%s %s: %w", c.Name(), c.key, errNotExecuted)
	}
	e := *c.snapshot
	return c.store.Create(ctx, &e)
}
