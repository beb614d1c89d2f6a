package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	"flight-inventory-service/internal/domain"
	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/pkg/logger"
	"flight-inventory-service/pkg/metrics"
)

// History describes the undo and redo stacks, most recent entry first
type History struct {
	Undo []string `json:"undo"`
	Redo []string `json:"redo"`
}

// Handler runs the commands of one entity type and keeps their undo/redo
// history. Execute, Undo and Redo are serialized.
type Handler[T any] struct {
	kind    entity.Kind
	timeout time.Duration
	logger  logger.Logger
	metrics *metrics.Metrics

	mu   sync.Mutex
	undo []Command[T]
	redo []Command[T]
}

// NewHandler creates a handler for kind. Every command call is bounded by timeout;
// m may be nil.
func NewHandler[T any](kind entity.Kind, timeout time.Duration, log logger.Logger, m *metrics.Metrics) *Handler[T] {
	return &Handler[T]{
		kind:    kind,
		timeout: timeout,
		logger:  log.With("kind", string(kind)),
		metrics: m,
	}
}

// Kind returns the entity type the handler serves
func (h *Handler[T]) Kind() entity.Kind { return h.kind }

// Execute runs cmd. On success it becomes the latest undoable command and the
// redo history is discarded; on failure the history is left untouched.
func (h *Handler[T]) Execute(ctx context.Context, cmd Command[T]) (Result[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.run(ctx, cmd)
	if err != nil {
		h.logger.Warn("Command failed", "command", cmd.Name(), "key", cmd.Key(), "error", err)
		return res, err
	}

	h.undo = append(h.undo, cmd)
	h.redo = nil
	h.logger.Info("Command executed", "command", cmd.Name(), "key", cmd.Key())
	return res, nil
}

// Undo reverts the latest executed command and moves it to the redo history.
// A failed revert leaves the command on the undo history.
func (h *Handler[T]) Undo(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undo) == 0 {
		h.observeHistory("undo", domain.ErrEmptyHistory)
		return fmt.Errorf("undo %s: %w", h.kind, domain.ErrEmptyHistory)
	}
	cmd := h.undo[len(h.undo)-1]

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := cmd.Undo(ctx); err != nil {
		h.observeHistory("undo", err)
		h.logger.Warn("Undo failed", "command", cmd.Name(), "key", cmd.Key(), "error", err)
		return err
	}

	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	h.observeHistory("undo", nil)
	h.logger.Info("Command undone", "command", cmd.Name(), "key", cmd.Key())
	return nil
}

// Redo re-executes the latest undone command and moves it back to the undo history.
// A failed re-execution leaves the command on the redo history.
func (h *Handler[T]) Redo(ctx context.Context) (Result[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redo) == 0 {
		h.observeHistory("redo", domain.ErrEmptyHistory)
		return Result[T]{}, fmt.Errorf("redo %s: %w", h.kind, domain.ErrEmptyHistory)
	}
	cmd := h.redo[len(h.redo)-1]

	res, err := h.run(ctx, cmd)
	if err != nil {
		h.observeHistory("redo", err)
		h.logger.Warn("Redo failed", "command", cmd.Name(), "key", cmd.Key(), "error", err)
		return res, err
	}

	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	h.observeHistory("redo", nil)
	h.logger.Info("Command redone", "command", cmd.Name(), "key", cmd.Key())
	return res, nil
}

// History lists both stacks
func (h *Handler[T]) History() History {
	h.mu.Lock()
	defer h.mu.Unlock()

	return History{
		Undo: describe(h.undo),
		Redo: describe(h.redo),
	}
}

func (h *Handler[T]) run(ctx context.Context, cmd Command[T]) (Result[T], error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	res, err := cmd.Execute(ctx)
	if h.metrics != nil {
		h.metrics.CommandDuration.WithLabelValues(string(h.kind)).Observe(time.Since(start).Seconds())
		h.metrics.CommandsExecuted.WithLabelValues(string(h.kind), cmd.Name(), outcome(err)).Inc()
	}
	return res, err
}

func (h *Handler[T]) observeHistory(op string, err error) {
	if h.metrics == nil {
		return
	}
	h.metrics.HistoryOps.WithLabelValues(string(h.kind), op, outcome(err)).Inc()
}

func describe[T any](stack []Command[T]) []string {
	out := make([]string, 0, len(stack))
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, stack[i].Name()+" "+stack[i].Key())
	}
	return out
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
