package indexsync

import (
	"context"
	"fmt"
	"time"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/internal/domain/repository"
	"flight-inventory-service/pkg/logger"
)

// RebuildStats reports what a rebuild enqueued
type RebuildStats struct {
	Kind      entity.Kind `json:"kind"`
	Reindexed int         `json:"reindexed"`
	Orphans   int         `json:"orphans_removed"`
}

// Reconciler retries parked changes periodically and rebuilds index kinds on demand
type Reconciler struct {
	listener  *Listener
	projector Projector
	index     repository.SearchIndex
	interval  time.Duration
	logger    logger.Logger
}

// NewReconciler creates a reconciler retrying parked changes every interval
func NewReconciler(listener *Listener, projector Projector, index repository.SearchIndex, interval time.Duration, log logger.Logger) *Reconciler {
	return &Reconciler{
		listener:  listener,
		projector: projector,
		index:     index,
		interval:  interval,
		logger:    log.With("component", "reconciler"),
	}
}

// Run retries parked changes on every tick until ctx is done
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Reconciler stopped")
			return
		case <-ticker.C:
			if n := r.listener.RetryParked(); n > 0 {
				r.logger.Info("Retrying parked changes", "count", n)
			}
		}
	}
}

// Rebuild enqueues every stored entity of kind and a removal for every index
// document whose entity no longer exists.
func (r *Reconciler) Rebuild(ctx context.Context, kind entity.Kind) (RebuildStats, error) {
	stats := RebuildStats{Kind: kind}

	keys, err := r.projector.Keys(ctx, kind)
	if err != nil {
		return stats, fmt.Errorf("list stored %s keys: %w", kind, err)
	}
	ids, err := r.index.IDs(ctx, kind)
	if err != nil {
		return stats, fmt.Errorf("list indexed %s ids: %w", kind, err)
	}

	stored := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		stored[key] = struct{}{}
		r.listener.OnCommit(kind, key, false)
		stats.Reindexed++
	}
	for _, id := range ids {
		if _, ok := stored[id]; ok {
			continue
		}
		r.listener.OnDelete(kind, id)
		stats.Orphans++
	}

	r.logger.Info("Rebuild enqueued", "kind", string(kind), "reindexed", stats.Reindexed, "orphans", stats.Orphans)
	return stats, nil
}
