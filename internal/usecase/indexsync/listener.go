// Package indexsync mirrors committed entity store changes into the search
// index and the other derived sinks.
package indexsync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"flight-inventory-service/internal/domain"
	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/pkg/logger"
	"flight-inventory-service/pkg/metrics"

	"github.com/cespare/xxhash/v2"
)

// Options tunes the listener
type Options struct {
	Workers     int
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
	// Timeout bounds one store read or one sink application
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 5
	}
	if o.BaseBackoff <= 0 {
		o.BaseBackoff = 100 * time.Millisecond
	}
	if o.MaxBackoff < o.BaseBackoff {
		o.MaxBackoff = o.BaseBackoff
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	return o
}

type pending struct {
	kind       entity.Kind
	key        string
	op         entity.ChangeOp
	enqueuedAt time.Time
}

func (p pending) id() string { return string(p.kind) + "|" + p.key }

// shard is an unbounded FIFO drained by one worker
type shard struct {
	mu     sync.Mutex
	queue  []pending
	signal chan struct{}
}

func (s *shard) push(p pending) {
	s.mu.Lock()
	s.queue = append(s.queue, p)
	s.mu.Unlock()
	s.notify()
}

func (s *shard) notify() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *shard) pop() (pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return pending{}, false
	}
	p := s.queue[0]
	s.queue[0] = pending{}
	s.queue = s.queue[1:]
	return p, true
}

// Listener receives commit notifications from the entity store and applies
// them asynchronously to its sinks. Notifications never block and are never
// dropped. Changes to one entity are applied in commit order; a change whose
// retries are exhausted is parked until RetryParked is called.
type Listener struct {
	projector Projector
	sinks     []Sink
	opts      Options
	logger    logger.Logger
	metrics   *metrics.Metrics

	shards []*shard
	depth  atomic.Int64

	parkedMu sync.Mutex
	parked   map[string]pending

	ctx     context.Context
	cancel  context.CancelFunc
	stop    chan struct{}
	stopped sync.Once
	started atomic.Bool
	wg      sync.WaitGroup
}

// NewListener creates a listener; call Start to launch its workers. m may be nil.
func NewListener(projector Projector, sinks []Sink, opts Options, log logger.Logger, m *metrics.Metrics) *Listener {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	l := &Listener{
		projector: projector,
		sinks:     sinks,
		opts:      opts,
		logger:    log.With("component", "index_sync"),
		metrics:   m,
		shards:    make([]*shard, opts.Workers),
		parked:    make(map[string]pending),
		ctx:       ctx,
		cancel:    cancel,
		stop:      make(chan struct{}),
	}
	for i := range l.shards {
		l.shards[i] = &shard{signal: make(chan struct{}, 1)}
	}
	return l
}

// Start launches one worker per shard
func (l *Listener) Start() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	for _, s := range l.shards {
		l.wg.Add(1)
		go l.work(s)
	}
	l.logger.Info("Index synchronization started", "workers", len(l.shards))
}

// OnCommit records that an entity was created or updated
func (l *Listener) OnCommit(kind entity.Kind, key string, isCreate bool) {
	l.enqueue(pending{kind: kind, key: key, op: entity.ChangeUpsert, enqueuedAt: time.Now()})
}

// OnDelete records that an entity was deleted
func (l *Listener) OnDelete(kind entity.Kind, key string) {
	l.enqueue(pending{kind: kind, key: key, op: entity.ChangeDelete, enqueuedAt: time.Now()})
}

// Pending is the number of changes queued or being applied
func (l *Listener) Pending() int {
	return int(l.depth.Load())
}

// Parked lists the ids ("kind|key") of changes waiting for reconciliation
func (l *Listener) Parked() []string {
	l.parkedMu.Lock()
	defer l.parkedMu.Unlock()

	ids := make([]string, 0, len(l.parked))
	for id := range l.parked {
		ids = append(ids, id)
	}
	return ids
}

// RetryParked re-enqueues every parked change and returns how many there were
func (l *Listener) RetryParked() int {
	l.parkedMu.Lock()
	items := make([]pending, 0, len(l.parked))
	for id, p := range l.parked {
		items = append(items, p)
		delete(l.parked, id)
	}
	l.parkedMu.Unlock()
	l.setParkedGauge()

	for _, p := range items {
		p.enqueuedAt = time.Now()
		l.enqueue(p)
	}
	return len(items)
}

// Close stops the workers once every queue is empty, including the flight
// re-index work fanned out while draining, or gives up when ctx is done.
// Changes still queued at that point are lost from memory and recovered by a rebuild.
func (l *Listener) Close(ctx context.Context) error {
	l.stopped.Do(func() { close(l.stop) })

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		l.cancel()
		if n := l.Pending(); n > 0 {
			l.logger.Warn("Index synchronization stopped before draining", "pending", n)
			return fmt.Errorf("index synchronization stopped with %d pending changes", n)
		}
		l.logger.Info("Index synchronization stopped")
		return nil
	case <-ctx.Done():
		l.cancel()
		l.logger.Warn("Index synchronization stopped before draining", "pending", l.Pending())
		return ctx.Err()
	}
}

func (l *Listener) enqueue(p pending) {
	idx := xxhash.Sum64String(p.id()) % uint64(len(l.shards))
	l.depth.Add(1)
	if l.metrics != nil {
		l.metrics.SyncQueueDepth.Inc()
	}
	l.shards[idx].push(p)
}

// done marks one change finished. Emptying the last queue wakes every worker
// so stopping workers can see it.
func (l *Listener) done() {
	remaining := l.depth.Add(-1)
	if l.metrics != nil {
		l.metrics.SyncQueueDepth.Dec()
	}
	if remaining == 0 {
		for _, s := range l.shards {
			s.notify()
		}
	}
}

// work drains s until the listener is stopped and no shard holds work. A worker
// outlives its own empty queue because another worker may still enqueue
// related flights into it.
func (l *Listener) work(s *shard) {
	defer l.wg.Done()

	stop := l.stop
	for {
		l.drain(s)
		if stop == nil && l.depth.Load() == 0 {
			return
		}
		select {
		case <-s.signal:
		case <-stop:
			stop = nil
		}
	}
}

func (l *Listener) drain(s *shard) {
	for {
		p, ok := s.pop()
		if !ok {
			return
		}
		l.process(p)
		l.done()
	}
}

func (l *Listener) process(p pending) {
	log := l.logger.With("kind", string(p.kind), "key", p.key, "op", string(p.op))

	ch, related, err := l.resolve(p)
	if err != nil {
		log.Error("Failed to read committed state", "error", err)
		l.park(p)
		return
	}

	for _, sink := range l.sinks {
		if err := l.apply(sink, ch); err != nil {
			log.Error("Failed to apply change", "sink", sink.Name(), "attempts", l.opts.MaxAttempts, "error", err)
			l.countError("sync_" + sink.Name())
			l.park(p)
			return
		}
		if l.metrics != nil {
			l.metrics.SyncApplied.WithLabelValues(string(p.kind), sink.Name()).Inc()
		}
	}

	for _, number := range related {
		l.OnCommit(entity.KindFlight, number, false)
	}
	if l.metrics != nil {
		l.metrics.SyncLatency.Observe(time.Since(p.enqueuedAt).Seconds())
	}
	log.Debug("Change applied", "related", len(related))
}

// resolve turns a notification into the change to apply by reading the latest
// committed state: an entity that exists is upserted, one that is gone is
// deleted. A stale or replayed notification therefore never undoes a newer commit.
func (l *Listener) resolve(p pending) (Change, []string, error) {
	ch := Change{Kind: p.kind, Key: p.key, Op: entity.ChangeDelete}

	var (
		doc     entity.Document
		related []string
		gone    bool
	)
	err := l.retry(func(ctx context.Context) error {
		var err error
		doc, err = l.projector.Project(ctx, p.kind, p.key)
		if errors.Is(err, domain.ErrNotFound) {
			gone = true
			return nil
		}
		if err != nil {
			return err
		}
		if p.kind == entity.KindFlight || p.op == entity.ChangeDelete {
			return nil
		}
		related, err = l.projector.Referencing(ctx, p.kind, p.key)
		return err
	}, func() { l.countError("sync_project") })
	if err != nil {
		return ch, nil, err
	}
	if gone {
		return ch, nil, nil
	}

	ch.Op = entity.ChangeUpsert
	ch.Document = &doc
	return ch, related, nil
}

func (l *Listener) apply(sink Sink, ch Change) error {
	return l.retry(func(ctx context.Context) error {
		return sink.Apply(ctx, ch)
	}, func() {
		if l.metrics != nil {
			l.metrics.SyncRetries.WithLabelValues(string(ch.Kind), sink.Name()).Inc()
		}
	})
}

// retry runs fn up to MaxAttempts times with exponential backoff between attempts
func (l *Listener) retry(fn func(ctx context.Context) error, onRetry func()) error {
	backoff := l.opts.BaseBackoff
	var err error
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(l.ctx, l.opts.Timeout)
		err = fn(ctx)
		cancel()
		if err == nil || attempt >= l.opts.MaxAttempts {
			return err
		}

		onRetry()
		select {
		case <-time.After(backoff):
		case <-l.ctx.Done():
			return err
		}
		backoff *= 2
		if backoff > l.opts.MaxBackoff {
			backoff = l.opts.MaxBackoff
		}
	}
}

func (l *Listener) park(p pending) {
	l.parkedMu.Lock()
	l.parked[p.id()] = p
	l.parkedMu.Unlock()
	l.setParkedGauge()
}

func (l *Listener) setParkedGauge() {
	if l.metrics == nil {
		return
	}
	l.parkedMu.Lock()
	n := len(l.parked)
	l.parkedMu.Unlock()
	l.metrics.SyncParked.Set(float64(n))
}

func (l *Listener) countError(operation string) {
	if l.metrics != nil {
		l.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
