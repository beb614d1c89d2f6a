package indexsync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"flight-inventory-service/internal/domain/entity"
	"flight-inventory-service/pkg/logger"
	"flight-inventory-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions() Options {
	return Options{
		Workers:     4,
		MaxAttempts: 3,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
		Timeout:     time.Second,
	}
}

func startListener(t *testing.T, p Projector, sinks []Sink, m *metrics.Metrics) *Listener {
	t.Helper()
	l := NewListener(p, sinks, fastOptions(), logger.NewNop(), m)
	l.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = l.Close(ctx)
	})
	return l
}

func waitIdle(t *testing.T, l *Listener) {
	t.Helper()
	require.Eventually(t, func() bool { return l.Pending() == 0 }, 5*time.Second, 5*time.Millisecond)
}

func TestListener_PerKeyOrderConverges(t *testing.T) {
	p := newMapProjector()
	sink := &recordingSink{}
	l := startListener(t, p, []Sink{sink}, nil)

	for i := 1; i <= 50; i++ {
		p.set(entity.KindAircraft, "B747", map[string]interface{}{"version": i})
		l.OnCommit(entity.KindAircraft, "B747", i == 1)
	}
	waitIdle(t, l)

	changes := sink.changes()
	require.Len(t, changes, 50)
	last := 0
	for _, ch := range changes {
		v := ch.Document.Fields["version"].(int)
		assert.GreaterOrEqual(t, v, last, "versions never go backwards")
		last = v
	}
	assert.Equal(t, 50, last)
}

func TestListener_DeleteOfGoneEntityRemoves(t *testing.T) {
	p := newMapProjector()
	sink := &recordingSink{}
	l := startListener(t, p, []Sink{sink}, nil)

	// create then undo-of-create: both notifications arrive after the row is gone
	l.OnCommit(entity.KindAirline, "IR", true)
	l.OnDelete(entity.KindAirline, "IR")
	waitIdle(t, l)

	changes := sink.changes()
	require.Len(t, changes, 2)
	for _, ch := range changes {
		assert.Equal(t, entity.ChangeDelete, ch.Op)
		assert.Nil(t, ch.Document)
	}
}

func TestListener_StaleDeleteDoesNotRemoveRecreatedEntity(t *testing.T) {
	p := newMapProjector()
	sink := &recordingSink{}
	l := startListener(t, p, []Sink{sink}, nil)

	p.set(entity.KindAirport, "IST", map[string]interface{}{"airport_name": "Istanbul"})
	l.OnDelete(entity.KindAirport, "IST")
	waitIdle(t, l)

	changes := sink.changes()
	require.Len(t, changes, 1)
	assert.Equal(t, entity.ChangeUpsert, changes[0].Op)
}

func TestListener_RetriesFailingSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetricsWith(reg, "test")
	p := newMapProjector()
	p.set(entity.KindFlight, "IR712", map[string]interface{}{"flight_number": "IR712"})
	sink := &recordingSink{failures: 2}
	l := startListener(t, p, []Sink{sink}, m)

	l.OnCommit(entity.KindFlight, "IR712", true)
	waitIdle(t, l)

	assert.Len(t, sink.changes(), 1)
	assert.Empty(t, l.Parked())
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SyncRetries.WithLabelValues("flight", "recording")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SyncApplied.WithLabelValues("flight", "recording")))
}

func TestListener_ExhaustedChangeIsParkedAndRetried(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewMetricsWith(reg, "test")
	p := newMapProjector()
	p.set(entity.KindAirline, "IR", map[string]interface{}{"airline_code": "IR"})
	sink := &recordingSink{failures: 100}
	l := startListener(t, p, []Sink{sink}, m)

	l.OnCommit(entity.KindAirline, "IR", true)
	waitIdle(t, l)

	assert.Equal(t, []string{"airline|IR"}, l.Parked())
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SyncParked))
	assert.Empty(t, sink.changes())

	sink.setFailures(0)
	assert.Equal(t, 1, l.RetryParked())
	waitIdle(t, l)

	assert.Empty(t, l.Parked())
	assert.Len(t, sink.changes(), 1)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.SyncParked))
}

func TestListener_ProjectionFailureIsRetried(t *testing.T) {
	p := newMapProjector()
	p.set(entity.KindAirport, "IKA", map[string]interface{}{"airport_code": "IKA"})
	p.failFor = 2
	sink := &recordingSink{}
	l := startListener(t, p, []Sink{sink}, nil)

	l.OnCommit(entity.KindAirport, "IKA", false)
	waitIdle(t, l)

	assert.Len(t, sink.changes(), 1)
	assert.Empty(t, l.Parked())
}

func TestListener_ReindexesReferencingFlights(t *testing.T) {
	p := newMapProjector()
	p.set(entity.KindAirline, "IR", map[string]interface{}{"airline_name": "Iran Air"})
	p.set(entity.KindFlight, "IR712", map[string]interface{}{"flight_number": "IR712"})
	p.set(entity.KindFlight, "IR713", map[string]interface{}{"flight_number": "IR713"})
	p.refs["airline|IR"] = []string{"IR712", "IR713"}
	sink := &recordingSink{}
	l := startListener(t, p, []Sink{sink}, nil)

	l.OnCommit(entity.KindAirline, "IR", false)
	waitIdle(t, l)

	keys := map[string]entity.Kind{}
	for _, ch := range sink.changes() {
		keys[ch.Key] = ch.Kind
	}
	assert.Equal(t, map[string]entity.Kind{
		"IR":    entity.KindAirline,
		"IR712": entity.KindFlight,
		"IR713": entity.KindFlight,
	}, keys)
}

func TestListener_CloseDrainsQueues(t *testing.T) {
	p := newMapProjector()
	sink := &recordingSink{}
	l := NewListener(p, []Sink{sink}, fastOptions(), logger.NewNop(), nil)

	for i := 0; i < 20; i++ {
		l.OnDelete(entity.KindFlight, string(rune('A'+i)))
	}
	l.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Close(ctx))

	assert.Len(t, sink.changes(), 20)
	assert.Equal(t, 0, l.Pending())
}

// slowSink delays changes of one kind before recording them
type slowSink struct {
	recordingSink
	kind  entity.Kind
	delay time.Duration
}

func (s *slowSink) Apply(ctx context.Context, ch Change) error {
	if ch.Kind == s.kind {
		time.Sleep(s.delay)
	}
	return s.recordingSink.Apply(ctx, ch)
}

func TestListener_CloseWaitsForRelatedFlights(t *testing.T) {
	p := newMapProjector()
	p.set(entity.KindAirline, "IR", map[string]interface{}{"airline_name": "Iran Air"})
	var numbers []string
	for i := 0; i < 8; i++ {
		number := fmt.Sprintf("IR7%02d", i)
		p.set(entity.KindFlight, number, map[string]interface{}{"flight_number": number})
		numbers = append(numbers, number)
	}
	p.refs["airline|IR"] = numbers

	sink := &slowSink{kind: entity.KindAirline, delay: 100 * time.Millisecond}
	l := NewListener(p, []Sink{sink}, fastOptions(), logger.NewNop(), nil)
	l.Start()

	l.OnCommit(entity.KindAirline, "IR", false)
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Close(ctx))

	assert.Len(t, sink.changes(), 9)
	assert.Equal(t, 0, l.Pending())
}

func TestListener_CloseReportsUndrainedChanges(t *testing.T) {
	sink := &recordingSink{}
	l := NewListener(newMapProjector(), []Sink{sink}, fastOptions(), logger.NewNop(), nil)

	// never started, so nothing drains the queue
	l.OnDelete(entity.KindFlight, "IR712")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := l.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 pending")
}
