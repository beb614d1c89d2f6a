package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	CommandsExecuted *prometheus.CounterVec
	HistoryOps       *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	SyncApplied      *prometheus.CounterVec
	SyncRetries      *prometheus.CounterVec
	SyncParked       prometheus.Gauge
	SyncQueueDepth   prometheus.Gauge
	SyncLatency      prometheus.Histogram
	ErrorsCount      *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics on the default registerer
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates new prometheus metrics on reg
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CommandsExecuted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_executed_total",
			Help:      "The total number of executed commands",
		}, []string{"kind", "command", "outcome"}),
		HistoryOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_operations_total",
			Help:      "The total number of undo and redo requests",
		}, []string{"kind", "op", "outcome"}),
		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time taken to run a command against the entity store",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		SyncApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_changes_applied_total",
			Help:      "The total number of changes applied to a sink",
		}, []string{"kind", "sink"}),
		SyncRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_retries_total",
			Help:      "The total number of failed sink applications that were retried",
		}, []string{"kind", "sink"}),
		SyncParked: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sync_parked_changes",
			Help:      "Changes that exhausted their retries and wait for reconciliation",
		}),
		SyncQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sync_queue_depth",
			Help:      "Changes waiting to be applied",
		}),
		SyncLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_latency_seconds",
			Help:      "Time from commit notification to the change being applied",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
