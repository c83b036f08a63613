package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification pipeline.
type Metrics struct {
	Batches         *prometheus.CounterVec
	BatchSize       prometheus.Histogram
	Checks          *prometheus.CounterVec
	CheckLatency    prometheus.Histogram
	PersistFailures prometheus.Counter
	PublishFailures prometheus.Counter
	Deleted         prometheus.Counter
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the pipeline metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Batches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numcheck_batches_total",
			Help: "Verification batches by result (completed, rejected_empty, rejected_not_ready)",
		}, []string{"result"}),

		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "numcheck_batch_size",
			Help:    "Rows per accepted verification batch",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),

		Checks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "numcheck_checks_total",
			Help: "Per-number checks by outcome",
		}, []string{"outcome"}),

		CheckLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "numcheck_check_duration_seconds",
			Help:    "Latency of a single registration query",
			Buckets: prometheus.DefBuckets,
		}),

		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "numcheck_result_persist_failures_total",
			Help: "Results that could not be written to the result store",
		}),

		PublishFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "numcheck_result_publish_failures_total",
			Help: "Results that could not be published as events",
		}),

		Deleted: f.NewCounter(prometheus.CounterOpts{
			Name: "numcheck_results_deleted_total",
			Help: "Persisted results removed by operators",
		}),
	}
}

func (m *Metrics) IncrementBatch(result string) {
	if m == nil {
		return
	}
	m.Batches.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveBatchSize(n int) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(n))
}

// ObserveCheck records one check's outcome, and its latency when a query
// was actually made.
func (m *Metrics) ObserveCheck(outcome string, queried bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(outcome).Inc()
	if queried {
		m.CheckLatency.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) IncrementPersistFailure() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

func (m *Metrics) IncrementPublishFailure() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}

func (m *Metrics) AddDeleted(n int64) {
	if m == nil {
		return
	}
	m.Deleted.Add(float64(n))
}
