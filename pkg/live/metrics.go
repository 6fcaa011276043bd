package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics for the bridge.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "statebind").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush size.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the flush size histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "statebind",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the bridge's Prometheus metrics. It implements
// bind.Recorder so a root can be built with WithRecorder(m).
type Metrics struct {
	changesTotal *prometheus.CounterVec
	derivedTotal *prometheus.CounterVec
	flushesTotal prometheus.Counter
	flushSize    prometheus.Histogram
	clients      prometheus.Gauge
	framesSent   prometheus.Counter
	frameErrors  prometheus.Counter
}

// NewMetrics creates and registers the bridge metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		changesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "changes_total",
			Help:        "Elementary mutations observed, by change type.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"type"}),
		derivedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "derived_changes_total",
			Help:        "Derivation value changes forwarded to the scheduler.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"derivation"}),
		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "flushes_total",
			Help:        "Batched flushes delivered.",
			ConstLabels: cfg.ConstLabels,
		}),
		flushSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "flush_size",
			Help:        "Changed properties per flush.",
			Buckets:     cfg.Buckets,
			ConstLabels: cfg.ConstLabels,
		}),
		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Name:        "clients",
			Help:        "Connected view clients.",
			ConstLabels: cfg.ConstLabels,
		}),
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "frames_sent_total",
			Help:        "Flush frames written to clients.",
			ConstLabels: cfg.ConstLabels,
		}),
		frameErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "frame_errors_total",
			Help:        "Failed or dropped frame writes.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// ChangeObserved implements bind.Recorder.
func (m *Metrics) ChangeObserved(changeType string) {
	m.changesTotal.WithLabelValues(changeType).Inc()
}

// DerivedForwarded implements bind.Recorder.
func (m *Metrics) DerivedForwarded(name string) {
	m.derivedTotal.WithLabelValues(name).Inc()
}

// FlushDelivered implements bind.Recorder.
func (m *Metrics) FlushDelivered(size int) {
	m.flushesTotal.Inc()
	m.flushSize.Observe(float64(size))
}

func (m *Metrics) clientConnected()    { m.clients.Inc() }
func (m *Metrics) clientDisconnected() { m.clients.Dec() }
func (m *Metrics) frameSent()          { m.framesSent.Inc() }
func (m *Metrics) frameError()         { m.frameErrors.Inc() }
