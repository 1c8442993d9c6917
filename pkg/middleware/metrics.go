package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pagekit-go/pagekit/pkg/message"
	"github.com/pagekit-go/pagekit/pkg/messenger"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pagekit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for interaction duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
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

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "pagekit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for interaction handling.
type metrics struct {
	interactionsTotal   *prometheus.CounterVec
	interactionDuration *prometheus.HistogramVec
	interactionErrors   *prometheus.CounterVec
}

// initMetrics registers the interaction metrics with the configured
// registry.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		interactionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "interactions_total",
			Help:        "Total number of interaction events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"role", "status"}),

		interactionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "interaction_duration_seconds",
			Help:        "Interaction processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"role"}),

		interactionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "interaction_errors_total",
			Help:        "Total number of interaction handler errors",
			ConstLabels: config.ConstLabels,
		}, []string{"role"}),
	}
}

// Prometheus wraps an interaction handler with Prometheus metrics.
//
// Metrics collected:
//   - pagekit_interactions_total: counter by role and status
//   - pagekit_interaction_duration_seconds: histogram by role
//   - pagekit_interaction_errors_total: counter by role
//
// Register each wrapper against its own registry, or wrap a single
// shared handler once: metrics are created (and registered) per call.
func Prometheus(next messenger.Handler, opts ...MetricsOption) messenger.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := initMetrics(config)

	return func(ctx context.Context, ic messenger.InteractionCtx) error {
		role := roleOf(ic)
		start := time.Now()

		err := next(ctx, ic)

		m.interactionDuration.WithLabelValues(role).Observe(time.Since(start).Seconds())
		status := "ok"
		if err != nil {
			status = "error"
			m.interactionErrors.WithLabelValues(role).Inc()
		}
		m.interactionsTotal.WithLabelValues(role, status).Inc()

		return err
	}
}

// roleOf extracts the control role from an interaction's custom ID.
func roleOf(ic messenger.InteractionCtx) string {
	if _, role, ok := message.SplitCustomID(ic.CustomID()); ok {
		return role
	}
	return "unknown"
}
