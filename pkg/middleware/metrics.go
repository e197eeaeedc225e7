package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/weft-ui/weft/pkg/server"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "weft").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "weft",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is the Prometheus sink for both the runtime and the server. It
// implements weft.Metrics (render passes, effect runs, instance counts) and
// server.Metrics (sessions, patches, event errors), and provides an event
// middleware that times dispatch.
//
// Wire all three onto a server:
//
//	m := middleware.NewPrometheus()
//	srv := server.New(root, cfg,
//	    server.WithMetrics(m),
//	    server.WithRuntimeMetrics(m),
//	    server.WithEventMiddleware(m.Events()),
//	)
type Metrics struct {
	renderPasses   prometheus.Counter
	renderDuration prometheus.Histogram
	instancesPer   prometheus.Histogram
	effectRuns     prometheus.Counter
	liveInstances  prometheus.Gauge

	activeSessions prometheus.Gauge
	patchesSent    prometheus.Counter
	eventErrors    *prometheus.CounterVec

	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
}

// NewPrometheus creates the metrics sink, registering all collectors with
// the configured registry.
func NewPrometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		renderPasses: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_passes_total",
			Help:        "Total number of scheduler flush passes",
			ConstLabels: config.ConstLabels,
		}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		instancesPer: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instances_rendered_per_flush",
			Help:        "Instances re-rendered per flush",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect setups executed",
			ConstLabels: config.ConstLabels,
		}),
		liveInstances: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_instances",
			Help:        "Number of live component instances",
			ConstLabels: config.ConstLabels,
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active websocket sessions",
			ConstLabels: config.ConstLabels,
		}),
		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),
		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of client events dispatched",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),
		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event dispatch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),
	}
}

// RenderPass implements weft.Metrics.
func (m *Metrics) RenderPass(d time.Duration, rendered int) {
	m.renderPasses.Inc()
	m.renderDuration.Observe(d.Seconds())
	m.instancesPer.Observe(float64(rendered))
}

// EffectRun implements weft.Metrics.
func (m *Metrics) EffectRun() {
	m.effectRuns.Inc()
}

// InstanceCreated implements weft.Metrics.
func (m *Metrics) InstanceCreated() {
	m.liveInstances.Inc()
}

// InstanceDestroyed implements weft.Metrics.
func (m *Metrics) InstanceDestroyed() {
	m.liveInstances.Dec()
}

// SessionOpened implements server.Metrics.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
}

// SessionClosed implements server.Metrics.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// PatchesSent implements server.Metrics.
func (m *Metrics) PatchesSent(n int) {
	m.patchesSent.Add(float64(n))
}

// EventError implements server.Metrics.
func (m *Metrics) EventError(kind string) {
	m.eventErrors.WithLabelValues(kind).Inc()
}

// Events returns middleware that counts and times every dispatched event.
func (m *Metrics) Events() server.EventMiddleware {
	return func(next server.EventHandler) server.EventHandler {
		return func(ctx *server.EventCtx) error {
			start := time.Now()
			err := next(ctx)

			event := ctx.Event().Type
			m.eventDuration.WithLabelValues(event).Observe(time.Since(start).Seconds())
			status := "ok"
			if err != nil {
				status = "error"
			}
			m.eventsTotal.WithLabelValues(event, status).Inc()
			return err
		}
	}
}
