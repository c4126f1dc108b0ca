// Package metrics exposes Prometheus collectors for event dispatch and the
// remote event server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "xamlrt").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "xamlrt",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the dispatch metrics.
type Collector struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	handlersFired    *prometheus.CounterVec
	handlerErrors    *prometheus.CounterVec
	nodesVisited     prometheus.Histogram
	wsConnections    prometheus.Gauge
	wsErrors         *prometheus.CounterVec
}

// New registers the collectors and returns them.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		dispatchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "dispatch_total",
			Help:        "Total number of UI events dispatched, by event and status",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),

		dispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "dispatch_duration_seconds",
			Help:        "Time spent bubbling an event to the root",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),

		handlersFired: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "handlers_fired_total",
			Help:        "Total number of registry calls made while bubbling",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		handlerErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "handler_errors_total",
			Help:        "Total number of registry calls that returned an error",
			ConstLabels: config.ConstLabels,
		}, []string{"event"}),

		nodesVisited: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "dispatch_nodes_visited",
			Help:        "Number of nodes visited per dispatch",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 4, 8, 16, 32, 64},
		}),

		wsConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "websocket_connections",
			Help:        "Number of open websocket connections",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "websocket_errors_total",
			Help:        "Total websocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// OtherEvent is the event label for dispatches that matched no attribute.
// Event names come from remote clients, so only names the document binds
// are used as labels.
const OtherEvent = "other"

// ObserveDispatch records one dispatch. status is "ok" or "not_found".
// Callers pass OtherEvent unless the event fired at least one handler.
func (c *Collector) ObserveDispatch(event, status string, d time.Duration, visited, fired, failed int) {
	if c == nil {
		return
	}
	c.dispatchTotal.WithLabelValues(event, status).Inc()
	c.dispatchDuration.WithLabelValues(event).Observe(d.Seconds())
	c.nodesVisited.Observe(float64(visited))
	c.handlersFired.WithLabelValues(event).Add(float64(fired))
	c.handlerErrors.WithLabelValues(event).Add(float64(failed))
}

// ConnectionOpened increments the websocket connection gauge.
func (c *Collector) ConnectionOpened() {
	if c != nil {
		c.wsConnections.Inc()
	}
}

// ConnectionClosed decrements the websocket connection gauge.
func (c *Collector) ConnectionClosed() {
	if c != nil {
		c.wsConnections.Dec()
	}
}

// WebSocketError counts a websocket failure of the given type ("read",
// "write", "decode", "upgrade").
func (c *Collector) WebSocketError(kind string) {
	if c != nil {
		c.wsErrors.WithLabelValues(kind).Inc()
	}
}
