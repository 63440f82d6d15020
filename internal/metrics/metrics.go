// Package metrics exposes Prometheus instrumentation for the chat relay:
// live connections, envelope throughput by kind and direction, and dropped
// inbound frames.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Envelope directions.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Metrics holds the relay collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	// Connections tracks the current number of websocket connections.
	Connections prometheus.Gauge
	// Registered tracks connections that have bound a username.
	Registered prometheus.Gauge
	// Envelopes counts envelopes by kind and direction ("in" / "out").
	Envelopes *prometheus.CounterVec
	// Malformed counts inbound frames that failed to decode or validate.
	Malformed prometheus.Counter
	// RateLimited counts inbound frames dropped for exceeding the per-connection rate.
	RateLimited prometheus.Counter
}

// New registers the relay collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Connections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "yewchat_connections",
			Help: "Current number of websocket connections",
		}),
		Registered: factory.NewGauge(prometheus.GaugeOpts{
			Name: "yewchat_registered_connections",
			Help: "Current number of connections with a bound username",
		}),
		Envelopes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "yewchat_envelopes_total",
			Help: "Envelopes relayed, by kind and direction",
		}, []string{"kind", "direction"}),
		Malformed: factory.NewCounter(prometheus.CounterOpts{
			Name: "yewchat_malformed_frames_total",
			Help: "Inbound frames dropped as malformed",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "yewchat_rate_limited_frames_total",
			Help: "Inbound frames dropped by the per-connection rate limit",
		}),
	}
}

// Registry returns the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveIn counts one inbound envelope of the given kind.
func (m *Metrics) ObserveIn(kind string) {
	m.Envelopes.WithLabelValues(kind, DirectionIn).Inc()
}

// ObserveOut counts n outbound envelopes of the given kind.
func (m *Metrics) ObserveOut(kind string, n int) {
	m.Envelopes.WithLabelValues(kind, DirectionOut).Add(float64(n))
}
