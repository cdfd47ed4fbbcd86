// Package metric provides Prometheus metrics for framekv.
//
// It exposes connection counts, per-command throughput and latency,
// protocol error counts, and per-namespace key counts.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Connection metrics
	ConnectionsActive prometheus.Gauge
	ConnectionsTotal  prometheus.Counter

	// Command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Protocol metrics
	DecodeErrors  prometheus.Counter
	CommandErrors prometheus.Counter
	RateLimited   prometheus.Counter

	// Store metrics, one gauge per namespace
	Keys *prometheus.GaugeVec
}

// NewRegistry creates a metrics registry with all framekv metrics
// registered, plus the standard Go and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Registry{
		registry: reg,

		ConnectionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "framekv_connections_active",
			Help: "Number of currently open client connections.",
		}),
		ConnectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "framekv_connections_total",
			Help: "Total number of accepted client connections.",
		}),
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "framekv_commands_total",
			Help: "Total number of executed commands.",
		}, []string{"command"}),
		CommandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "framekv_command_duration_seconds",
			Help:    "Command execution latency, decode to encode.",
			Buckets: prometheus.ExponentialBuckets(0.000005, 4, 10),
		}, []string{"command"}),
		DecodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "framekv_decode_errors_total",
			Help: "Total number of protocol decode errors; each one closes a connection.",
		}),
		CommandErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "framekv_command_errors_total",
			Help: "Total number of rejected commands (arity, argument type, encoding).",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "framekv_rate_limited_total",
			Help: "Total number of commands rejected by the per-IP rate limiter.",
		}),
		Keys: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "framekv_keys",
			Help: "Number of keys per store namespace.",
		}, []string{"namespace"}),
	}

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return r
}

// ObserveKeyCounts updates the per-namespace key gauges.
func (r *Registry) ObserveKeyCounts(data, hashes, sets int) {
	r.Keys.WithLabelValues("data").Set(float64(data))
	r.Keys.WithLabelValues("hashes").Set(float64(hashes))
	r.Keys.WithLabelValues("sets").Set(float64(sets))
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
