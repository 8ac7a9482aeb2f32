// Package metrics holds the prometheus collectors for the layout engine, the live
// view sessions and the asset API client.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "assetmap"

// Registry wraps a private prometheus registry. All Record methods are safe to call
// on a nil *Registry, which records nothing.
type Registry struct {
	registry *prometheus.Registry

	SimulationsStarted prometheus.Counter
	SimulationsStopped prometheus.Counter
	SimulationsActive  prometheus.Gauge
	TicksTotal         prometheus.Counter
	TickDuration       prometheus.Histogram
	DrawsTotal         *prometheus.CounterVec

	SessionsActive prometheus.Gauge
	SessionEvents  *prometheus.CounterVec

	FetchDuration *prometheus.HistogramVec
	CacheResults  *prometheus.CounterVec

	LayoutRequests *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initLayoutMetrics()
	r.initSessionMetrics()
	r.initSourceMetrics()
	return r
}

func (r *Registry) initLayoutMetrics() {
	r.SimulationsStarted = promauto.With(r.registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_started_total",
		Help:      "Number of force simulations created.",
	})
	r.SimulationsStopped = promauto.With(r.registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_stopped_total",
		Help:      "Number of force simulations stopped.",
	})
	r.SimulationsActive = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "simulations_active",
		Help:      "Force simulations currently owned by a view.",
	})
	r.TicksTotal = promauto.With(r.registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_ticks_total",
		Help:      "Simulation ticks run across all views.",
	})
	r.TickDuration = promauto.With(r.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_tick_duration_seconds",
		Help:      "Time taken by one tick including projection.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})
	r.DrawsTotal = promauto.With(r.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "draws_total",
		Help:      "Draw requests by outcome.",
	}, []string{"outcome"})
	r.LayoutRequests = promauto.With(r.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layout_requests_total",
		Help:      "Headless layout requests by gRPC status code.",
	}, []string{"code"})
}

func (r *Registry) initSessionMetrics() {
	r.SessionsActive = promauto.With(r.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Open websocket view sessions.",
	})
	r.SessionEvents = promauto.With(r.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Client events handled by type.",
	}, []string{"type"})
}

func (r *Registry) initSourceMetrics() {
	r.FetchDuration = promauto.With(r.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_fetch_duration_seconds",
		Help:      "Asset API fetch latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
	r.CacheResults = promauto.With(r.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_cache_results_total",
		Help:      "Graph cache lookups by result.",
	}, []string{"result"})
}

// Handler serves the registry in the prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
