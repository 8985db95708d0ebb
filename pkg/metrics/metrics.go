package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tracks projection runs on a private registry so tests can
// create collectors without colliding on the global default. It satisfies
// the engine's MetricsObserver interface.
type Collector struct {
	registry *prometheus.Registry

	projectionsRun     prometheus.Counter
	projectionYears    prometheus.Counter
	projectionDuration prometheus.Histogram
	validationFailures prometheus.Counter
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	return &Collector{
		registry: registry,
		projectionsRun: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "projections_run_total",
			Help: "Total number of completed projection runs",
		}),
		projectionYears: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "projection_years_total",
			Help: "Total number of simulated years across all runs",
		}),
		projectionDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "projection_duration_seconds",
			Help:    "Time taken to run a full projection",
			Buckets: prometheus.DefBuckets,
		}),
		validationFailures: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "plan_validation_failures_total",
			Help: "Total number of plans rejected by validation",
		}),
	}
}

func (c *Collector) ProjectionCompleted(years int, duration time.Duration) {
	c.projectionsRun.Inc()
	c.projectionYears.Add(float64(years))
	c.projectionDuration.Observe(duration.Seconds())
}

func (c *Collector) ValidationFailed() {
	c.validationFailures.Inc()
}

// Handler serves the collector's registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
