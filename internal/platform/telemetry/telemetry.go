// Package telemetry exposes Prometheus metrics for the hospital store: HTTP
// latency, committed mutations per collection, write-through outcomes per
// persistence key and gate decisions per resource.
package telemetry

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/auth"
	"github.com/VirenPanchal888/Hospital-Booking-Data-Model--system-sub000/internal/platform/store"
)

const namespace = "hms"

// Config holds telemetry settings.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// RuntimeMetrics adds the Go and process collectors.
	RuntimeMetrics bool
}

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	panics          *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	writes          *prometheus.CounterVec
	writeFailures   *prometheus.CounterVec
	writeDuration   *prometheus.HistogramVec
	decisions       *prometheus.CounterVec
	collectionSizes *prometheus.GaugeVec
}

func New(cfg Config) *Metrics {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "hms-server"
	}
	constLabels := prometheus.Labels{"service": cfg.ServiceName}
	if cfg.ServiceVersion != "" {
		constLabels["version"] = cfg.ServiceVersion
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "Duration of HTTP requests.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "active_requests",
			Help:        "Requests currently being served.",
			ConstLabels: constLabels,
		}),
		panics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "panics_total",
			Help:        "Handler panics recovered per route.",
			ConstLabels: constLabels,
		}, []string{"route"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "store",
			Name:        "mutations_total",
			Help:        "Committed mutations per collection and action.",
			ConstLabels: constLabels,
		}, []string{"collection", "action"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "persistence",
			Name:        "writes_total",
			Help:        "Write-through saves per persistence key.",
			ConstLabels: constLabels,
		}, []string{"key"}),
		writeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "persistence",
			Name:        "write_failures_total",
			Help:        "Failed write-through saves per persistence key.",
			ConstLabels: constLabels,
		}, []string{"key"}),
		writeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "persistence",
			Name:        "write_duration_seconds",
			Help:        "Duration of write-through saves.",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"key"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "auth",
			Name:        "gate_decisions_total",
			Help:        "Authorization gate decisions per resource and outcome.",
			ConstLabels: constLabels,
		}, []string{"resource", "outcome"}),
		collectionSizes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "store",
			Name:        "records",
			Help:        "Records currently held per collection.",
			ConstLabels: constLabels,
		}, []string{"collection"}),
	}

	m.registry.MustRegister(
		m.requests, m.activeRequests, m.panics, m.mutations,
		m.writes, m.writeFailures, m.writeDuration,
		m.decisions, m.collectionSizes,
	)
	if cfg.RuntimeMetrics {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records request latency by matched route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.activeRequests.Inc()
			defer m.activeRequests.Dec()

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				// Unmatched paths would explode label cardinality.
				route = "unmatched"
			}
			m.requests.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Panic counts a recovered handler panic.
func (m *Metrics) Panic(route string) {
	m.panics.WithLabelValues(route).Inc()
}

// Changed counts a committed store mutation.
func (m *Metrics) Changed(ev store.ChangeEvent) {
	m.mutations.WithLabelValues(ev.Collection, string(ev.Action)).Inc()
}

var _ store.Observer = (*Metrics)(nil)

// Decision is an auth.DecisionRecorder.
func (m *Metrics) Decision(resource auth.Resource, outcome auth.Outcome) {
	m.decisions.WithLabelValues(string(resource), string(outcome)).Inc()
}

// SetCollectionSizes publishes the current record count per collection.
func (m *Metrics) SetCollectionSizes(counts map[string]int) {
	for name, n := range counts {
		m.collectionSizes.WithLabelValues(name).Set(float64(n))
	}
}

// Medium is the persistence port the store writes through.
type Medium interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}

// InstrumentedMedium counts and times every save made through it.
type InstrumentedMedium struct {
	Medium
	metrics *Metrics
}

// Instrument wraps medium so its saves are observed by m.
func (m *Metrics) Instrument(medium Medium) *InstrumentedMedium {
	return &InstrumentedMedium{Medium: medium, metrics: m}
}

func (im *InstrumentedMedium) Save(ctx context.Context, key string, blob []byte) error {
	start := time.Now()
	err := im.Medium.Save(ctx, key, blob)
	im.metrics.writeDuration.WithLabelValues(key).Observe(time.Since(start).Seconds())
	im.metrics.writes.WithLabelValues(key).Inc()
	if err != nil {
		im.metrics.writeFailures.WithLabelValues(key).Inc()
	}
	return err
}

