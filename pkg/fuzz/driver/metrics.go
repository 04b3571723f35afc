package driver

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the driver's iteration counters as Prometheus counters over
// HTTP. Entirely optional and additive — see SPEC_FULL.md DOMAIN STACK.
type Metrics struct {
	iterations       prometheus.Counter
	failedIterations prometheus.Counter
	server           *http.Server
}

// NewMetrics registers the two counters on a private registry (never the
// global default, so multiple Drivers in one process don't collide) and
// starts an HTTP server serving them at addr.
func NewMetrics(addr string) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pcfuzz_iterations_total",
			Help: "Total fuzzer iterations run.",
		}),
		failedIterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pcfuzz_failed_iterations_total",
			Help: "Total fuzzer iterations counted as failed.",
		}),
	}
	registry.MustRegister(m.iterations, m.failedIterations)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	m.server = &http.Server{Addr: addr, Handler: mux}
	go m.server.ListenAndServe() //nolint:errcheck

	return m
}

// Observe records one completed iteration.
func (m *Metrics) Observe(failed bool) {
	m.iterations.Inc()
	if failed {
		m.failedIterations.Inc()
	}
}

// Shutdown stops the metrics HTTP server.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.server.Shutdown(ctx)
}
