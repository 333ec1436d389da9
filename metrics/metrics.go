// Package metrics serves Prometheus metrics for the supervised entrypoint.
// Only started in supervise mode; in exec mode no wrapper process remains to
// serve anything.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsServer serves a dedicated Prometheus registry on its own listener.
type MetricsServer struct {
	srv       *http.Server
	registry  *prometheus.Registry
	namespace string

	// StartupDelaySeconds is the configured startup delay.
	StartupDelaySeconds prometheus.Gauge
}

// New creates a metrics server listening on listenAddr, with all metrics
// under the given namespace.
func New(namespace, listenAddr string) (*MetricsServer, error) {
	registry := prometheus.NewRegistry()

	m := &MetricsServer{
		registry:  registry,
		namespace: namespace,
		StartupDelaySeconds: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "startup_delay_seconds",
			Help:      "Configured startup delay in seconds.",
		}),
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.srv = &http.Server{
		Addr:        listenAddr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	return m, nil
}

// Namespace returns the namespace all metrics are registered under.
func (m *MetricsServer) Namespace() string {
	return m.namespace
}

// MustRegister adds collectors to the server's registry. Used for the
// func-based collectors that read live supervisor state.
func (m *MetricsServer) MustRegister(cs ...prometheus.Collector) {
	m.registry.MustRegister(cs...)
}

// ListenAndServe blocks serving the metrics endpoint.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics listener.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
