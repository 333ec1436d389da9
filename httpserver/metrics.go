package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/apexfleet/botstrap/metrics"
	"github.com/apexfleet/botstrap/runner"
)

// registerSupervisorMetrics wires func-based collectors that read live
// supervisor state, so the metrics endpoint always reflects the actual child
// process without any bookkeeping in the supervisor itself.
func registerSupervisorMetrics(m *metrics.MetricsServer, sup *runner.Supervisor) {
	m.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.Namespace(),
			Name:      "child_running",
			Help:      "Whether the downstream process is currently running.",
		}, func() float64 {
			if sup.Running() {
				return 1
			}
			return 0
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.Namespace(),
			Name:      "child_exit_code",
			Help:      "Exit code of the downstream process once it has exited.",
		}, func() float64 {
			return float64(sup.ExitCode())
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: m.Namespace(),
			Name:      "signals_forwarded_total",
			Help:      "Signals relayed from the wrapper to the downstream process.",
		}, func() float64 {
			return float64(sup.SignalsForwarded())
		}),
	)
}
