package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/math-u-t/Drive-CLI/pkg/metrics"
)

// commandMetrics is the Prometheus implementation of metrics.CommandMetrics.
type commandMetrics struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
}

// NewCommandMetrics creates a Prometheus-backed CommandMetrics instance.
//
// Returns a no-op implementation if metrics are not enabled.
func NewCommandMetrics() metrics.CommandMetrics {
	if !metrics.IsEnabled() {
		return metrics.NewNoopCommandMetrics()
	}

	reg := metrics.GetRegistry()

	return &commandMetrics{
		commandsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "drivecli_commands_total",
				Help: "Total number of shell commands by verb and status",
			},
			[]string{"verb", "status"},
		),
		commandDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "drivecli_command_duration_milliseconds",
				Help: "Duration of shell commands in milliseconds",
				Buckets: []float64{
					1,    // 1ms
					10,   // 10ms
					100,  // 100ms
					1000, // 1s
					5000, // 5s
				},
			},
			[]string{"verb"},
		),
	}
}

func (m *commandMetrics) ObserveCommand(verb string, success bool, duration time.Duration) {
	status := "ok"
	if !success {
		status = "error"
	}
	m.commandsTotal.WithLabelValues(verb, status).Inc()
	m.commandDuration.WithLabelValues(verb).Observe(float64(duration.Milliseconds()))
}
