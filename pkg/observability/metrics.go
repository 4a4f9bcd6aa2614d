package observability

import (
	"context"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the scheduler collectors.
type Metrics struct {
	Started     *prometheus.CounterVec
	Finished    *prometheus.CounterVec
	Interrupted *prometheus.CounterVec
	Ticks       prometheus.Counter
	TickSeconds prometheus.Histogram
	Running     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdbot_commands_started_total",
				Help: "Total number of commands initialized by the scheduler",
			},
			[]string{"command"},
		),
		Finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdbot_commands_finished_total",
				Help: "Total number of commands that finished on their own",
			},
			[]string{"command"},
		),
		Interrupted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdbot_commands_interrupted_total",
				Help: "Total number of commands cancelled or interrupted",
			},
			[]string{"command"},
		),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cmdbot_ticks_total",
			Help: "Total number of scheduler ticks",
		}),
		TickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cmdbot_tick_duration_seconds",
			Help:    "Duration of one scheduler tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.02, 0.05},
		}),
		Running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cmdbot_commands_running",
			Help: "Number of commands running after the last tick",
		}),
	}
	reg.MustRegister(m.Started, m.Finished, m.Interrupted, m.Ticks, m.TickSeconds, m.Running)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandInitialize: func(_ context.Context, e *domain.CommandEvent) {
			m.Started.WithLabelValues(e.Command).Inc()
		},
		OnCommandFinish: func(_ context.Context, e *domain.CommandEvent) {
			m.Finished.WithLabelValues(e.Command).Inc()
		},
		OnCommandInterrupt: func(_ context.Context, e *domain.CommandEvent) {
			m.Interrupted.WithLabelValues(e.Command).Inc()
		},
		OnTick: func(_ context.Context, e *domain.TickEvent) {
			m.Ticks.Inc()
			m.TickSeconds.Observe(e.Duration.Seconds())
			m.Running.Set(float64(e.Running))
		},
	}
}
