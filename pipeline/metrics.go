package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records pipeline activity
type Metrics struct {
	StageDuration *prometheus.HistogramVec
	FixtureCases  *prometheus.CounterVec
	Generations   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "organism_stage_duration_seconds",
				Help:    "Duration of pipeline stages",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{"stage", "outcome"},
		),
		FixtureCases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "organism_fixture_cases_total",
				Help: "Fixture cases verified, by result",
			},
			[]string{"result"},
		),
		Generations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "organism_generations_total",
				Help: "Generations produced for submission, including generation 0",
			},
		),
	}
	reg.MustRegister(m.StageDuration, m.FixtureCases, m.Generations)
	return m
}

func (m *Metrics) observeStage(stage string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.StageDuration.WithLabelValues(stage, outcome).Observe(time.Since(start).Seconds())
}

func (m *Metrics) countCase(passed bool) {
	if m == nil {
		return
	}
	if passed {
		m.FixtureCases.WithLabelValues("pass").Inc()
	} else {
		m.FixtureCases.WithLabelValues("fail").Inc()
	}
}

func (m *Metrics) addGenerations(n int) {
	if m == nil {
		return
	}
	m.Generations.Add(float64(n))
}
