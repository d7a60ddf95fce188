package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics bundles the counters/histograms an orchestrator run reports.
// Registration happens once, in a private registry, so importing this
// package never panics on double-registration in tests that construct
// multiple orchestrators. solve updates only batches; trajectories,
// phaseSeconds and bestEnergy are registered but never set.
type metrics struct {
	batches   *prometheus.CounterVec
	trajectories *prometheus.CounterVec
	phaseSeconds *prometheus.HistogramVec
	bestEnergy *prometheus.GaugeVec
}

var defaultMetrics = newMetrics(prometheus.NewRegistry())

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		batches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qumocore",
			Name:      "batches_total",
			Help:      "Number of exploration runs (one worker-pool round each) completed, by phase.",
		}, []string{"phase"}),
		trajectories: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qumocore",
			Name:      "trajectories_total",
			Help:      "Number of sampler trajectories run, by phase.",
		}, []string{"phase"}),
		phaseSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qumocore",
			Name:      "phase_duration_seconds",
			Help:      "Wall-clock duration of each orchestrator phase.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),
		bestEnergy: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "qumocore",
			Name:      "best_energy",
			Help:      "Best objective value found so far, by phase.",
		}, []string{"phase"}),
	}
}
