package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "emswap"

// Metrics holds the engine-facing collectors registered against one
// registry: swaps performed, swaps rejected by conflict, swaps rejected by
// loop, and per-batch duration, each labeled by engine ("internal" or
// "tfp").
type Metrics struct {
	Registry *prometheus.Registry

	SwapsPerformed *prometheus.CounterVec
	SwapsConflict  *prometheus.CounterVec
	SwapsLoop      *prometheus.CounterVec
	BatchDuration  *prometheus.HistogramVec
}

// New builds a Metrics with a fresh registry, the standard Go/process
// collectors, and the four emswap collectors all registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)

	m := &Metrics{
		Registry: reg,
		SwapsPerformed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_performed_total",
			Help:      "Swaps that were performed (passed loop and conflict checks).",
		}, []string{"engine"}),
		SwapsConflict: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_conflict_total",
			Help:      "Swaps rejected because a target edge already existed.",
		}, []string{"engine"}),
		SwapsLoop: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_loop_total",
			Help:      "Swaps rejected because they would create a self-loop.",
		}, []string{"engine"}),
		BatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall-clock duration of one swap batch, by engine.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"engine"}),
	}
	reg.MustRegister(m.SwapsPerformed, m.SwapsConflict, m.SwapsLoop, m.BatchDuration)
	return m
}

// ObserveResults tallies a batch's core.SwapResult-shaped outcome counts
// against the performed/conflict/loop counters for engine.
func (m *Metrics) ObserveResults(engine string, performed, conflict, loop int) {
	if performed > 0 {
		m.SwapsPerformed.WithLabelValues(engine).Add(float64(performed))
	}
	if conflict > 0 {
		m.SwapsConflict.WithLabelValues(engine).Add(float64(conflict))
	}
	if loop > 0 {
		m.SwapsLoop.WithLabelValues(engine).Add(float64(loop))
	}
}
