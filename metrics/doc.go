// Package metrics registers the prometheus counters and histograms that the
// benchmark sweep (internal/bench) records per swap engine, and serves them
// over an optional chi-routed HTTP endpoint.
//
// Grounded in internal/metrics.go and internal/prometheus.go's
// registry/CounterVec/promhttp wiring.
package metrics
