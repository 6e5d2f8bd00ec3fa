// Package metrics exposes prometheus metrics of the planning service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	planLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "roadfinder",
		Subsystem: "planner",
		Name:      "plan_duration_seconds",
		Help:      "Time to answer a plan request in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"solver", "status"})

	// status is one of found, not_found, error
	planRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roadfinder",
		Subsystem: "planner",
		Name:      "requests_total",
		Help:      "Total plan requests by outcome",
	}, []string{"solver", "status"})

	planCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roadfinder",
		Subsystem: "planner",
		Name:      "cache_lookups_total",
		Help:      "Plan cache lookups by result",
	}, []string{"result"})

	pathCells = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "roadfinder",
		Subsystem: "planner",
		Name:      "path_cells",
		Help:      "Number of cells of found paths",
		Buckets:   prometheus.ExponentialBuckets(2, 2, 12),
	})

	storedMaps = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "roadfinder",
		Subsystem: "planner",
		Name:      "stored_maps",
		Help:      "Number of maps registered in the planning service",
	})
)

const (
	StatusFound    = "found"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

func RecordPlan(solver, status string, durationSec float64, cells int) {
	planLatency.WithLabelValues(solver, status).Observe(durationSec)
	planRequests.WithLabelValues(solver, status).Inc()
	if status == StatusFound {
		pathCells.Observe(float64(cells))
	}
}

func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	planCacheLookups.WithLabelValues(result).Inc()
}

func SetStoredMaps(n int) {
	storedMaps.Set(float64(n))
}
