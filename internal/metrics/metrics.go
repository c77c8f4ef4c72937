// Package metrics exposes Prometheus collectors describing engine behaviour:
// transit search outcomes, solver iteration caps and ephemeris cache efficiency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "graha"

// Label values for cache lookups.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	// Registry holds every engine collector. Embedders expose it through their own handler.
	Registry = prometheus.NewRegistry()

	transitSearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transit",
			Name:      "searches_total",
			Help:      "Sign ingress searches by planet and terminal state.",
		},
		[]string{"planet", "state"},
	)

	transitStageIterations = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "transit",
			Name:      "stage_iterations",
			Help:      "Iterations spent in each transit search stage.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 15, 20, 25},
		},
		[]string{"stage"},
	)

	keplerCapHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ephemeris",
			Name:      "kepler_iteration_cap_total",
			Help:      "Kepler solutions that hit the iteration cap before converging.",
		},
		[]string{"planet"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ephemeris",
			Name:      "cache_lookups_total",
			Help:      "Ephemeris position cache lookups by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(transitSearches, transitStageIterations, keplerCapHits, cacheLookups)
}

// ObserveTransitSearch records the terminal state of a transit search.
func ObserveTransitSearch(planet, state string) {
	transitSearches.WithLabelValues(planet, state).Inc()
}

// ObserveTransitStage records the iterations a search spent in one stage.
func ObserveTransitStage(stage string, iterations int) {
	transitStageIterations.WithLabelValues(stage).Observe(float64(iterations))
}

// ObserveKeplerCapHit records a non-converged Kepler solution.
func ObserveKeplerCapHit(planet string) {
	keplerCapHits.WithLabelValues(planet).Inc()
}

// ObserveCacheLookup records a cache hit or miss.
func ObserveCacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}
