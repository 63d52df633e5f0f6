package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/shopsearch/internal/db"
)

// Search outcomes used as the "outcome" label.
const (
	OutcomeMatched     = "matched"
	OutcomeNoMatch     = "no_match"
	OutcomeEmpty       = "empty"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeFault       = "fault"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Search requests by final state",
		},
		[]string{"outcome"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	SearchZeroResultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_zero_results_total",
			Help:      "Searches that matched nothing",
		},
	)

	SuggestionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "suggestion_failures_total",
			Help:      "Dictionary lookups that failed and were degraded to no suggestions",
		},
	)

	SuggestionCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "suggestion_cache_total",
			Help:      "Suggestion cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchZeroResultsTotal)
	prometheus.MustRegister(SuggestionFailuresTotal)
	prometheus.MustRegister(SuggestionCacheTotal)
	searchMetricsRegistered = true
}

// StatsSource reports connection pool usage.
type StatsSource interface {
	Stats() db.PoolStats
}

// RegisterPoolMetrics exposes pool gauges read on every scrape.
func RegisterPoolMetrics(reg prometheus.Registerer, src StatsSource) {
	gauge := func(name, help string, read func(db.PoolStats) int) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Namespace: Namespace, Subsystem: "db_pool", Name: name, Help: help},
			func() float64 { return float64(read(src.Stats())) },
		)
	}
	reg.MustRegister(
		gauge("acquired_connections", "Connections currently in use", func(s db.PoolStats) int { return s.Acquired }),
		gauge("idle_connections", "Idle connections", func(s db.PoolStats) int { return s.Idle }),
		gauge("total_connections", "Open connections", func(s db.PoolStats) int { return s.Total }),
		gauge("max_connections", "Pool size limit", func(s db.PoolStats) int { return s.Max }),
	)
}
