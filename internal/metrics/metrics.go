// Package metrics exposes prometheus instrumentation for the refresh and
// cache subsystem.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FetchTotal counts adapter fetches by domain and outcome ("ok" or
	// "degraded"). A degraded fetch still produced a usable (empty) value.
	FetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cyberdash_fetch_total",
		Help: "Source adapter fetches by domain and outcome.",
	}, []string{"domain", "outcome"})

	// FetchDuration observes adapter fetch latency per domain.
	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cyberdash_fetch_duration_seconds",
		Help:    "Source adapter fetch latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"domain"})

	// CacheReads counts reader-path cache checks by domain and result
	// ("hit" or "miss").
	CacheReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cyberdash_cache_reads_total",
		Help: "Reader-path cache freshness checks by result.",
	}, []string{"domain", "result"})

	// SaveFailures counts swallowed cache write failures per domain.
	SaveFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cyberdash_cache_save_failures_total",
		Help: "Cache file writes that failed and were discarded.",
	}, []string{"domain"})
)

// Handler returns the prometheus exposition handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
