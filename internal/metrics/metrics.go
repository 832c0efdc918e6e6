package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_lookups_total",
			Help: "Total number of device price lookups",
		},
		[]string{"status"},
	)

	PricesExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scraper_prices_extracted_total",
			Help: "Total number of price tokens extracted from search pages",
		},
	)

	LookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_lookup_duration_seconds",
			Help:    "Time taken to fetch and parse one device's search page",
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_cache_lookups_total",
			Help: "Price cache lookups by result",
		},
		[]string{"result"},
	)
)

func StartMetricsServer(addr string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, nil)
}
