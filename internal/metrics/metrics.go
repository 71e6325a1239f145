package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "structured_data_documents_built_total",
		Help: "Number of JSON-LD documents assembled from host data.",
	})
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "structured_data_cache_hits_total",
		Help: "Number of payload cache hits.",
	})
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "structured_data_cache_misses_total",
		Help: "Number of payload cache misses.",
	})
	ValidationWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "structured_data_validation_warnings_total",
		Help: "Number of validation warnings produced alongside documents.",
	})
	RenderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "structured_data_render_failures_total",
		Help: "Number of public renders that failed and yielded an empty payload.",
	})
	CacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "structured_data_cache_invalidations_total",
		Help: "Number of explicit cache invalidations.",
	})
)
