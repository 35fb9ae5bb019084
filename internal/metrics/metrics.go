package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComparisonsTotal counts served comparison requests.
	ComparisonsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homescope_comparisons_total",
		Help: "Number of comparison requests served",
	})

	// EnrichmentFallbacks counts properties that received the fallback
	// enrichment block after an internal failure.
	EnrichmentFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "homescope_enrichment_fallbacks_total",
		Help: "Number of properties enriched with fallback values",
	})

	// AdapterFailures counts failed external-data lookups by service.
	AdapterFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "homescope_adapter_failures_total",
		Help: "Number of failed external adapter calls",
	}, []string{"service"})
)
