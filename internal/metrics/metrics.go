package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus instruments for the analysis service.
type Metrics struct {
	AnalysesTotal    prometheus.Counter
	AnalysesFailed   prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	AnalysisDuration prometheus.Histogram

	// Labeled instruments
	AnalysesByType *prometheus.CounterVec
	ModelsInvoked  *prometheus.CounterVec
	ModelFailures  *prometheus.CounterVec
	StoreErrors    *prometheus.CounterVec
}

// New creates all metrics and registers them with reg. Passing a private
// registry keeps tests isolated from the default one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AnalysesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "geosim_analyses_total",
			Help: "Total number of scenario analyses started",
		}),
		AnalysesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "geosim_analyses_failed",
			Help: "Number of scenario analyses that ended with status=error",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "geosim_cache_hits",
			Help: "Number of analyses served from the scenario result cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "geosim_cache_misses",
			Help: "Number of analyses that missed the scenario result cache",
		}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "geosim_analysis_duration_seconds",
			Help:    "Wall time of one full pipeline run",
			Buckets: prometheus.DefBuckets,
		}),

		AnalysesByType: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geosim_analyses_by_type",
				Help: "Scenario analyses started, by scenario type",
			},
			[]string{"scenario_type"},
		),
		ModelsInvoked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geosim_models_invoked",
				Help: "Domain simulators invoked, by domain",
			},
			[]string{"domain"},
		),
		ModelFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geosim_model_failures",
				Help: "Domain simulators that failed, by domain",
			},
			[]string{"domain"},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geosim_store_errors",
				Help: "Persistence errors, by operation",
			},
			[]string{"operation"},
		),
	}
}
