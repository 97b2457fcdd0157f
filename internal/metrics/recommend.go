package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recdex",
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"algorithm", "outcome"}, // outcome: "hit" / "none"
	)

	RecommendationCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recdex",
			Name:      "recommendation_candidates",
			Help:      "Number of unrated catalog items scored per recommendation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"algorithm"},
	)

	PredictionNeighbors = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recdex",
			Name:      "prediction_neighbors",
			Help:      "Effective neighborhood size used per rating prediction",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	CatalogItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "recdex",
			Name:      "catalog_items",
			Help:      "Number of items in the shared catalog",
		},
	)
)

var recMetricsRegistered bool

// RegisterRecommendMetrics registers Prometheus recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(RecommendationCandidates)
	prometheus.MustRegister(PredictionNeighbors)
	prometheus.MustRegister(CatalogItems)
	recMetricsRegistered = true
}
