package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommender Prometheus metrics.
var (
	FeatureCacheBuildsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stylemart",
			Name:      "feature_cache_builds_total",
			Help:      "Total number of feature vector cache builds",
		},
	)

	SimilarQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stylemart",
			Name:      "similar_queries_total",
			Help:      "Total number of similar-item queries",
		},
	)

	RecommendationsServedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "stylemart",
			Name:      "recommendations_served_total",
			Help:      "Total number of recommended products returned",
		},
	)
)

var recMetricsRegistered bool

// RegisterRecommenderMetrics registers Prometheus recommender metrics. Must be called once from main.
func RegisterRecommenderMetrics() {
	if recMetricsRegistered {
		return
	}
	prometheus.MustRegister(FeatureCacheBuildsTotal)
	prometheus.MustRegister(SimilarQueriesTotal)
	prometheus.MustRegister(RecommendationsServedTotal)
	recMetricsRegistered = true
}
