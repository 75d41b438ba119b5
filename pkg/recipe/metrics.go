package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recipeQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_catalog_query_duration_seconds",
			Help:    "Duration of recipe read operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	recipeQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_catalog_query_errors_total",
			Help: "Total number of failed recipe operations",
		},
		[]string{"operation"},
	)

	recipeWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_catalog_writes_total",
			Help: "Total number of committed recipe writes",
		},
		[]string{"operation"},
	)
)
