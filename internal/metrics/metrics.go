// Package metrics exposes the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tensorgraph_queries_total",
		Help: "Graph queries issued, by outcome.",
	}, []string{"outcome"})

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tensorgraph_query_duration_seconds",
		Help:    "Latency of individual graph queries.",
		Buckets: prometheus.DefBuckets,
	})

	DiscardedEdges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tensorgraph_discarded_edges_total",
		Help: "Raw edges dropped because no declared label pair matched.",
	})

	Snapshots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tensorgraph_snapshots_total",
		Help: "Subgraph extractions completed successfully.",
	})
)
