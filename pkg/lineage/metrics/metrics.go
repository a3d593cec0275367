package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mapping metrics
	MappingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lineage_mapping_requests_total",
			Help: "Total number of lineage mapping requests",
		},
		[]string{"status"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lineage_model_call_duration_seconds",
			Help: "Time spent on external model calls",
		},
		[]string{"kind"},
	)

	ModelErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lineage_model_errors_total",
			Help: "Total number of failed model calls",
		},
		[]string{"kind"},
	)

	// Graph metrics
	GraphNodeCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lineage_graph_nodes_total",
			Help: "Number of nodes in the last mapped graph",
		},
		[]string{"group"},
	)

	GraphEdgeCount = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lineage_graph_edges_total",
			Help: "Number of edges in the last mapped graph",
		},
		[]string{"label"},
	)

	GraphDanglingEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lineage_graph_dangling_edges",
		Help: "Edges in the last mapped graph referencing unknown node ids",
	})
)
