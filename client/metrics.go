package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgefl_client_requests_total",
			Help: "Total number of requests sent to the EDGEFL server",
		},
		[]string{"path", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edgefl_client_request_duration_seconds",
			Help:    "EDGEFL server request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~41s
		},
		[]string{"path"},
	)

	probeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "edgefl_node_probe_duration_seconds",
			Help:    "Node probe duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"reachable"},
	)
)
