package metrics

import (
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// MakeMetrics returns the request counter and latency histogram for a
// service, both labelled by method.
func MakeMetrics(namespace, subsystem string) (*kitprometheus.Counter, *kitprometheus.Histogram) {
	counter := kitprometheus.NewCounterFrom(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_count",
		Help:      "Number of requests received",
	}, []string{"method", "outcome"})

	latency := kitprometheus.NewHistogramFrom(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	return counter, latency
}

// NormalizerMetrics returns the collectors behind edgefl_normalize_total
// and edgefl_normalize_duration_seconds.
func NormalizerMetrics(namespace string) (*kitprometheus.Counter, *kitprometheus.Histogram) {
	counter := kitprometheus.NewCounterFrom(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "normalize_total",
		Help:      "Number of normalization calls by input variant and outcome",
	}, []string{"variant", "outcome"})

	latency := kitprometheus.NewHistogramFrom(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "normalize_duration_seconds",
		Help:      "Normalization duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	}, []string{"variant"})

	return counter, latency
}
