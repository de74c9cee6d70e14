package normalizer

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
)

var _ Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     Service
}

// MetricsMiddleware counts calls by variant and outcome and observes their
// latency in seconds by variant.
func MetricsMiddleware(svc Service, counter metrics.Counter, latency metrics.Histogram) Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) Normalize(ctx context.Context, raw RawInput) (t Tensor, err error) {
	variant := VariantOf(raw)
	defer func(begin time.Time) {
		outcome := "ok"
		if err != nil {
			outcome = KindOf(err).String()
		}
		mm.counter.With("variant", variant, "outcome", outcome).Add(1)
		mm.latency.With("variant", variant).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return mm.svc.Normalize(ctx, raw)
}
