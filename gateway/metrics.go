package gateway

import (
	"context"
	"time"

	"github.com/absmach/edgefl/normalizer"
	"github.com/absmach/edgefl/pkg/fl"
	"github.com/go-kit/kit/metrics"
)

var _ Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     Service
}

func MetricsMiddleware(svc Service, counter metrics.Counter, latency metrics.Histogram) Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) Normalize(ctx context.Context, raw normalizer.RawInput) (t normalizer.Tensor, err error) {
	defer mm.observe(OpNormalize, time.Now(), &err)

	return mm.svc.Normalize(ctx, raw)
}

func (mm *metricsMiddleware) Infer(ctx context.Context, index string, raw normalizer.RawInput) (t normalizer.Tensor, resp fl.Response, err error) {
	defer mm.observe(OpInfer, time.Now(), &err)

	return mm.svc.Infer(ctx, index, raw)
}

func (mm *metricsMiddleware) Init(ctx context.Context, req fl.InitRequest) (resp fl.Response, err error) {
	defer mm.observe(OpInit, time.Now(), &err)

	return mm.svc.Init(ctx, req)
}

func (mm *metricsMiddleware) StartTraining(ctx context.Context, req fl.TrainingRequest) (resp fl.Response, err error) {
	defer mm.observe(OpStartTraining, time.Now(), &err)

	return mm.svc.StartTraining(ctx, req)
}

func (mm *metricsMiddleware) ContinueTraining(ctx context.Context, req fl.ContinueTrainingRequest) (resp fl.Response, err error) {
	defer mm.observe(OpContinueTraining, time.Now(), &err)

	return mm.svc.ContinueTraining(ctx, req)
}

func (mm *metricsMiddleware) UpdateMinParams(ctx context.Context, req fl.UpdateMinParamsRequest) (resp fl.Response, err error) {
	defer mm.observe(OpUpdateMinParams, time.Now(), &err)

	return mm.svc.UpdateMinParams(ctx, req)
}

func (mm *metricsMiddleware) ProbeNodes(ctx context.Context, nodeURLs []string) (statuses []fl.NodeStatus, err error) {
	defer mm.observe("probe-nodes", time.Now(), &err)

	return mm.svc.ProbeNodes(ctx, nodeURLs)
}

func (mm *metricsMiddleware) observe(method string, begin time.Time, err *error) {
	outcome := "ok"
	if *err != nil {
		outcome = "error"
	}
	mm.counter.With("method", method, "outcome", outcome).Add(1)
	mm.latency.With("method", method).Observe(time.Since(begin).Seconds())
}
