package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/absmach/edgefl/normalizer"
	"github.com/absmach/edgefl/pkg/fl"
)

var _ Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    Service
}

func LoggingMiddleware(svc Service, logger *slog.Logger) Service {
	return &loggingMiddleware{logger: logger, svc: svc}
}

func (lm *loggingMiddleware) Normalize(ctx context.Context, raw normalizer.RawInput) (t normalizer.Tensor, err error) {
	defer func(begin time.Time) {
		lm.log("Normalize", begin, err, slog.String("variant", normalizer.VariantOf(raw)))
	}(time.Now())

	return lm.svc.Normalize(ctx, raw)
}

func (lm *loggingMiddleware) Infer(ctx context.Context, index string, raw normalizer.RawInput) (t normalizer.Tensor, resp fl.Response, err error) {
	defer func(begin time.Time) {
		lm.log("Infer", begin, err,
			slog.String("index", index),
			slog.String("variant", normalizer.VariantOf(raw)),
		)
	}(time.Now())

	return lm.svc.Infer(ctx, index, raw)
}

func (lm *loggingMiddleware) Init(ctx context.Context, req fl.InitRequest) (resp fl.Response, err error) {
	defer func(begin time.Time) {
		lm.log("Init", begin, err,
			slog.String("index", req.Index),
			slog.Int("nodes", len(req.NodeURLs)),
		)
	}(time.Now())

	return lm.svc.Init(ctx, req)
}

func (lm *loggingMiddleware) StartTraining(ctx context.Context, req fl.TrainingRequest) (resp fl.Response, err error) {
	defer func(begin time.Time) {
		lm.log("Start training", begin, err,
			slog.String("index", req.Index),
			slog.Int("total_rounds", req.TotalRounds),
			slog.Int("min_params", req.MinParams),
		)
	}(time.Now())

	return lm.svc.StartTraining(ctx, req)
}

func (lm *loggingMiddleware) ContinueTraining(ctx context.Context, req fl.ContinueTrainingRequest) (resp fl.Response, err error) {
	defer func(begin time.Time) {
		lm.log("Continue training", begin, err,
			slog.String("index", req.Index),
			slog.Int("additional_rounds", req.AdditionalRounds),
			slog.Int("min_params", req.MinParams),
		)
	}(time.Now())

	return lm.svc.ContinueTraining(ctx, req)
}

func (lm *loggingMiddleware) UpdateMinParams(ctx context.Context, req fl.UpdateMinParamsRequest) (resp fl.Response, err error) {
	defer func(begin time.Time) {
		lm.log("Update minParams", begin, err,
			slog.String("index", req.Index),
			slog.Int("min_params", req.UpdatedMinParams),
		)
	}(time.Now())

	return lm.svc.UpdateMinParams(ctx, req)
}

func (lm *loggingMiddleware) ProbeNodes(ctx context.Context, nodeURLs []string) (statuses []fl.NodeStatus, err error) {
	defer func(begin time.Time) {
		lm.log("Probe nodes", begin, err, slog.Int("nodes", len(nodeURLs)))
	}(time.Now())

	return lm.svc.ProbeNodes(ctx, nodeURLs)
}

func (lm *loggingMiddleware) log(op string, begin time.Time, err error, attrs ...any) {
	args := append([]any{slog.String("duration", time.Since(begin).String())}, attrs...)
	if err != nil {
		args = append(args, slog.Any("error", err))
		lm.logger.Warn(op+" failed", args...)

		return
	}
	lm.logger.Info(op+" completed successfully", args...)
}
