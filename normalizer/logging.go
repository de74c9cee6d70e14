package normalizer

import (
	"context"
	"log/slog"
	"time"
)

var _ Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    Service
}

func LoggingMiddleware(svc Service, logger *slog.Logger) Service {
	return &loggingMiddleware{logger: logger, svc: svc}
}

func (lm *loggingMiddleware) Normalize(ctx context.Context, raw RawInput) (t Tensor, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("variant", VariantOf(raw)),
		}
		if err != nil {
			args = append(args,
				slog.String("kind", KindOf(err).String()),
				slog.Any("error", err),
			)
			lm.logger.Warn("Normalize input failed", args...)

			return
		}
		args = append(args, slog.String("shape", shapeString(t.Shape)))
		lm.logger.Info("Normalize input completed successfully", args...)
	}(time.Now())

	return lm.svc.Normalize(ctx, raw)
}
