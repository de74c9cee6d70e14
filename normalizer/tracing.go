package normalizer

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Service = (*tracingMiddleware)(nil)

type tracingMiddleware struct {
	tracer trace.Tracer
	svc    Service
}

func TracingMiddleware(svc Service, tracer trace.Tracer) Service {
	return &tracingMiddleware{tracer: tracer, svc: svc}
}

func (tm *tracingMiddleware) Normalize(ctx context.Context, raw RawInput) (Tensor, error) {
	ctx, span := tm.tracer.Start(ctx, "normalize", trace.WithAttributes(
		attribute.String("variant", VariantOf(raw)),
	))
	defer span.End()

	t, err := tm.svc.Normalize(ctx, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, KindOf(err).String())

		return t, err
	}
	span.SetAttributes(attribute.Int("tensor.len", t.Len()))

	return t, nil
}
