package gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/absmach/edgefl/client"
	"github.com/absmach/edgefl/events"
	"github.com/absmach/edgefl/normalizer"
	"github.com/absmach/edgefl/pkg/fl"
)

const (
	OpNormalize        = "normalize"
	OpInfer            = "infer"
	OpInit             = "init"
	OpStartTraining    = "start-training"
	OpContinueTraining = "continue-training"
	OpUpdateMinParams  = "update-minParams"
)

// Service fronts the EDGEFL server: it normalizes raw inputs, forwards
// operator requests and reports every submission as an event.
type Service interface {
	Normalize(ctx context.Context, raw normalizer.RawInput) (normalizer.Tensor, error)
	Infer(ctx context.Context, index string, raw normalizer.RawInput) (normalizer.Tensor, fl.Response, error)
	Init(ctx context.Context, req fl.InitRequest) (fl.Response, error)
	StartTraining(ctx context.Context, req fl.TrainingRequest) (fl.Response, error)
	ContinueTraining(ctx context.Context, req fl.ContinueTrainingRequest) (fl.Response, error)
	UpdateMinParams(ctx context.Context, req fl.UpdateMinParamsRequest) (fl.Response, error)
	ProbeNodes(ctx context.Context, nodeURLs []string) ([]fl.NodeStatus, error)
}

type service struct {
	normalizer    normalizer.Service
	api           client.API
	publisher     events.Publisher
	decodeTimeout time.Duration
	logger        *slog.Logger
}

func NewService(norm normalizer.Service, api client.API, publisher events.Publisher, decodeTimeout time.Duration, logger *slog.Logger) Service {
	return &service{
		normalizer:    norm,
		api:           api,
		publisher:     publisher,
		decodeTimeout: decodeTimeout,
		logger:        logger,
	}
}

func (svc *service) Normalize(ctx context.Context, raw normalizer.RawInput) (normalizer.Tensor, error) {
	if svc.decodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.decodeTimeout)
		defer cancel()
	}

	return svc.normalizer.Normalize(ctx, raw)
}

func (svc *service) Infer(ctx context.Context, index string, raw normalizer.RawInput) (normalizer.Tensor, fl.Response, error) {
	tensor, err := svc.Normalize(ctx, raw)
	if err != nil {
		svc.emit(ctx, OpInfer, index, normalizer.VariantOf(raw), err)

		return normalizer.Tensor{}, fl.Response{}, err
	}

	resp, err := svc.api.Infer(ctx, fl.InferRequest{Input: tensor.Value(), Index: index})
	svc.emit(ctx, OpInfer, index, normalizer.VariantOf(raw), err)
	if err != nil {
		return tensor, fl.Response{}, err
	}

	return tensor, resp, nil
}

func (svc *service) Init(ctx context.Context, req fl.InitRequest) (fl.Response, error) {
	resp, err := svc.api.Init(ctx, req)
	svc.emit(ctx, OpInit, req.Index, "", err)

	return resp, err
}

func (svc *service) StartTraining(ctx context.Context, req fl.TrainingRequest) (fl.Response, error) {
	resp, err := svc.api.StartTraining(ctx, req)
	svc.emit(ctx, OpStartTraining, req.Index, "", err)

	return resp, err
}

func (svc *service) ContinueTraining(ctx context.Context, req fl.ContinueTrainingRequest) (fl.Response, error) {
	resp, err := svc.api.ContinueTraining(ctx, req)
	svc.emit(ctx, OpContinueTraining, req.Index, "", err)

	return resp, err
}

func (svc *service) UpdateMinParams(ctx context.Context, req fl.UpdateMinParamsRequest) (fl.Response, error) {
	resp, err := svc.api.UpdateMinParams(ctx, req)
	svc.emit(ctx, OpUpdateMinParams, req.Index, "", err)

	return resp, err
}

func (svc *service) ProbeNodes(ctx context.Context, nodeURLs []string) ([]fl.NodeStatus, error) {
	return svc.api.ProbeNodes(ctx, nodeURLs)
}

// emit publishes the outcome of a submission. Publishing is best effort:
// failures are logged and never reach the caller.
func (svc *service) emit(ctx context.Context, op, index, variant string, err error) {
	event := events.NewEvent(op, index, err)
	event.Variant = variant
	var apiErr *fl.APIError
	if errors.As(err, &apiErr) {
		event.StatusCode = apiErr.StatusCode
	}

	if perr := svc.publisher.Publish(ctx, event); perr != nil {
		svc.logger.Warn("Failed to publish event",
			slog.String("operation", op),
			slog.String("event_id", event.ID),
			slog.Any("error", perr),
		)
	}
}
