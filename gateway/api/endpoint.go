package api

import (
	"context"

	"github.com/absmach/edgefl/gateway"
	"github.com/go-kit/kit/endpoint"
)

func MakeNormalizeEndpoint(svc gateway.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(normalizeReq)
		if err := req.validate(); err != nil {
			return nil, err
		}

		raw, err := req.rawInput()
		if err != nil {
			return nil, err
		}

		tensor, err := svc.Normalize(ctx, raw)
		if err != nil {
			return nil, err
		}

		return normalizeRes{Shape: tensor.Shape, Input: tensor.Value()}, nil
	}
}

func MakeInferEndpoint(svc gateway.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(inferReq)
		if err := req.validate(); err != nil {
			return nil, err
		}

		raw, err := req.rawInput()
		if err != nil {
			return nil, err
		}

		tensor, resp, err := svc.Infer(ctx, req.Index, raw)
		if err != nil {
			return nil, err
		}

		return inferRes{Shape: tensor.Shape, Result: resp}, nil
	}
}

func MakeInitEndpoint(svc gateway.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(initReq)
		if err := req.validate(); err != nil {
			return nil, err
		}

		resp, err := svc.Init(ctx, req.InitRequest)
		if err != nil {
			return nil, err
		}

		return serverRes{resp}, nil
	}
}

func MakeStartTrainingEndpoint(svc gateway.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(startTrainingReq)
		if err := req.validate(); err != nil {
			return nil, err
		}

		resp, err := svc.StartTraining(ctx, req.TrainingRequest)
		if err != nil {
			return nil, err
		}

		return serverRes{resp}, nil
	}
}

func MakeContinueTrainingEndpoint(svc gateway.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(continueTrainingReq)
		if err := req.validate(); err != nil {
			return nil, err
		}

		resp, err := svc.ContinueTraining(ctx, req.ContinueTrainingRequest)
		if err != nil {
			return nil, err
		}

		return serverRes{resp}, nil
	}
}

func MakeUpdateMinParamsEndpoint(svc gateway.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(updateMinParamsReq)
		if err := req.validate(); err != nil {
			return nil, err
		}

		resp, err := svc.UpdateMinParams(ctx, req.UpdateMinParamsRequest)
		if err != nil {
			return nil, err
		}

		return serverRes{resp}, nil
	}
}

func MakeProbeNodesEndpoint(svc gateway.Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(probeNodesReq)
		if err := req.validate(); err != nil {
			return nil, err
		}

		statuses, err := svc.ProbeNodes(ctx, req.NodeURLs)
		if err != nil {
			return nil, err
		}

		return probeNodesRes{Nodes: statuses}, nil
	}
}
