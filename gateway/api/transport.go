package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/absmach/edgefl/gateway"
	"github.com/absmach/edgefl/normalizer"
	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/absmach/edgefl/pkg/fl"
	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	contentType     = "application/json"
	maxUploadSize   = 32 << 20
	fileField       = "file"
	octetStreamType = "application/octet-stream"
)

// MakeHandler returns the gateway HTTP handler.
func MakeHandler(svc gateway.Service, logger *slog.Logger) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerErrorHandler(errorLogger{logger}),
	}

	mux := chi.NewRouter()
	mux.Use(limitBody(maxUploadSize))

	mux.Post("/normalize", kithttp.NewServer(
		MakeNormalizeEndpoint(svc),
		decodeNormalizeRequest,
		encodeResponse,
		opts...,
	).ServeHTTP)

	mux.Post("/infer", kithttp.NewServer(
		MakeInferEndpoint(svc),
		decodeInferRequest,
		encodeResponse,
		opts...,
	).ServeHTTP)

	mux.Post("/init", kithttp.NewServer(
		MakeInitEndpoint(svc),
		decodeJSON[initReq],
		encodeResponse,
		opts...,
	).ServeHTTP)

	mux.Post("/start-training", kithttp.NewServer(
		MakeStartTrainingEndpoint(svc),
		decodeJSON[startTrainingReq],
		encodeResponse,
		opts...,
	).ServeHTTP)

	mux.Post("/continue-training", kithttp.NewServer(
		MakeContinueTrainingEndpoint(svc),
		decodeJSON[continueTrainingReq],
		encodeResponse,
		opts...,
	).ServeHTTP)

	mux.Post("/update-minParams", kithttp.NewServer(
		MakeUpdateMinParamsEndpoint(svc),
		decodeJSON[updateMinParamsReq],
		encodeResponse,
		opts...,
	).ServeHTTP)

	mux.Route("/nodes", func(r chi.Router) {
		r.Get("/probe", kithttp.NewServer(
			MakeProbeNodesEndpoint(svc),
			decodeProbeNodesRequest,
			encodeResponse,
			opts...,
		).ServeHTTP)
	})

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_ = encodeResponse(context.Background(), w, healthRes{Status: "ok"})
	})
	mux.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(mux, "edgefl-gateway")
}

// limitBody caps every request body at limit bytes.
func limitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

type errorLogger struct {
	logger *slog.Logger
}

func (l errorLogger) Handle(ctx context.Context, err error) {
	l.logger.WarnContext(ctx, "Request failed", slog.Any("error", err))
}

func decodeJSON[T any](_ context.Context, r *http.Request) (any, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), contentType) {
		return nil, pkgerrors.ErrUnsupportedContentType
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Join(pkgerrors.ErrMalformedEntity, err)
	}

	var req T
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Join(pkgerrors.ErrMalformedEntity, err)
	}

	return req, nil
}

func decodeNormalizeRequest(ctx context.Context, r *http.Request) (any, error) {
	if isMultipart(r) {
		in, err := decodeUpload(r)
		if err != nil {
			return nil, err
		}

		return normalizeReq{inputReq: in}, nil
	}

	req, err := decodeJSON[normalizeReq](ctx, r)
	if err != nil {
		return nil, err
	}

	return req, nil
}

func decodeInferRequest(ctx context.Context, r *http.Request) (any, error) {
	if isMultipart(r) {
		in, err := decodeUpload(r)
		if err != nil {
			return nil, err
		}

		return inferReq{inputReq: in, Index: r.FormValue("index")}, nil
	}

	req, err := decodeJSON[inferReq](ctx, r)
	if err != nil {
		return nil, err
	}

	return req, nil
}

func decodeProbeNodesRequest(_ context.Context, r *http.Request) (any, error) {
	return probeNodesReq{NodeURLs: r.URL.Query()["url"]}, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))

	return err == nil && mediaType == "multipart/form-data"
}

// decodeUpload reads a form upload. The part's own Content-Type is used as
// the declared MIME unless it is the generic octet-stream, in which case the
// type is sniffed from the bytes.
func decodeUpload(r *http.Request) (inputReq, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return inputReq{}, errors.Join(pkgerrors.ErrMalformedEntity, err)
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		return inputReq{}, errors.Join(pkgerrors.ErrMalformedEntity, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return inputReq{}, errors.Join(pkgerrors.ErrMalformedEntity, err)
	}

	declared := header.Header.Get("Content-Type")
	if declared == octetStreamType {
		declared = ""
	}

	return inputReq{
		Kind: r.FormValue("kind"),
		Data: data,
		Text: string(data),
		MIME: declared,
	}, nil
}

func encodeResponse(_ context.Context, w http.ResponseWriter, response any) error {
	w.Header().Set("Content-Type", contentType)

	return json.NewEncoder(w).Encode(response)
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	res := errorRes{Error: err.Error()}
	status := http.StatusInternalServerError

	var (
		apiErr   *fl.APIError
		tooLarge *http.MaxBytesError
	)
	switch kind := normalizer.KindOf(err); {
	case kind == normalizer.MalformedJSON:
		res.Kind, status = kind.String(), http.StatusBadRequest
	case kind == normalizer.UnsupportedMIME:
		res.Kind, status = kind.String(), http.StatusUnsupportedMediaType
	case kind == normalizer.WrongShape, kind == normalizer.DecodeFailure:
		res.Kind, status = kind.String(), http.StatusUnprocessableEntity
	case errors.Is(err, pkgerrors.ErrUnsupportedContentType):
		status = http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, pkgerrors.ErrMalformedEntity),
		errors.Is(err, pkgerrors.ErrInvalidParams),
		errors.Is(err, pkgerrors.ErrInvalidData),
		errors.Is(err, pkgerrors.ErrMissingIndex),
		errors.Is(err, pkgerrors.ErrMissingNodes):
		status = http.StatusBadRequest
	case errors.As(err, &apiErr):
		res.StatusCode = apiErr.StatusCode
		status = http.StatusBadGateway
		if apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
			status = apiErr.StatusCode
		}
	case errors.Is(err, pkgerrors.ErrServerRequest):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(res)
}
