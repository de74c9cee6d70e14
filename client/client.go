//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=mocks/client.go -package=mocks

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/absmach/edgefl/pkg/fl"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout = 30 * time.Second
	contentType    = "application/json"
	requestIDKey   = "X-Request-ID"

	initPath             = "/init"
	startTrainingPath    = "/start-training"
	continueTrainingPath = "/continue-training"
	updateMinParamsPath  = "/update-minParams"
	inferPath            = "/infer"
)

// API is the EDGEFL server surface used by the CLI and the gateway.
type API interface {
	Init(ctx context.Context, req fl.InitRequest) (fl.Response, error)
	StartTraining(ctx context.Context, req fl.TrainingRequest) (fl.Response, error)
	ContinueTraining(ctx context.Context, req fl.ContinueTrainingRequest) (fl.Response, error)
	UpdateMinParams(ctx context.Context, req fl.UpdateMinParamsRequest) (fl.Response, error)
	Infer(ctx context.Context, req fl.InferRequest) (fl.Response, error)
	ProbeNodes(ctx context.Context, nodeURLs []string) ([]fl.NodeStatus, error)
}

var _ API = (*Client)(nil)

type Client struct {
	serverURL  string
	httpClient *http.Client
	timeout    time.Duration
	probeLimit int
}

type Option func(*Client)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the request timeout. It applies to a copy of the HTTP
// client, so a client passed to WithHTTPClient is left untouched.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithProbeLimit bounds how many nodes ProbeNodes contacts at once.
func WithProbeLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.probeLimit = limit
		}
	}
}

func New(serverURL string, opts ...Option) *Client {
	c := &Client{
		serverURL: ServerURL(serverURL),
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		probeLimit: defaultProbeLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// ServerURL returns the base URL requests are sent to, defaulting to
// localhost:8080 and prefixing http:// when no scheme is given.
func ServerURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fl.DefaultServerURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}

	return strings.TrimRight(raw, "/")
}

func (c *Client) BaseURL() string {
	return c.serverURL
}

func (c *Client) Init(ctx context.Context, req fl.InitRequest) (fl.Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return fl.Response{}, err
	}

	return c.post(ctx, initPath, req)
}

func (c *Client) StartTraining(ctx context.Context, req fl.TrainingRequest) (fl.Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return fl.Response{}, err
	}

	return c.post(ctx, startTrainingPath, req)
}

func (c *Client) ContinueTraining(ctx context.Context, req fl.ContinueTrainingRequest) (fl.Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return fl.Response{}, err
	}

	return c.post(ctx, continueTrainingPath, req)
}

func (c *Client) UpdateMinParams(ctx context.Context, req fl.UpdateMinParamsRequest) (fl.Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return fl.Response{}, err
	}

	return c.post(ctx, updateMinParamsPath, req)
}

func (c *Client) Infer(ctx context.Context, req fl.InferRequest) (fl.Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return fl.Response{}, err
	}

	return c.post(ctx, inferPath, req)
}

func (c *Client) post(ctx context.Context, path string, body any) (resp fl.Response, err error) {
	defer func(begin time.Time) {
		code := "error"
		var apiErr *fl.APIError
		switch {
		case err == nil:
			code = "ok"
		case errors.As(err, &apiErr):
			code = strconv.Itoa(apiErr.StatusCode)
		}
		requestsTotal.WithLabelValues(path, code).Inc()
		requestDuration.WithLabelValues(path).Observe(time.Since(begin).Seconds())
	}(time.Now())

	data, err := json.Marshal(body)
	if err != nil {
		return fl.Response{}, fmt.Errorf("failed to encode %s request: %w", path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+path, bytes.NewReader(data))
	if err != nil {
		return fl.Response{}, fmt.Errorf("failed to create %s request: %w", path, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set(requestIDKey, uuid.NewString())

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fl.Response{}, fmt.Errorf("%w: %s: %w", pkgerrors.ErrServerRequest, path, err)
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fl.Response{}, fmt.Errorf("%w: %s: %w", pkgerrors.ErrDecodeResponse, path, err)
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return fl.Response{}, fl.ParseAPIError(httpResp.StatusCode, payload)
	}

	return fl.ParseResponse(payload), nil
}
