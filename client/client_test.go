package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/absmach/edgefl/pkg/fl"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method      string
	path        string
	contentType string
	requestID   string
	body        map[string]any
}

func newServer(t *testing.T, status int, answer string, got *captured) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		got.method = r.Method
		got.path = r.URL.Path
		got.contentType = r.Header.Get("Content-Type")
		got.requestID = r.Header.Get("X-Request-ID")
		got.body = nil
		if len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &got.body))
		}

		w.WriteHeader(status)
		_, _ = io.WriteString(w, answer)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestServerURL(t *testing.T) {
	cases := []struct {
		desc string
		raw  string
		want string
	}{
		{desc: "empty uses default", raw: "", want: "http://localhost:8080"},
		{desc: "host and port", raw: "edge:8080", want: "http://edge:8080"},
		{desc: "http kept", raw: "http://edge:8080", want: "http://edge:8080"},
		{desc: "https kept", raw: "https://edge.example.com", want: "https://edge.example.com"},
		{desc: "trailing slash dropped", raw: " edge:8080/ ", want: "http://edge:8080"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, ServerURL(tc.raw))
			assert.Equal(t, tc.want, New(tc.raw).BaseURL())
		})
	}
}

func TestInit(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, "Initialized index digits", &got)
	c := New(srv.URL)

	resp, err := c.Init(context.Background(), fl.InitRequest{
		NodeURLs: []string{" http://node1:8000 ", "", "http://node2:8000"},
		Index:    "  digits ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Initialized index digits", resp.Raw)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/init", got.path)
	assert.Equal(t, "application/json", got.contentType)
	_, err = uuid.Parse(got.requestID)
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{
		"nodeUrls": []any{"http://node1:8000", "http://node2:8000"},
		"index":    "digits",
	}, got.body)
}

func TestInitValidation(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()
	c := New(srv.URL)

	_, err := c.Init(context.Background(), fl.InitRequest{NodeURLs: []string{"  "}, Index: "digits"})
	assert.ErrorIs(t, err, pkgerrors.ErrMissingNodes)

	_, err = c.StartTraining(context.Background(), fl.TrainingRequest{TotalRounds: 0, MinParams: 3, Index: "digits"})
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidParams)

	assert.Zero(t, calls.Load())
}

func TestTrainingCalls(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, `{"status":"success","message":"ok"}`, &got)
	c := New(srv.URL)
	ctx := context.Background()

	resp, err := c.StartTraining(ctx, fl.TrainingRequest{TotalRounds: 10, MinParams: 3, Index: "digits"})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "/start-training", got.path)
	assert.Equal(t, map[string]any{"totalRounds": 10.0, "minParams": 3.0, "index": "digits"}, got.body)

	_, err = c.ContinueTraining(ctx, fl.ContinueTrainingRequest{AdditionalRounds: 5, MinParams: 2, Index: "digits"})
	require.NoError(t, err)
	assert.Equal(t, "/continue-training", got.path)
	assert.Equal(t, map[string]any{"additionalRounds": 5.0, "minParams": 2.0, "index": "digits"}, got.body)

	_, err = c.UpdateMinParams(ctx, fl.UpdateMinParamsRequest{UpdatedMinParams: 4, Index: "digits"})
	require.NoError(t, err)
	assert.Equal(t, "/update-minParams", got.path)
	assert.Equal(t, map[string]any{"updatedMinParams": 4.0, "index": "digits"}, got.body)
}

func TestInfer(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, `{"prediction":7}`, &got)
	c := New(srv.URL)

	resp, err := c.Infer(context.Background(), fl.InferRequest{
		Input: [][]float64{{0, 1}, {1, 0}},
		Index: " digits ",
	})
	require.NoError(t, err)

	assert.EqualValues(t, 7, resp.Fields["prediction"])
	assert.Equal(t, "/infer", got.path)
	assert.Equal(t, map[string]any{
		"input": []any{[]any{0.0, 1.0}, []any{1.0, 0.0}},
		"index": "digits",
	}, got.body)
}

func TestAPIErrors(t *testing.T) {
	cases := []struct {
		desc   string
		status int
		answer string
		msg    string
	}{
		{desc: "message", status: http.StatusBadRequest, answer: `{"message":"index not initialized"}`, msg: "index not initialized"},
		{desc: "detail", status: http.StatusUnprocessableEntity, answer: `{"detail":"field required"}`, msg: "field required"},
		{desc: "plain text", status: http.StatusInternalServerError, answer: "boom", msg: "HTTP error! status: 500"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			var got captured
			srv := newServer(t, tc.status, tc.answer, &got)

			_, err := New(srv.URL).StartTraining(context.Background(), fl.TrainingRequest{TotalRounds: 1, MinParams: 1, Index: "digits"})
			var apiErr *fl.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.msg, apiErr.Message)
		})
	}
}

func TestTimeoutLeavesSharedClientUntouched(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	for _, opts := range [][]Option{
		{WithHTTPClient(shared), WithTimeout(2 * time.Second)},
		{WithTimeout(2 * time.Second), WithHTTPClient(shared)},
	} {
		c := New("localhost:8080", opts...)
		assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
		assert.NotSame(t, shared, c.httpClient)
		assert.Equal(t, time.Minute, shared.Timeout)
	}

	c := New("localhost:8080", WithHTTPClient(shared))
	assert.Same(t, shared, c.httpClient)

	c = New("localhost:8080")
	assert.Equal(t, defaultTimeout, c.httpClient.Timeout)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Infer(context.Background(), fl.InferRequest{Input: []float64{1}, Index: "digits"})
	assert.ErrorIs(t, err, pkgerrors.ErrServerRequest)
}

func TestProbeNodes(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer up.Close()

	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	statuses, err := New("").ProbeNodes(context.Background(), []string{up.URL, " ", downURL})
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, up.URL, statuses[0].URL)
	assert.True(t, statuses[0].Reachable)
	assert.Equal(t, http.StatusNoContent, statuses[0].StatusCode)

	assert.Equal(t, downURL, statuses[1].URL)
	assert.False(t, statuses[1].Reachable)
	assert.NotEmpty(t, statuses[1].Error)
}

func TestProbeNodesErrors(t *testing.T) {
	_, err := New("").ProbeNodes(context.Background(), []string{"", " "})
	assert.ErrorIs(t, err, pkgerrors.ErrMissingNodes)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New("").ProbeNodes(ctx, []string{"http://127.0.0.1:1"})
	assert.ErrorIs(t, err, context.Canceled)
}
