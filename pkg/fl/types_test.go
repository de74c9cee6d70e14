package fl

import (
	"testing"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanNodeURLs(t *testing.T) {
	got := CleanNodeURLs([]string{" http://a:8000 ", "", "   ", "http://b:8000"})
	assert.Equal(t, []string{"http://a:8000", "http://b:8000"}, got)
	assert.Empty(t, CleanNodeURLs(nil))
}

func TestInitRequestValidate(t *testing.T) {
	cases := []struct {
		desc string
		req  InitRequest
		err  error
	}{
		{
			desc: "valid request",
			req:  InitRequest{NodeURLs: []string{"http://node1:8000"}, Index: "digits"},
		},
		{
			desc: "only blank node urls",
			req:  InitRequest{NodeURLs: []string{" ", ""}, Index: "digits"},
			err:  pkgerrors.ErrMissingNodes,
		},
		{
			desc: "missing index",
			req:  InitRequest{NodeURLs: []string{"http://node1:8000"}, Index: "  "},
			err:  pkgerrors.ErrInvalidParams,
		},
		{
			desc: "malformed node url",
			req:  InitRequest{NodeURLs: []string{"not a url"}, Index: "digits"},
			err:  pkgerrors.ErrInvalidParams,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			req := tc.req
			req.Normalize()
			err := req.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestTrainingRequestValidate(t *testing.T) {
	cases := []struct {
		desc  string
		req   TrainingRequest
		valid bool
	}{
		{desc: "defaults", req: TrainingRequest{TotalRounds: DefaultTotalRounds, MinParams: DefaultMinParams, Index: DefaultIndex}, valid: true},
		{desc: "upper bounds", req: TrainingRequest{TotalRounds: 100, MinParams: 10, Index: "x"}, valid: true},
		{desc: "zero rounds", req: TrainingRequest{TotalRounds: 0, MinParams: 3, Index: "x"}},
		{desc: "too many rounds", req: TrainingRequest{TotalRounds: 101, MinParams: 3, Index: "x"}},
		{desc: "too many min params", req: TrainingRequest{TotalRounds: 5, MinParams: 11, Index: "x"}},
		{desc: "missing index", req: TrainingRequest{TotalRounds: 5, MinParams: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, pkgerrors.ErrInvalidParams)
		})
	}
}

func TestOtherRequestsValidate(t *testing.T) {
	assert.NoError(t, ContinueTrainingRequest{AdditionalRounds: 5, MinParams: 3, Index: "x"}.Validate())
	assert.ErrorIs(t, ContinueTrainingRequest{AdditionalRounds: 0, MinParams: 3, Index: "x"}.Validate(), pkgerrors.ErrInvalidParams)
	assert.NoError(t, UpdateMinParamsRequest{UpdatedMinParams: 2, Index: "x"}.Validate())
	assert.ErrorIs(t, UpdateMinParamsRequest{UpdatedMinParams: 0, Index: "x"}.Validate(), pkgerrors.ErrInvalidParams)
	assert.NoError(t, InferRequest{Input: []float64{1}, Index: "x"}.Validate())
	assert.ErrorIs(t, InferRequest{Index: "x"}.Validate(), pkgerrors.ErrInvalidParams)

	req := InferRequest{Input: []float64{1}, Index: "  x  "}
	req.Normalize()
	assert.Equal(t, "x", req.Index)
}

func TestParseResponse(t *testing.T) {
	resp := ParseResponse([]byte(`{"status":"success","message":"training started","round":1}`))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "training started", resp.Message)
	assert.EqualValues(t, 1, resp.Fields["round"])
	assert.Empty(t, resp.Raw)

	resp = ParseResponse([]byte("Initialized index digits\n"))
	assert.Equal(t, "Initialized index digits", resp.Raw)
	assert.Nil(t, resp.Fields)
}

func TestParseAPIError(t *testing.T) {
	cases := []struct {
		desc string
		body string
		msg  string
	}{
		{desc: "message wins", body: `{"message":"bad index","detail":"ignored"}`, msg: "bad index"},
		{desc: "detail fallback", body: `{"detail":"Not Found"}`, msg: "Not Found"},
		{desc: "empty object", body: `{}`, msg: "HTTP error! status: 500"},
		{desc: "not json", body: `Internal Server Error`, msg: "HTTP error! status: 500"},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			err := ParseAPIError(500, []byte(tc.body))
			require.NotNil(t, err)
			assert.Equal(t, 500, err.StatusCode)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}
