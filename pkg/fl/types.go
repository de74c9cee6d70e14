package fl

import (
	"fmt"
	"strings"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	DefaultServerURL   = "localhost:8080"
	DefaultIndex       = "test-index"
	DefaultTotalRounds = 10
	DefaultMinParams   = 3
)

var validate = validator.New()

// InitRequest deploys an index on the aggregator and registers its nodes.
type InitRequest struct {
	NodeURLs   []string `json:"nodeUrls"              validate:"required,min=1,dive,url"`
	Index      string   `json:"index"                 validate:"required"`
	Module     string   `json:"module,omitempty"`
	ModuleFile string   `json:"module_file,omitempty"`
	DBName     string   `json:"db_name,omitempty"`
}

// TrainingRequest starts a fresh run of TotalRounds rounds.
type TrainingRequest struct {
	TotalRounds int    `json:"totalRounds" validate:"min=1,max=100"`
	MinParams   int    `json:"minParams"   validate:"min=1,max=10"`
	Index       string `json:"index"       validate:"required"`
}

// ContinueTrainingRequest resumes training from the last aggregated round.
type ContinueTrainingRequest struct {
	AdditionalRounds int    `json:"additionalRounds" validate:"min=1,max=100"`
	MinParams        int    `json:"minParams"        validate:"min=1,max=10"`
	Index            string `json:"index"            validate:"required"`
}

// UpdateMinParamsRequest changes how many node updates a round waits for.
type UpdateMinParamsRequest struct {
	UpdatedMinParams int    `json:"updatedMinParams" validate:"min=1,max=10"`
	Index            string `json:"index"            validate:"required"`
}

// InferRequest carries a normalized tensor to the inference endpoint.
type InferRequest struct {
	Input any    `json:"input" validate:"required"`
	Index string `json:"index" validate:"required"`
}

func (r *InitRequest) Normalize() {
	r.NodeURLs = CleanNodeURLs(r.NodeURLs)
	r.Index = strings.TrimSpace(r.Index)
}

func (r InitRequest) Validate() error {
	if len(r.NodeURLs) == 0 {
		return fmt.Errorf("init request: %w", pkgerrors.ErrMissingNodes)
	}

	return validateStruct("init", r)
}

func (r *TrainingRequest) Normalize() {
	r.Index = strings.TrimSpace(r.Index)
}

func (r TrainingRequest) Validate() error {
	return validateStruct("start training", r)
}

func (r *ContinueTrainingRequest) Normalize() {
	r.Index = strings.TrimSpace(r.Index)
}

func (r ContinueTrainingRequest) Validate() error {
	return validateStruct("continue training", r)
}

func (r *UpdateMinParamsRequest) Normalize() {
	r.Index = strings.TrimSpace(r.Index)
}

func (r UpdateMinParamsRequest) Validate() error {
	return validateStruct("update minParams", r)
}

func (r *InferRequest) Normalize() {
	r.Index = strings.TrimSpace(r.Index)
}

func (r InferRequest) Validate() error {
	return validateStruct("infer", r)
}

// CleanNodeURLs trims every URL and drops the blank ones.
func CleanNodeURLs(urls []string) []string {
	return lo.FilterMap(urls, func(u string, _ int) (string, bool) {
		u = strings.TrimSpace(u)
		return u, u != ""
	})
}

func validateStruct(op string, r any) error {
	if err := validate.Struct(r); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields = lo.Map(verrs, func(fe validator.FieldError, _ int) string {
				return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
			})
		}
		if len(fields) == 0 {
			return fmt.Errorf("%s request: %w: %w", op, pkgerrors.ErrInvalidParams, err)
		}

		return fmt.Errorf("%s request: %w: %s", op, pkgerrors.ErrInvalidParams, strings.Join(fields, "; "))
	}

	return nil
}
