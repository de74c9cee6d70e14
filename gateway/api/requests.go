package api

import (
	"fmt"
	"strings"

	"github.com/absmach/edgefl/normalizer"
	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/absmach/edgefl/pkg/fl"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// inputReq is the JSON form of a raw input. Kind selects the variant; when
// it is empty the variant is inferred from the uploaded bytes.
type inputReq struct {
	Kind string  `json:"kind" validate:"omitempty,oneof=json image audio grid"`
	Text string  `json:"text,omitempty"`
	Data []byte  `json:"data,omitempty"`
	MIME string  `json:"mime,omitempty"`
	Grid [][]int `json:"grid,omitempty"`
}

func (req inputReq) validate() error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", pkgerrors.ErrInvalidParams, err)
	}

	return nil
}

func (req inputReq) rawInput() (normalizer.RawInput, error) {
	switch req.Kind {
	case normalizer.VariantJSON:
		return normalizer.JSONText{Text: req.Text}, nil
	case normalizer.VariantImage:
		return normalizer.ImageFromFile(req.Data, req.MIME), nil
	case normalizer.VariantAudio:
		return normalizer.AudioFile{Data: req.Data, MIME: req.MIME}, nil
	case normalizer.VariantGrid:
		return drawnGrid(req.Grid)
	case "":
		switch {
		case len(req.Data) > 0:
			return normalizer.InputFromFile(req.Data, req.MIME), nil
		case req.Grid != nil:
			return drawnGrid(req.Grid)
		case strings.TrimSpace(req.Text) != "":
			return normalizer.JSONText{Text: req.Text}, nil
		}
	}

	return nil, fmt.Errorf("%w: no input supplied", pkgerrors.ErrInvalidData)
}

func drawnGrid(cells [][]int) (normalizer.RawInput, error) {
	g, err := toGrid(cells)
	if err != nil {
		return nil, err
	}

	return normalizer.DrawnGrid{Cells: g}, nil
}

// toGrid narrows cells to bytes. Values outside a byte are rejected here;
// the remaining non-binary values are reported by the normalizer.
func toGrid(cells [][]int) (normalizer.Grid, error) {
	grid := make(normalizer.Grid, len(cells))
	for r, row := range cells {
		grid[r] = make([]uint8, len(row))
		for c, v := range row {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: cell [%d][%d] is %d", pkgerrors.ErrInvalidData, r, c, v)
			}
			grid[r][c] = uint8(v)
		}
	}

	return grid, nil
}

type normalizeReq struct {
	inputReq
}

type inferReq struct {
	inputReq
	Index string `json:"index"`
}

func (req inferReq) validate() error {
	if strings.TrimSpace(req.Index) == "" {
		return pkgerrors.ErrMissingIndex
	}

	return req.inputReq.validate()
}

type initReq struct {
	fl.InitRequest
}

func (req *initReq) validate() error {
	req.Normalize()

	return req.Validate()
}

type startTrainingReq struct {
	fl.TrainingRequest
}

func (req *startTrainingReq) validate() error {
	req.Normalize()

	return req.Validate()
}

type continueTrainingReq struct {
	fl.ContinueTrainingRequest
}

func (req *continueTrainingReq) validate() error {
	req.Normalize()

	return req.Validate()
}

type updateMinParamsReq struct {
	fl.UpdateMinParamsRequest
}

func (req *updateMinParamsReq) validate() error {
	req.Normalize()

	return req.Validate()
}

type probeNodesReq struct {
	NodeURLs []string
}

func (req probeNodesReq) validate() error {
	if len(fl.CleanNodeURLs(req.NodeURLs)) == 0 {
		return pkgerrors.ErrMissingNodes
	}

	return nil
}
