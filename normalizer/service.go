package normalizer

import (
	"context"
	"fmt"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
)

// Service converts raw user input into the tensor the inference endpoint expects.
type Service interface {
	// Normalize either returns a tensor of a valid shape for raw's variant
	// or fails with a single *Error. The context bounds image decoding.
	Normalize(ctx context.Context, raw RawInput) (Tensor, error)
}

type service struct{}

var _ Service = (*service)(nil)

func NewService() Service {
	return &service{}
}

func (svc *service) Normalize(ctx context.Context, raw RawInput) (Tensor, error) {
	switch in := raw.(type) {
	case JSONText:
		return normalizeJSON(in.Text)
	case ImageFile:
		return normalizeImage(ctx, in)
	case AudioFile:
		return Tensor{}, unsupportedMIME(in.MIME, pngMIME)
	case DrawnGrid:
		return normalizeGrid(in.Cells)
	default:
		return Tensor{}, fmt.Errorf("%w: unknown input %T", pkgerrors.ErrInvalidData, raw)
	}
}

// Normalize runs raw through a fresh Service.
func Normalize(ctx context.Context, raw RawInput) (Tensor, error) {
	return NewService().Normalize(ctx, raw)
}
