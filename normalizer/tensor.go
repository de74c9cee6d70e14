package normalizer

import (
	"fmt"

	"github.com/goccy/go-json"
)

const (
	DigitSize = 28
	ImageSize = 224
	ImageLen  = ImageSize * ImageSize
)

var (
	DigitShape = []int{DigitSize, DigitSize}
	ImageShape = []int{ImageLen}
)

// Tensor is a fixed-shape numeric array stored row-major in Data.
type Tensor struct {
	Shape []int
	Data  []float64
}

func (t Tensor) Len() int {
	return len(t.Data)
}

// Rows splits a rank-2 tensor into its rows. The rows alias Data.
func (t Tensor) Rows() [][]float64 {
	if len(t.Shape) != 2 {
		return nil
	}

	cols := t.Shape[1]
	rows := make([][]float64, t.Shape[0])
	for r := range rows {
		rows[r] = t.Data[r*cols : (r+1)*cols]
	}

	return rows
}

// Value returns the tensor in the nested form sent to the backend:
// [][]float64 for matrices and []float64 otherwise.
func (t Tensor) Value() any {
	if len(t.Shape) == 2 {
		return t.Rows()
	}

	return t.Data
}

func (t Tensor) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value())
}

func (t Tensor) String() string {
	return fmt.Sprintf("tensor%v", t.Shape)
}

func shapeString(shape []int) string {
	switch len(shape) {
	case 1:
		return fmt.Sprintf("%d", shape[0])
	case 2:
		return fmt.Sprintf("%dx%d", shape[0], shape[1])
	default:
		return fmt.Sprint(shape)
	}
}
