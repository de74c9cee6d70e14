package normalizer

import (
	"fmt"
	"math/rand/v2"
)

// Grid is the 28x28 drawing canvas; every cell is 0 or 1.
type Grid [][]uint8

func EmptyGrid() Grid {
	g := make(Grid, DigitSize)
	for r := range g {
		g[r] = make([]uint8, DigitSize)
	}

	return g
}

// Toggle flips the cell at (row, col) and reports whether it was in range.
func (g Grid) Toggle(row, col int) bool {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return false
	}
	g[row][col] ^= 1

	return true
}

func (g Grid) Clear() {
	for r := range g {
		clear(g[r])
	}
}

func normalizeGrid(g Grid) (Tensor, error) {
	expected := shapeString(DigitShape)
	if len(g) != DigitSize {
		actual := fmt.Sprintf("%d rows", len(g))
		if len(g) > 0 {
			actual = fmt.Sprintf("%dx%d", len(g), len(g[0]))
		}

		return Tensor{}, wrongShape(expected, actual)
	}

	data := make([]float64, 0, DigitSize*DigitSize)
	for r, row := range g {
		if len(row) != DigitSize {
			return Tensor{}, wrongShape(expected, fmt.Sprintf("row %d with %d columns", r, len(row)))
		}
		for c, cell := range row {
			if cell > 1 {
				return Tensor{}, wrongShape("binary "+expected, fmt.Sprintf("value %d at [%d][%d]", cell, r, c))
			}
			data = append(data, float64(cell))
		}
	}

	return Tensor{Shape: []int{DigitSize, DigitSize}, Data: data}, nil
}

// SampleGrid returns a 28x28 array of uniform values in [0,1), handy for
// exercising the inference path without real data.
func SampleGrid(rng *rand.Rand) [][]float64 {
	sample := make([][]float64, DigitSize)
	for r := range sample {
		sample[r] = make([]float64, DigitSize)
		for c := range sample[r] {
			sample[r][c] = rng.Float64()
		}
	}

	return sample
}
