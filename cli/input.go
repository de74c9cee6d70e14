package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/absmach/edgefl/normalizer"
	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var errInputFlags = errors.New("exactly one of --json, --file, --grid or --sample is required")

// normalizerSvc is the normalizer used by every command; logging is added
// once the logger is configured.
func normalizerSvc() normalizer.Service {
	return normalizer.LoggingMiddleware(normalizer.NewService(), logger)
}

// normalizeInput normalizes raw, bounded by the configured decode timeout.
func normalizeInput(cmd *cobra.Command, raw normalizer.RawInput) (normalizer.Tensor, error) {
	ctx := cmd.Context()
	if defaults.DecodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaults.DecodeTimeout)
		defer cancel()
	}

	return normalizerSvc().Normalize(ctx, raw)
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("json", "j", "", "28x28 JSON array")
	cmd.Flags().StringP("file", "f", "", "Path to a PNG image, audio clip or JSON file")
	cmd.Flags().StringP("grid", "g", "", "Path to a drawn 28x28 grid (rows of 0/1 or ./#)")
	cmd.Flags().String("mime", "", "MIME type of --file, sniffed from its content when empty")
	cmd.Flags().Bool("sample", false, "Use a random 28x28 sample")
	cmd.Flags().Uint64("seed", 0, "Seed for --sample (0 picks one from the clock)")
}

// readInput builds the raw input selected by the input flags.
func readInput(cmd *cobra.Command) (normalizer.RawInput, error) {
	text, _ := cmd.Flags().GetString("json")
	file, _ := cmd.Flags().GetString("file")
	grid, _ := cmd.Flags().GetString("grid")
	mime, _ := cmd.Flags().GetString("mime")
	sample, _ := cmd.Flags().GetBool("sample")
	seed, _ := cmd.Flags().GetUint64("seed")

	set := 0
	for _, ok := range []bool{text != "", file != "", grid != "", sample} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, errInputFlags
	}

	switch {
	case text != "":
		return normalizer.JSONText{Text: text}, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}

		return normalizer.InputFromFile(data, mime), nil
	case grid != "":
		data, err := os.ReadFile(grid)
		if err != nil {
			return nil, fmt.Errorf("failed to read grid file: %w", err)
		}
		cells, err := parseGrid(data)
		if err != nil {
			return nil, err
		}

		return normalizer.DrawnGrid{Cells: cells}, nil
	default:
		data, err := json.Marshal(normalizer.SampleGrid(newRand(seed)))
		if err != nil {
			return nil, err
		}

		return normalizer.JSONText{Text: string(data)}, nil
	}
}

// parseGrid reads a drawing with one line per row. '1' and '#' mark an ink
// cell, '0' and '.' a blank one. Row and column counts are left to the
// normalizer to check.
func parseGrid(data []byte) (normalizer.Grid, error) {
	var rows []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			rows = append(rows, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	grid := make(normalizer.Grid, len(rows))
	for r, line := range rows {
		grid[r] = make([]uint8, len(line))
		for c, ch := range []byte(line) {
			switch ch {
			case '0', '.':
			case '1', '#':
				grid.Toggle(r, c)
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d column %d", pkgerrors.ErrInvalidData, ch, r, c)
			}
		}
	}

	return grid, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed>>1|1))
}
