package normalizer

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var (
	errEmptyJSON   = errors.New("empty input")
	errInvalidJSON = errors.New("invalid JSON text")
)

func normalizeJSON(text string) (Tensor, error) {
	if strings.TrimSpace(text) == "" {
		return Tensor{}, &Error{Kind: MalformedJSON, Err: errEmptyJSON}
	}

	// goccy accepts numbers such as 01 and 1. that RFC 8259 forbids.
	if !stdjson.Valid([]byte(text)) {
		return Tensor{}, &Error{Kind: MalformedJSON, Err: errInvalidJSON}
	}

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return Tensor{}, &Error{Kind: MalformedJSON, Err: err}
	}

	rows, ok := parsed.([]any)
	if !ok {
		return Tensor{}, wrongShape(shapeString(DigitShape), describe(parsed))
	}
	if len(rows) != DigitSize {
		return Tensor{}, wrongShape(shapeString(DigitShape), outerShape(rows))
	}

	data := make([]float64, 0, DigitSize*DigitSize)
	for r, row := range rows {
		cols, ok := row.([]any)
		if !ok {
			return Tensor{}, wrongShape(shapeString(DigitShape), fmt.Sprintf("row %d is %s", r, describe(row)))
		}
		if len(cols) != DigitSize {
			return Tensor{}, wrongShape(shapeString(DigitShape), fmt.Sprintf("row %d with %d columns", r, len(cols)))
		}
		for c, v := range cols {
			f, ok := v.(float64)
			if !ok {
				return Tensor{}, wrongShape(shapeString(DigitShape), fmt.Sprintf("%s at [%d][%d]", describe(v), r, c))
			}
			data = append(data, f)
		}
	}

	return Tensor{Shape: []int{DigitSize, DigitSize}, Data: data}, nil
}

// outerShape describes a mis-sized array by its row count and, when the
// first row is an array, its width.
func outerShape(rows []any) string {
	if len(rows) > 0 {
		if first, ok := rows[0].([]any); ok {
			return fmt.Sprintf("%dx%d", len(rows), len(first))
		}
	}

	return fmt.Sprintf("%d rows", len(rows))
}

func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case []any:
		return fmt.Sprintf("an array of %d", len(v))
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
