package normalizer

import (
	"errors"
	"fmt"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
)

// Kind classifies a normalization failure.
type Kind uint8

const (
	MalformedJSON Kind = iota + 1
	WrongShape
	UnsupportedMIME
	DecodeFailure
)

func (k Kind) String() string {
	switch k {
	case MalformedJSON:
		return "MalformedJSON"
	case WrongShape:
		return "WrongShape"
	case UnsupportedMIME:
		return "UnsupportedMIME"
	case DecodeFailure:
		return "DecodeFailure"
	default:
		return "Unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case MalformedJSON:
		return pkgerrors.ErrMalformedJSON
	case WrongShape:
		return pkgerrors.ErrWrongShape
	case UnsupportedMIME:
		return pkgerrors.ErrUnsupportedMIME
	case DecodeFailure:
		return pkgerrors.ErrDecodeFailure
	default:
		return pkgerrors.ErrInvalidData
	}
}

// Error is the typed failure returned by Normalize. Exactly one Kind is
// set; the remaining fields carry whatever context applies to it.
type Error struct {
	Kind     Kind
	Expected string
	Actual   string
	MIME     string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()

	switch e.Kind {
	case WrongShape:
		msg = fmt.Sprintf("%s: expected %s, got %s", msg, e.Expected, e.Actual)
	case UnsupportedMIME:
		msg = fmt.Sprintf("%s %q: expected %s", msg, e.MIME, e.Expected)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf extracts the Kind from err, or 0 when err is not a normalization error.
func KindOf(err error) Kind {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.Kind
	}

	return 0
}

func wrongShape(expected, actual string) *Error {
	return &Error{Kind: WrongShape, Expected: expected, Actual: actual}
}

func unsupportedMIME(mt, expected string) *Error {
	return &Error{Kind: UnsupportedMIME, MIME: mt, Expected: expected}
}
