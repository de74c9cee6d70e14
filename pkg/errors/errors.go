package errors

import "errors"

var (
	ErrInvalidData    = errors.New("invalid data type")
	ErrMissingIndex   = errors.New("index is required")
	ErrMissingNodes   = errors.New("at least one node URL is required")
	ErrInvalidParams  = errors.New("invalid parameters")
	ErrEmptyServerURL = errors.New("server URL cannot be empty")
	ErrServerRequest  = errors.New("EDGEFL request failed")
	ErrDecodeResponse = errors.New("failed to decode EDGEFL response")

	ErrMalformedEntity        = errors.New("malformed entity specification")
	ErrUnsupportedContentType = errors.New("unsupported content type")

	ErrMalformedJSON   = errors.New("malformed JSON")
	ErrWrongShape      = errors.New("wrong tensor shape")
	ErrUnsupportedMIME = errors.New("unsupported MIME type")
	ErrDecodeFailure   = errors.New("decode failure")
)
