package fl

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Response is a successful server answer. JSON objects land in Fields,
// anything else (the /init endpoint answers plain text) is kept in Raw.
type Response struct {
	Status  string         `json:"status,omitempty"`
	Message string         `json:"message,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	Raw     string         `json:"raw,omitempty"`
}

// APIError is returned for every non-2xx server answer.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

type NodeStatus struct {
	URL        string `json:"url"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ParseResponse turns a 2xx body into a Response.
func ParseResponse(body []byte) Response {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Response{Raw: strings.TrimSpace(string(body))}
	}

	return Response{
		Status:  stringField(fields, "status"),
		Message: stringField(fields, "message"),
		Fields:  fields,
	}
}

// ParseAPIError builds the error for a failed call. The server's "message"
// wins over "detail"; without either the status code is reported.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP error! status: %d", statusCode),
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return apiErr
	}

	switch {
	case stringField(fields, "message") != "":
		apiErr.Message = stringField(fields, "message")
	case stringField(fields, "detail") != "":
		apiErr.Message = stringField(fields, "detail")
	}

	return apiErr
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}

	return ""
}
