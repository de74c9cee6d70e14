package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Event describes one submission made through the gateway.
type Event struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	Index      string    `json:"index,omitempty"`
	Variant    string    `json:"variant,omitempty"`
	Outcome    string    `json:"outcome"`
	StatusCode int       `json:"status_code,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close(ctx context.Context) error
}

// NewEvent stamps an event with a fresh ID and the current time. A nil err
// marks the operation successful.
func NewEvent(operation, index string, err error) Event {
	e := Event{
		ID:        uuid.NewString(),
		Operation: operation,
		Index:     index,
		Outcome:   OutcomeSuccess,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		e.Outcome = OutcomeFailure
		e.Error = err.Error()
	}

	return e
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. It is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

func (noopPublisher) Close(context.Context) error { return nil }
