package events

import (
	"context"
	"errors"
	"testing"

	"github.com/absmach/edgefl/pkg/mqtt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	topic string
	msg   any
}

type fakePubSub struct {
	sent         []sent
	err          error
	disconnected bool
}

func (f *fakePubSub) Publish(_ context.Context, topic string, msg any) error {
	f.sent = append(f.sent, sent{topic: topic, msg: msg})

	return f.err
}

func (f *fakePubSub) Subscribe(context.Context, string, mqtt.Handler) error { return nil }

func (f *fakePubSub) Unsubscribe(context.Context, string) error { return nil }

func (f *fakePubSub) Disconnect(context.Context) error {
	f.disconnected = true

	return nil
}

func TestNewEvent(t *testing.T) {
	ok := NewEvent("infer", "digits", nil)
	_, err := uuid.Parse(ok.ID)
	require.NoError(t, err)
	assert.Equal(t, "infer", ok.Operation)
	assert.Equal(t, "digits", ok.Index)
	assert.Equal(t, OutcomeSuccess, ok.Outcome)
	assert.Empty(t, ok.Error)
	assert.False(t, ok.Timestamp.IsZero())

	failed := NewEvent("init", "digits", errors.New("index not initialized"))
	assert.Equal(t, OutcomeFailure, failed.Outcome)
	assert.Equal(t, "index not initialized", failed.Error)
	assert.NotEqual(t, ok.ID, failed.ID)
}

func TestMQTTPublisher(t *testing.T) {
	ps := &fakePubSub{}
	pub := NewMQTTPublisher(ps, "edgefl/events")

	event := NewEvent("start-training", "digits", nil)
	require.NoError(t, pub.Publish(context.Background(), event))
	require.Len(t, ps.sent, 1)
	assert.Equal(t, "edgefl/events", ps.sent[0].topic)
	assert.Equal(t, event, ps.sent[0].msg)

	ps.err = errors.New("broker down")
	assert.ErrorIs(t, pub.Publish(context.Background(), event), ps.err)

	require.NoError(t, pub.Close(context.Background()))
	assert.True(t, ps.disconnected)
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher()
	assert.NoError(t, pub.Publish(context.Background(), NewEvent("infer", "", nil)))
	assert.NoError(t, pub.Close(context.Background()))
}
