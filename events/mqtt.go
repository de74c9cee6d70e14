package events

import (
	"context"

	"github.com/absmach/edgefl/pkg/mqtt"
)

type mqttPublisher struct {
	pubsub mqtt.PubSub
	topic  string
}

func NewMQTTPublisher(pubsub mqtt.PubSub, topic string) Publisher {
	return &mqttPublisher{
		pubsub: pubsub,
		topic:  topic,
	}
}

func (p *mqttPublisher) Publish(ctx context.Context, event Event) error {
	return p.pubsub.Publish(ctx, p.topic, event)
}

func (p *mqttPublisher) Close(ctx context.Context) error {
	return p.pubsub.Disconnect(ctx)
}
