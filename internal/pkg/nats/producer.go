package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
)

// Event is a JSON payload published with its identity and event type
type Event struct {
	Subject   string
	MsgID     string
	EventType string
	Payload   interface{}
}

// Producer publishes JSON events to JetStream
type Producer struct {
	client *Client
}

// NewProducer creates a new JetStream producer on top of client
func NewProducer(client *Client) (*Producer, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	return &Producer{client: client}, nil
}

// Publish marshals the payload and publishes it with Nats-Msg-Id set to the event identity.
// The returned sequence is the stream offset assigned to the message.
func (p *Producer) Publish(ctx context.Context, event Event) (uint64, error) {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal message: %w", err)
	}

	headers := map[string]string{}
	if event.EventType != "" {
		headers[constants.HeaderEventType] = event.EventType
	}

	ack, err := p.client.PublishWithOptions(ctx, PublishOptions{
		Subject: event.Subject,
		Data:    data,
		MsgID:   event.MsgID,
		Headers: headers,
	})
	if err != nil {
		return 0, err
	}

	if ack.Duplicate {
		logger.Debug("Duplicate publish ignored by stream",
			logger.String("subject", event.Subject),
			logger.String("msg_id", event.MsgID))
	}
	return ack.Sequence, nil
}
