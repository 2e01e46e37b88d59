package nats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
)

// ErrPermanent marks a handler error that redelivery cannot fix; such messages are terminated
var ErrPermanent = errors.New("permanent message failure")

// Permanent wraps err so the consumer terminates the message instead of NAKing it
func Permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// JetStreamMessageHandler processes a JetStream message. A nil return ACKs the message,
// an ErrPermanent error TERMs it and any other error NAKs it for redelivery.
type JetStreamMessageHandler func(msg jetstream.Msg) error

// DispatchFunc takes ownership of a message, including its acknowledgment
type DispatchFunc func(msg jetstream.Msg)

// Consumer handles consuming messages from a durable JetStream consumer
type Consumer struct {
	consumer   jetstream.Consumer
	consumeCtx jetstream.ConsumeContext
	ctx        context.Context
	cancelFunc context.CancelFunc
	mu         sync.Mutex
	name       string
}

// NewJetStreamConsumer creates the durable consumer and acknowledges each message from the handler result
func NewJetStreamConsumer(client *Client, config ConsumerConfig, handler JetStreamMessageHandler) (*Consumer, error) {
	return newConsumer(client, config, func(msg jetstream.Msg) {
		Settle(msg, handler(msg))
	})
}

// NewJetStreamDispatchConsumer creates the durable consumer and hands every message to dispatch.
// dispatch is called from a single goroutine, so blocking in it applies backpressure.
func NewJetStreamDispatchConsumer(client *Client, config ConsumerConfig, dispatch DispatchFunc) (*Consumer, error) {
	return newConsumer(client, config, dispatch)
}

func newConsumer(client *Client, config ConsumerConfig, dispatch DispatchFunc) (*Consumer, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}

	if err := client.CreateConsumer(config); err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	consumer, exists := client.consumer(config.StreamName, config.ConsumerName)
	if !exists {
		return nil, fmt.Errorf("consumer %s not found after creation", consumerKey(config.StreamName, config.ConsumerName))
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Consumer{
		consumer:   consumer,
		ctx:        ctx,
		cancelFunc: cancel,
		name:       config.ConsumerName,
	}

	consumeCtx, err := consumer.Consume(func(msg jetstream.Msg) {
		dispatch(msg)
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}
	c.consumeCtx = consumeCtx

	logger.Info("JetStream consumer started",
		logger.String("stream", config.StreamName),
		logger.String("consumer", config.ConsumerName),
		logger.String("subject", config.FilterSubject))
	return c, nil
}

// Settle acknowledges msg according to the handler result
func Settle(msg jetstream.Msg, err error) {
	switch {
	case err == nil:
		if ackErr := msg.Ack(); ackErr != nil {
			logger.Error("Failed to ACK message", logger.String("subject", msg.Subject()), logger.Err(ackErr))
		}
	case errors.Is(err, ErrPermanent):
		logger.Warn("Terminating message",
			logger.String("subject", msg.Subject()),
			logger.Err(err))
		if termErr := msg.Term(); termErr != nil {
			logger.Error("Failed to TERM message", logger.Err(termErr))
		}
	default:
		logger.Error("Error processing JetStream message",
			logger.String("subject", msg.Subject()),
			logger.Err(err))
		if nakErr := msg.Nak(); nakErr != nil {
			logger.Error("Failed to NAK message", logger.Err(nakErr))
		}
	}
}

// GetPendingMessages returns the number of messages not yet delivered
func (c *Consumer) GetPendingMessages() (uint64, error) {
	info, err := c.consumer.Info(c.ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get consumer info: %w", err)
	}
	return info.NumPending, nil
}

// Stop stops delivery. Messages already dispatched are left to their owner.
func (c *Consumer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
		c.consumeCtx = nil
		logger.Info("JetStream consumer stopped", logger.String("consumer", c.name))
	}
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
}

// IsActive returns true if the consumer is actively consuming messages
func (c *Consumer) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consumeCtx != nil
}
