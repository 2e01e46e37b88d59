package nats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
)

// DefaultPublishTimeout bounds a JetStream publish when the caller's context has no deadline
const DefaultPublishTimeout = 5 * time.Second

// StreamConfig describes a JetStream stream
type StreamConfig struct {
	Name       string
	Subjects   []string
	Retention  jetstream.RetentionPolicy
	Storage    jetstream.StorageType
	Replicas   int
	MaxAge     time.Duration
	MaxBytes   int64
	MaxMsgs    int64
	Discard    jetstream.DiscardPolicy
	Duplicates time.Duration
}

// ConsumerConfig describes a durable JetStream consumer
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	FilterSubject string
	DeliverPolicy jetstream.DeliverPolicy
	AckPolicy     jetstream.AckPolicy
	AckWait       time.Duration
	MaxDeliver    int
	ReplayPolicy  jetstream.ReplayPolicy
	RateLimitBps  uint64
	MaxAckPending int
}

// PublishOptions carries a single JetStream publish
type PublishOptions struct {
	Subject string
	Data    []byte
	MsgID   string
	Headers map[string]string
	Timeout time.Duration
}

// Client represents a NATS client with JetStream enabled
type Client struct {
	conn      *nats.Conn
	js        jetstream.JetStream
	mu        sync.RWMutex
	consumers map[string]jetstream.Consumer
}

// NewClient connects to NATS and opens a JetStream context
func NewClient(url string, opts ...nats.Option) (*Client, error) {
	opts = append([]nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", logger.Err(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
	}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Client{
		conn:      conn,
		js:        js,
		consumers: make(map[string]jetstream.Consumer),
	}, nil
}

// GetConn returns the underlying NATS connection
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// GetJetStream returns the JetStream context
func (c *Client) GetJetStream() jetstream.JetStream {
	return c.js
}

// IsConnected reports whether the connection is currently up
func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Publish sends a message to the specified subject through JetStream
func (c *Client) Publish(subject string, data []byte) error {
	_, err := c.PublishWithOptions(context.Background(), PublishOptions{Subject: subject, Data: data})
	return err
}

// PublishWithOptions publishes with an optional de-duplication id and headers
func (c *Client) PublishWithOptions(ctx context.Context, opts PublishOptions) (*jetstream.PubAck, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg := nats.NewMsg(opts.Subject)
	msg.Data = opts.Data
	for k, v := range opts.Headers {
		msg.Header.Set(k, v)
	}

	var pubOpts []jetstream.PublishOpt
	if opts.MsgID != "" {
		pubOpts = append(pubOpts, jetstream.WithMsgID(opts.MsgID))
	}

	ack, err := c.js.PublishMsg(ctx, msg, pubOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to publish message to %s: %w", opts.Subject, err)
	}
	return ack, nil
}

// CreateOrUpdateStream creates the stream or updates its configuration
func (c *Client) CreateOrUpdateStream(config StreamConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultPublishTimeout)
	defer cancel()

	_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       config.Name,
		Subjects:   config.Subjects,
		Retention:  config.Retention,
		Storage:    config.Storage,
		Replicas:   config.Replicas,
		MaxAge:     config.MaxAge,
		MaxBytes:   config.MaxBytes,
		MaxMsgs:    config.MaxMsgs,
		Discard:    config.Discard,
		Duplicates: config.Duplicates,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", config.Name, err)
	}

	logger.Info("JetStream stream ready",
		logger.String("stream", config.Name),
		logger.Strings("subjects", config.Subjects))
	return nil
}

// EnsureStreams creates every given stream
func (c *Client) EnsureStreams(configs []StreamConfig) error {
	for _, cfg := range configs {
		if err := c.CreateOrUpdateStream(cfg); err != nil {
			return err
		}
	}
	return nil
}

// GetStreamInfo returns information about a stream
func (c *Client) GetStreamInfo(name string) (*jetstream.StreamInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultPublishTimeout)
	defer cancel()

	stream, err := c.js.Stream(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream %s: %w", name, err)
	}
	info, err := stream.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream info %s: %w", name, err)
	}
	return info, nil
}

// CreateConsumer creates or updates a durable consumer and caches it
func (c *Client) CreateConsumer(config ConsumerConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultPublishTimeout)
	defer cancel()

	consumer, err := c.js.CreateOrUpdateConsumer(ctx, config.StreamName, jetstream.ConsumerConfig{
		Durable:       config.ConsumerName,
		FilterSubject: config.FilterSubject,
		DeliverPolicy: config.DeliverPolicy,
		AckPolicy:     config.AckPolicy,
		AckWait:       config.AckWait,
		MaxDeliver:    config.MaxDeliver,
		ReplayPolicy:  config.ReplayPolicy,
		RateLimit:     config.RateLimitBps,
		MaxAckPending: config.MaxAckPending,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s on %s: %w", config.ConsumerName, config.StreamName, err)
	}

	c.mu.Lock()
	c.consumers[consumerKey(config.StreamName, config.ConsumerName)] = consumer
	c.mu.Unlock()
	return nil
}

func (c *Client) consumer(stream, name string) (jetstream.Consumer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	consumer, ok := c.consumers[consumerKey(stream, name)]
	return consumer, ok
}

func consumerKey(stream, name string) string {
	return fmt.Sprintf("%s:%s", stream, name)
}

// KeyValue opens the bucket, creating it if it does not exist
func (c *Client) KeyValue(ctx context.Context, bucket string) (jetstream.KeyValue, error) {
	kv, err := c.js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  bucket,
		History: 1,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open key-value bucket %s: %w", bucket, err)
	}
	return kv, nil
}

// Close drains and closes the NATS connection
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
