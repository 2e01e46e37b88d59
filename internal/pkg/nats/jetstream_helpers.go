package nats

import (
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
)

// StreamConfigBuilder helps build stream configurations
type StreamConfigBuilder struct {
	config StreamConfig
}

// NewStreamConfigBuilder creates a new stream configuration builder
func NewStreamConfigBuilder(name string) *StreamConfigBuilder {
	return &StreamConfigBuilder{
		config: StreamConfig{
			Name:       name,
			Retention:  jetstream.LimitsPolicy,
			Storage:    jetstream.FileStorage,
			Replicas:   1,
			MaxAge:     24 * time.Hour,
			MaxBytes:   100 * 1024 * 1024, // 100MB
			MaxMsgs:    1000000,
			Discard:    jetstream.DiscardOld,
			Duplicates: 2 * time.Minute,
		},
	}
}

// WithSubjects sets the subjects for the stream
func (b *StreamConfigBuilder) WithSubjects(subjects ...string) *StreamConfigBuilder {
	b.config.Subjects = subjects
	return b
}

// WithRetention sets the retention policy
func (b *StreamConfigBuilder) WithRetention(retention jetstream.RetentionPolicy) *StreamConfigBuilder {
	b.config.Retention = retention
	return b
}

// WithStorage sets the storage type
func (b *StreamConfigBuilder) WithStorage(storage jetstream.StorageType) *StreamConfigBuilder {
	b.config.Storage = storage
	return b
}

// WithMaxAge sets the maximum age for messages; zero keeps messages forever
func (b *StreamConfigBuilder) WithMaxAge(maxAge time.Duration) *StreamConfigBuilder {
	b.config.MaxAge = maxAge
	return b
}

// WithMaxBytes sets the maximum bytes for the stream
func (b *StreamConfigBuilder) WithMaxBytes(maxBytes int64) *StreamConfigBuilder {
	b.config.MaxBytes = maxBytes
	return b
}

// WithMaxMsgs sets the maximum number of messages
func (b *StreamConfigBuilder) WithMaxMsgs(maxMsgs int64) *StreamConfigBuilder {
	b.config.MaxMsgs = maxMsgs
	return b
}

// WithDuplicates sets the Nats-Msg-Id de-duplication window
func (b *StreamConfigBuilder) WithDuplicates(window time.Duration) *StreamConfigBuilder {
	b.config.Duplicates = window
	return b
}

// Build returns the stream configuration
func (b *StreamConfigBuilder) Build() StreamConfig {
	return b.config
}

// ConsumerConfigBuilder helps build consumer configurations
type ConsumerConfigBuilder struct {
	config ConsumerConfig
}

// NewConsumerConfigBuilder creates a new consumer configuration builder
func NewConsumerConfigBuilder(streamName, consumerName string) *ConsumerConfigBuilder {
	return &ConsumerConfigBuilder{
		config: ConsumerConfig{
			StreamName:    streamName,
			ConsumerName:  consumerName,
			DeliverPolicy: jetstream.DeliverAllPolicy,
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       30 * time.Second,
			MaxDeliver:    3,
			ReplayPolicy:  jetstream.ReplayInstantPolicy,
			MaxAckPending: 1000,
		},
	}
}

// WithSubject sets the filter subject
func (b *ConsumerConfigBuilder) WithSubject(subject string) *ConsumerConfigBuilder {
	b.config.FilterSubject = subject
	return b
}

// WithDeliverPolicy sets the deliver policy
func (b *ConsumerConfigBuilder) WithDeliverPolicy(policy jetstream.DeliverPolicy) *ConsumerConfigBuilder {
	b.config.DeliverPolicy = policy
	return b
}

// WithAckWait sets the acknowledgment wait time
func (b *ConsumerConfigBuilder) WithAckWait(ackWait time.Duration) *ConsumerConfigBuilder {
	b.config.AckWait = ackWait
	return b
}

// WithMaxDeliver sets the maximum delivery attempts; -1 means unlimited
func (b *ConsumerConfigBuilder) WithMaxDeliver(maxDeliver int) *ConsumerConfigBuilder {
	b.config.MaxDeliver = maxDeliver
	return b
}

// WithMaxAckPending sets the maximum pending acknowledgments
func (b *ConsumerConfigBuilder) WithMaxAckPending(maxAckPending int) *ConsumerConfigBuilder {
	b.config.MaxAckPending = maxAckPending
	return b
}

// Build returns the consumer configuration
func (b *ConsumerConfigBuilder) Build() ConsumerConfig {
	return b.config
}

// DefaultStreamConfigs returns the stream configurations for the fleet pipeline
func DefaultStreamConfigs() []StreamConfig {
	return []StreamConfig{
		NewStreamConfigBuilder(constants.StreamTrip).
			WithSubjects(constants.SubjectTripCreatedAll, constants.SubjectTripCancelledAll).
			WithMaxAge(7 * 24 * time.Hour).
			Build(),

		NewStreamConfigBuilder(constants.StreamPosition).
			WithSubjects(constants.SubjectCarPositionAll).
			WithMaxAge(2 * time.Hour).
			WithMaxBytes(500 * 1024 * 1024).
			WithMaxMsgs(5000000).
			Build(),

		// the penalty log is the aggregator's recovery source
		NewStreamConfigBuilder(constants.StreamPenalty).
			WithSubjects(constants.SubjectPenaltyPointsAll).
			WithMaxAge(0).
			WithMaxBytes(-1).
			WithMaxMsgs(-1).
			Build(),

		NewStreamConfigBuilder(constants.StreamDriverPenalty).
			WithSubjects(constants.SubjectDriverPenaltyAll).
			WithMaxAge(7 * 24 * time.Hour).
			Build(),
	}
}

// DefaultConsumerConfigs returns the durable consumers keyed by consumer name
func DefaultConsumerConfigs() map[string]ConsumerConfig {
	return map[string]ConsumerConfig{
		constants.ConsumerSimulatorTripCreated: NewConsumerConfigBuilder(constants.StreamTrip, constants.ConsumerSimulatorTripCreated).
			WithSubject(constants.SubjectTripCreatedAll).
			WithMaxDeliver(5).
			Build(),

		constants.ConsumerSimulatorTripCancelled: NewConsumerConfigBuilder(constants.StreamTrip, constants.ConsumerSimulatorTripCancelled).
			WithSubject(constants.SubjectTripCancelledAll).
			WithMaxDeliver(5).
			Build(),

		constants.ConsumerPenaltyPosition: NewConsumerConfigBuilder(constants.StreamPosition, constants.ConsumerPenaltyPosition).
			WithSubject(constants.SubjectCarPositionAll).
			WithMaxDeliver(5).
			WithMaxAckPending(5000).
			Build(),

		// folds must never be dropped, so redelivery is unlimited
		constants.ConsumerPenaltyAggregator: NewConsumerConfigBuilder(constants.StreamPenalty, constants.ConsumerPenaltyAggregator).
			WithSubject(constants.SubjectPenaltyPointsAll).
			WithMaxDeliver(-1).
			WithMaxAckPending(5000).
			Build(),
	}
}

// GetStreamForSubject returns the stream that captures subject
func GetStreamForSubject(subject string) string {
	switch {
	case strings.HasPrefix(subject, "fleet.trip."):
		return constants.StreamTrip
	case strings.HasPrefix(subject, "fleet.car.position."):
		return constants.StreamPosition
	case strings.HasPrefix(subject, "fleet.penalty.points."):
		return constants.StreamPenalty
	case strings.HasPrefix(subject, "fleet.driver.penalty."):
		return constants.StreamDriverPenalty
	default:
		return ""
	}
}
