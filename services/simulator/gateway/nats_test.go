package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/fleetwatch/internal/pkg/circuitbreaker"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	"github.com/piresc/fleetwatch/internal/pkg/nats/natstest"
	"github.com/piresc/fleetwatch/internal/pkg/retry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() retry.Config {
	cfg := DefaultPublishRetry()
	cfg.BaseDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.Jitter = false
	return cfg
}

func testBreaker(threshold uint32) *circuitbreaker.CircuitBreaker {
	cfg := circuitbreaker.DefaultConfig("heartbeat-test")
	cfg.FailureThreshold = threshold
	cfg.Timeout = time.Hour
	return circuitbreaker.New(cfg, logger.NewNopLogger())
}

func sampleHeartbeat() models.Heartbeat {
	return models.Heartbeat{
		EventID:   "9b2f7c1e-0000-4000-8000-000000000001",
		CarID:     "car-7",
		DriverID:  "driver-3",
		TripID:    "trip-42",
		Location:  models.NewCoordinate(40.7128, -74.006),
		Geohash:   "dr5regw",
		SpeedKmh:  decimal.NewFromInt(88),
		Timestamp: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	}
}

func TestHeartbeatGW_PublishHeartbeat_Success(t *testing.T) {
	pub := NewMockEventPublisher()
	gw := NewHeartbeatGW(pub, fastRetry(), testBreaker(5))

	err := gw.PublishHeartbeat(context.Background(), sampleHeartbeat())
	require.NoError(t, err)

	events := pub.GetPublishedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "fleet.car.position.driver-3", events[0].Subject)
	assert.Equal(t, "9b2f7c1e-0000-4000-8000-000000000001", events[0].MsgID)
	assert.Equal(t, constants.EventPositionUpdated, events[0].EventType)
}

func TestHeartbeatGW_PublishHeartbeat_RetriesTransientErrors(t *testing.T) {
	pub := NewMockEventPublisher()
	pub.SetPublishErrors(errors.New("nats: timeout"), errors.New("nats: timeout"))
	gw := NewHeartbeatGW(pub, fastRetry(), testBreaker(5))

	err := gw.PublishHeartbeat(context.Background(), sampleHeartbeat())

	require.NoError(t, err)
	assert.Equal(t, 3, pub.Calls())
	assert.Len(t, pub.GetPublishedEvents(), 1)
}

func TestHeartbeatGW_PublishHeartbeat_OpenBreakerFailsFast(t *testing.T) {
	pub := NewMockEventPublisher()
	failures := make([]error, 10)
	for i := range failures {
		failures[i] = errors.New("nats: no responders")
	}
	pub.SetPublishErrors(failures...)
	breaker := testBreaker(2)
	gw := NewHeartbeatGW(pub, fastRetry(), breaker)

	err := gw.PublishHeartbeat(context.Background(), sampleHeartbeat())

	require.Error(t, err)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	assert.ErrorIs(t, err, models.ErrBusUnavailable)
	assert.Equal(t, 2, pub.Calls(), "no publish attempts once the breaker opened")
	assert.Equal(t, circuitbreaker.StateOpen, gw.Breaker().State())

	err = gw.PublishHeartbeat(context.Background(), sampleHeartbeat())
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	assert.Equal(t, 2, pub.Calls())
}

func TestHeartbeatGW_PublishHeartbeat_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{"no responders", nats.ErrNoResponders, true},
		{"no stream response", fmt.Errorf("failed to publish message: %w", jetstream.ErrNoStreamResponse), true},
		{"connection closed", nats.ErrConnectionClosed, true},
		{"publish timeout", context.DeadlineExceeded, true},
		{"payload", errors.New("failed to marshal message: unsupported value"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := NewMockEventPublisher()
			pub.SetPublishErrors(tt.err, tt.err)
			cfg := fastRetry()
			cfg.MaxRetries = 1
			gw := NewHeartbeatGW(pub, cfg, testBreaker(5))

			err := gw.PublishHeartbeat(context.Background(), sampleHeartbeat())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.unavailable, errors.Is(err, models.ErrBusUnavailable))
		})
	}
}

func TestHeartbeatGW_JetStreamWithoutStreamIsUnavailable(t *testing.T) {
	_, client := natstest.RunJetStream(t)
	producer, err := natspkg.NewProducer(client)
	require.NoError(t, err)

	cfg := fastRetry()
	cfg.MaxRetries = 1
	gw := NewHeartbeatGW(producer, cfg, testBreaker(5))

	err = gw.PublishHeartbeat(context.Background(), sampleHeartbeat())
	assert.ErrorIs(t, err, models.ErrBusUnavailable)
}

func TestHeartbeatGW_JetStream(t *testing.T) {
	_, client := natstest.RunJetStreamWithStreams(t)
	producer, err := natspkg.NewProducer(client)
	require.NoError(t, err)

	gw := NewHeartbeatGW(producer, fastRetry(), nil)
	hb := sampleHeartbeat()
	ctx := context.Background()

	require.NoError(t, gw.PublishHeartbeat(ctx, hb))
	require.NoError(t, gw.PublishHeartbeat(ctx, hb), "same event id is de-duplicated, not rejected")

	stream, err := client.GetJetStream().Stream(ctx, constants.StreamPosition)
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs)

	raw, err := stream.GetLastMsgForSubject(ctx, "fleet.car.position.driver-3")
	require.NoError(t, err)
	assert.Equal(t, constants.EventPositionUpdated, raw.Header.Get(constants.HeaderEventType))
	assert.Equal(t, hb.EventID, raw.Header.Get(jetstream.MsgIDHeader))

	var got models.Heartbeat
	require.NoError(t, json.Unmarshal(raw.Data, &got))
	assert.Equal(t, hb.TripID, got.TripID)
	assert.True(t, hb.Location.Equal(got.Location))
	assert.True(t, hb.SpeedKmh.Equal(got.SpeedKmh))
}
