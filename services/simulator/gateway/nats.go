package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/fleetwatch/internal/pkg/circuitbreaker"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	nrpkg "github.com/piresc/fleetwatch/internal/pkg/newrelic"
	"github.com/piresc/fleetwatch/internal/pkg/retry"
	"github.com/piresc/fleetwatch/services/simulator"
)

// EventPublisher publishes an event to JetStream and returns its stream sequence
type EventPublisher interface {
	Publish(ctx context.Context, event natspkg.Event) (uint64, error)
}

// DefaultPublishRetry is the retry policy used for heartbeats
func DefaultPublishRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.BaseDelay = 200 * time.Millisecond
	cfg.MaxDelay = 2 * time.Second
	cfg.RetryableFunc = func(err error) bool {
		// an open breaker fails fast; retrying would only pile up ticks
		return !errors.Is(err, circuitbreaker.ErrCircuitBreakerOpen) &&
			!errors.Is(err, circuitbreaker.ErrTooManyRequests)
	}
	return cfg
}

// HeartbeatGW publishes heartbeats to POSITION_STREAM behind a retrier and a circuit breaker
type HeartbeatGW struct {
	publisher EventPublisher
	retrier   *retry.Retrier
	breaker   *circuitbreaker.CircuitBreaker
}

// NewHeartbeatGW creates the heartbeat gateway. A nil breaker gets the default one.
func NewHeartbeatGW(publisher EventPublisher, retryCfg retry.Config, breaker *circuitbreaker.CircuitBreaker) *HeartbeatGW {
	if breaker == nil {
		breaker = circuitbreaker.New(circuitbreaker.DefaultConfig("heartbeat-publisher"), nil)
	}
	return &HeartbeatGW{
		publisher: publisher,
		retrier:   retry.New(retryCfg, nil),
		breaker:   breaker,
	}
}

var _ simulator.SimulatorGW = (*HeartbeatGW)(nil)

// Breaker exposes the publisher's circuit breaker for health reporting
func (g *HeartbeatGW) Breaker() *circuitbreaker.CircuitBreaker {
	return g.breaker
}

// PublishHeartbeat publishes hb on the driver's position subject, de-duplicated by event ID
func (g *HeartbeatGW) PublishHeartbeat(ctx context.Context, hb models.Heartbeat) error {
	event := natspkg.Event{
		Subject:   fmt.Sprintf(constants.SubjectCarPosition, hb.DriverID),
		MsgID:     hb.EventID,
		EventType: constants.EventPositionUpdated,
		Payload:   hb,
	}

	var seq uint64
	err := nrpkg.WithSegment(ctx, "HeartbeatGW.PublishHeartbeat", func() error {
		return g.retrier.Execute(ctx, func(ctx context.Context) error {
			return g.breaker.Execute(ctx, func(ctx context.Context) error {
				var err error
				seq, err = g.publisher.Publish(ctx, event)
				return err
			})
		})
	})
	if err != nil {
		if busUnavailable(err) {
			return fmt.Errorf("%w: heartbeat %s: %w", models.ErrBusUnavailable, hb.EventID, err)
		}
		return fmt.Errorf("failed to publish heartbeat %s: %w", hb.EventID, err)
	}

	logger.DebugCtx(ctx, "Heartbeat published",
		logger.String("trip_id", hb.TripID),
		logger.String("event_id", hb.EventID),
		logger.Uint64("seq", seq))
	return nil
}

var busErrors = []error{
	circuitbreaker.ErrCircuitBreakerOpen,
	circuitbreaker.ErrTooManyRequests,
	nats.ErrConnectionClosed,
	nats.ErrConnectionDraining,
	nats.ErrConnectionReconnecting,
	nats.ErrNoServers,
	nats.ErrNoResponders,
	nats.ErrTimeout,
	jetstream.ErrNoStreamResponse,
	context.DeadlineExceeded,
}

// busUnavailable reports failures shared by every trip publishing through this gateway
func busUnavailable(err error) bool {
	for _, target := range busErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
