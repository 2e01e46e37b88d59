package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	nrpkg "github.com/piresc/fleetwatch/internal/pkg/newrelic"
	"github.com/piresc/fleetwatch/internal/pkg/retry"
	"github.com/piresc/fleetwatch/services/penalty"
)

// EventPublisher publishes an event to JetStream and returns its stream sequence
type EventPublisher interface {
	Publish(ctx context.Context, event natspkg.Event) (uint64, error)
}

// DefaultPublishRetry is the retry policy for penalty and total publishes
func DefaultPublishRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.BaseDelay = 200 * time.Millisecond
	cfg.MaxDelay = 5 * time.Second
	return cfg
}

// PenaltyGW publishes penalty events to PENALTY_STREAM and totals to DRIVER_PENALTY_STREAM
type PenaltyGW struct {
	publisher EventPublisher
	retrier   *retry.Retrier
}

func NewPenaltyGW(publisher EventPublisher, retryCfg retry.Config) *PenaltyGW {
	return &PenaltyGW{
		publisher: publisher,
		retrier:   retry.New(retryCfg, nil),
	}
}

var _ penalty.PenaltyGW = (*PenaltyGW)(nil)

// PublishPenaltyEvent appends event to the penalty log, de-duplicated by event ID
func (g *PenaltyGW) PublishPenaltyEvent(ctx context.Context, event models.PenaltyEvent) error {
	seq, err := g.publish(ctx, "PenaltyGW.PublishPenaltyEvent", natspkg.Event{
		Subject:   fmt.Sprintf(constants.SubjectPenaltyPoints, event.DriverID),
		MsgID:     event.EventID,
		EventType: constants.EventPenaltyPoints,
		Payload:   event,
	})
	if err != nil {
		return fmt.Errorf("failed to publish penalty event %s: %w", event.EventID, err)
	}

	logger.DebugCtx(ctx, "Penalty event appended",
		logger.String("event_id", event.EventID),
		logger.Uint64("seq", seq))
	return nil
}

// PublishDriverTotal publishes the full total. The message ID is driver and log offset,
// so re-emitting the same fold is dropped by the stream.
func (g *PenaltyGW) PublishDriverTotal(ctx context.Context, total models.DriverPenaltyTotal) error {
	_, err := g.publish(ctx, "PenaltyGW.PublishDriverTotal", natspkg.Event{
		Subject:   fmt.Sprintf(constants.SubjectDriverPenalty, total.DriverID),
		MsgID:     fmt.Sprintf("%s:%d", total.DriverID, total.LastEventSeq),
		EventType: constants.EventDriverPenaltyTotal,
		Payload:   total,
	})
	if err != nil {
		return fmt.Errorf("failed to publish total of driver %s: %w", total.DriverID, err)
	}
	return nil
}

func (g *PenaltyGW) publish(ctx context.Context, segment string, event natspkg.Event) (uint64, error) {
	var seq uint64
	err := nrpkg.WithSegment(ctx, segment, func() error {
		return g.retrier.Execute(ctx, func(ctx context.Context) error {
			var err error
			seq, err = g.publisher.Publish(ctx, event)
			return err
		})
	})
	return seq, err
}
