package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/penalty"
)

// replayFetchWait bounds the wait for one message while reading back the log
const replayFetchWait = 5 * time.Second

// PenaltyLogReader reads PENALTY_STREAM back with an ordered consumer
type PenaltyLogReader struct {
	js       jetstream.JetStream
	consumer string
}

// NewPenaltyLogReader creates a reader whose checkpoint is the ack floor of the given durable consumer
func NewPenaltyLogReader(js jetstream.JetStream, durableConsumer string) *PenaltyLogReader {
	return &PenaltyLogReader{js: js, consumer: durableConsumer}
}

var _ penalty.PenaltyLog = (*PenaltyLogReader)(nil)

// Checkpoint returns the durable consumer's ack floor. Events are acked only after their
// fold is durable, so everything at or below it is in the store.
func (r *PenaltyLogReader) Checkpoint(ctx context.Context) (uint64, error) {
	cons, err := r.js.Consumer(ctx, constants.StreamPenalty, r.consumer)
	if errors.Is(err, jetstream.ErrConsumerNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get consumer %s: %w", r.consumer, err)
	}
	info, err := cons.Info(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get consumer info %s: %w", r.consumer, err)
	}
	return info.AckFloor.Stream, nil
}

// Replay delivers events from fromSeq up to the last sequence present when the call started.
// Undecodable events are skipped.
func (r *PenaltyLogReader) Replay(ctx context.Context, fromSeq uint64, fn penalty.ReplayFunc) (int, error) {
	if fromSeq == 0 {
		fromSeq = 1
	}

	stream, err := r.js.Stream(ctx, constants.StreamPenalty)
	if err != nil {
		return 0, fmt.Errorf("failed to get stream %s: %w", constants.StreamPenalty, err)
	}
	info, err := stream.Info(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get stream info %s: %w", constants.StreamPenalty, err)
	}
	last := info.State.LastSeq
	if info.State.Msgs == 0 || last < fromSeq {
		return 0, nil
	}

	cons, err := stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{constants.SubjectPenaltyPointsAll},
		DeliverPolicy:  jetstream.DeliverByStartSequencePolicy,
		OptStartSeq:    fromSeq,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create replay consumer: %w", err)
	}

	delivered := 0
	for {
		if err := ctx.Err(); err != nil {
			return delivered, err
		}

		msg, err := cons.Next(jetstream.FetchMaxWait(replayFetchWait))
		if err != nil {
			return delivered, fmt.Errorf("failed to read penalty log: %w", err)
		}
		meta, err := msg.Metadata()
		if err != nil {
			return delivered, fmt.Errorf("failed to read message metadata: %w", err)
		}
		seq := meta.Sequence.Stream

		var event models.PenaltyEvent
		if err := json.Unmarshal(msg.Data(), &event); err != nil {
			logger.Warn("Skipping undecodable penalty event",
				logger.Uint64("seq", seq),
				logger.Err(err))
		} else {
			if err := fn(ctx, event, seq); err != nil {
				return delivered, err
			}
			delivered++
		}

		if seq >= last {
			return delivered, nil
		}
	}
}
