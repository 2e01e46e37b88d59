package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	"github.com/piresc/fleetwatch/internal/pkg/partition"
	"github.com/piresc/fleetwatch/services/penalty"
)

// partitionQueueDepth is the number of messages buffered per partition
const partitionQueueDepth = 64

// PenaltyHandler consumes heartbeats and penalty events. Messages are processed on
// partitions keyed by driver ID, so each driver's messages are handled in order.
type PenaltyHandler struct {
	penaltyUC  penalty.PenaltyUC
	natsClient *natspkg.Client
	dispatcher *partition.Dispatcher
	consumers  []*natspkg.Consumer
}

// NewPenaltyHandler creates a new penalty NATS handler with the given number of partitions
func NewPenaltyHandler(penaltyUC penalty.PenaltyUC, client *natspkg.Client, partitions int) *PenaltyHandler {
	return &PenaltyHandler{
		penaltyUC:  penaltyUC,
		natsClient: client,
		dispatcher: partition.New(partitions, partitionQueueDepth),
	}
}

// InitNATSConsumers starts the heartbeat and penalty log consumers
func (h *PenaltyHandler) InitNATSConsumers() error {
	logger.Info("Initializing JetStream consumers for penalty service",
		logger.Int("partitions", h.dispatcher.Partitions()))

	consumerConfigs := natspkg.DefaultConsumerConfigs()
	dispatchers := []struct {
		name     string
		dispatch natspkg.DispatchFunc
	}{
		{constants.ConsumerPenaltyPosition, h.DispatchHeartbeat},
		{constants.ConsumerPenaltyAggregator, h.DispatchPenaltyEvent},
	}

	for _, c := range dispatchers {
		consumer, err := natspkg.NewJetStreamDispatchConsumer(h.natsClient, consumerConfigs[c.name], c.dispatch)
		if err != nil {
			h.stopConsumers()
			return fmt.Errorf("failed to start consumer %s: %w", c.name, err)
		}
		h.consumers = append(h.consumers, consumer)
	}

	logger.Info("Successfully initialized JetStream consumers for penalty service")
	return nil
}

// Stop stops delivery and waits for the partitions to drain. Unfinished messages are NAKed.
func (h *PenaltyHandler) Stop() {
	h.stopConsumers()
	h.dispatcher.Close()
}

func (h *PenaltyHandler) stopConsumers() {
	for _, c := range h.consumers {
		c.Stop()
	}
	h.consumers = nil
}

// DispatchHeartbeat decodes a heartbeat and queues it on its driver's partition
func (h *PenaltyHandler) DispatchHeartbeat(msg jetstream.Msg) {
	var hb models.Heartbeat
	if err := json.Unmarshal(msg.Data(), &hb); err != nil {
		natspkg.Settle(msg, natspkg.Permanent(fmt.Errorf("failed to unmarshal heartbeat: %w", err)))
		return
	}
	if err := validateHeartbeat(hb); err != nil {
		natspkg.Settle(msg, natspkg.Permanent(err))
		return
	}

	h.submit(msg, hb.DriverID, func(ctx context.Context) {
		natspkg.Settle(msg, h.penaltyUC.ProcessHeartbeat(ctx, hb))
	})
}

// DispatchPenaltyEvent decodes a penalty event and queues its fold on the driver's partition.
// The stream sequence of the message is the event's log offset.
func (h *PenaltyHandler) DispatchPenaltyEvent(msg jetstream.Msg) {
	var event models.PenaltyEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		natspkg.Settle(msg, natspkg.Permanent(fmt.Errorf("failed to unmarshal penalty event: %w", err)))
		return
	}
	if err := models.ValidateID("driver_id", event.DriverID); err != nil {
		natspkg.Settle(msg, natspkg.Permanent(fmt.Errorf("penalty event %s: %w", event.EventID, err)))
		return
	}
	meta, err := msg.Metadata()
	if err != nil {
		natspkg.Settle(msg, err)
		return
	}
	seq := meta.Sequence.Stream

	h.submit(msg, event.DriverID, func(ctx context.Context) {
		progress := func() {
			if err := msg.InProgress(); err != nil {
				logger.Warn("Failed to extend penalty event lease",
					logger.Uint64("seq", seq),
					logger.Err(err))
			}
		}
		err := h.penaltyUC.FoldPenalty(ctx, event, seq, progress)
		if errors.Is(err, models.ErrTotalUnusable) {
			err = natspkg.Permanent(err)
		}
		natspkg.Settle(msg, err)
	})
}

func (h *PenaltyHandler) submit(msg jetstream.Msg, driverID string, task partition.Task) {
	if err := h.dispatcher.Submit(context.Background(), driverID, task); err != nil {
		natspkg.Settle(msg, fmt.Errorf("failed to dispatch message: %w", err))
	}
}

func validateHeartbeat(hb models.Heartbeat) error {
	if err := models.ValidateID("trip_id", hb.TripID); err != nil {
		return fmt.Errorf("heartbeat %s: %w", hb.EventID, err)
	}
	if err := models.ValidateID("driver_id", hb.DriverID); err != nil {
		return fmt.Errorf("heartbeat %s: %w", hb.EventID, err)
	}
	return hb.Location.Validate()
}
