package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
	nrpkg "github.com/piresc/fleetwatch/internal/pkg/newrelic"
	"github.com/piresc/fleetwatch/services/simulator"
)

// SimulatorHandler consumes trip notifications from TRIP_STREAM
type SimulatorHandler struct {
	simulatorUC simulator.SimulatorUC
	natsClient  *natspkg.Client
	nrApp       *newrelic.Application
	consumers   []*natspkg.Consumer
}

// NewSimulatorHandler creates a new simulator NATS handler
func NewSimulatorHandler(simulatorUC simulator.SimulatorUC, client *natspkg.Client, nrApp *newrelic.Application) *SimulatorHandler {
	return &SimulatorHandler{
		simulatorUC: simulatorUC,
		natsClient:  client,
		nrApp:       nrApp,
	}
}

// InitNATSConsumers starts the trip created and trip cancelled consumers
func (h *SimulatorHandler) InitNATSConsumers() error {
	logger.Info("Initializing JetStream consumers for simulator service")

	consumerConfigs := natspkg.DefaultConsumerConfigs()
	handlers := []struct {
		name    string
		handler natspkg.JetStreamMessageHandler
	}{
		{constants.ConsumerSimulatorTripCreated, h.HandleTripCreated},
		{constants.ConsumerSimulatorTripCancelled, h.HandleTripCancelled},
	}

	for _, c := range handlers {
		consumer, err := natspkg.NewJetStreamConsumer(h.natsClient, consumerConfigs[c.name], c.handler)
		if err != nil {
			h.Stop()
			return fmt.Errorf("failed to start consumer %s: %w", c.name, err)
		}
		h.consumers = append(h.consumers, consumer)
	}

	logger.Info("Successfully initialized JetStream consumers for simulator service")
	return nil
}

// Stop stops message delivery to every consumer
func (h *SimulatorHandler) Stop() {
	for _, c := range h.consumers {
		c.Stop()
	}
	h.consumers = nil
}

// HandleTripCreated starts the simulation of a created trip. Undecodable or invalid
// trips are terminated since redelivery cannot fix them.
func (h *SimulatorHandler) HandleTripCreated(msg jetstream.Msg) error {
	return nrpkg.WithBackgroundTransaction(context.Background(), h.nrApp, "NATS.Simulator.HandleTripCreated",
		map[string]interface{}{"message.subject": msg.Subject()},
		func(ctx context.Context) error {
			var trip models.Trip
			if err := json.Unmarshal(msg.Data(), &trip); err != nil {
				return natspkg.Permanent(fmt.Errorf("failed to unmarshal trip: %w", err))
			}

			err := trip.Validate()
			if err == nil {
				err = h.simulatorUC.StartTrip(ctx, trip)
			}
			if errors.Is(err, models.ErrInvalidTrip) || errors.Is(err, models.ErrInvalidCoordinate) {
				logger.WarnCtx(ctx, "Rejecting invalid trip",
					logger.String("trip_id", trip.ID),
					logger.Err(err))
				return natspkg.Permanent(err)
			}
			return err
		})
}

// HandleTripCancelled stops a trip's simulation. The trip ID is taken from the payload,
// falling back to the last subject token.
func (h *SimulatorHandler) HandleTripCancelled(msg jetstream.Msg) error {
	return nrpkg.WithBackgroundTransaction(context.Background(), h.nrApp, "NATS.Simulator.HandleTripCancelled",
		map[string]interface{}{"message.subject": msg.Subject()},
		func(ctx context.Context) error {
			var cancellation models.TripCancellation
			if len(msg.Data()) > 0 {
				if err := json.Unmarshal(msg.Data(), &cancellation); err != nil {
					return natspkg.Permanent(fmt.Errorf("failed to unmarshal trip cancellation: %w", err))
				}
			}
			if cancellation.TripID == "" {
				cancellation.TripID = subjectKey(msg.Subject())
			}
			if err := models.ValidateID("trip_id", cancellation.TripID); err != nil {
				return natspkg.Permanent(fmt.Errorf("trip cancellation: %w", err))
			}

			logger.InfoCtx(ctx, "Received trip cancellation", logger.String("trip_id", cancellation.TripID))
			return h.simulatorUC.CancelTrip(ctx, cancellation.TripID)
		})
}

func subjectKey(subject string) string {
	i := strings.LastIndexByte(subject, '.')
	if i < 0 || i == len(subject)-1 {
		return ""
	}
	return subject[i+1:]
}
