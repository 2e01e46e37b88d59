package simulator

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/fleetwatch/services/simulator SimulatorGW

// SimulatorGW publishes simulated positions to the bus
type SimulatorGW interface {
	PublishHeartbeat(ctx context.Context, hb models.Heartbeat) error
}
