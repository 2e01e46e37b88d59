package simulator

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/fleetwatch/services/simulator SimulatorUC

// SimulatorUC defines the interface for trip simulation business logic
type SimulatorUC interface {
	StartTrip(ctx context.Context, trip models.Trip) error
	CancelTrip(ctx context.Context, tripID string) error
	Resume(ctx context.Context) (int, error)
	ActiveTrips() int
	ActiveTripIDs() []string
	Shutdown(ctx context.Context) error
}
