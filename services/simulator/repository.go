package simulator

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/fleetwatch/services/simulator StateRepo

// StateRepo stores the live SimulationState of every active trip, keyed by trip ID
type StateRepo interface {
	Save(ctx context.Context, state models.SimulationState) error
	// Get returns models.ErrStateNotFound when the trip has no state
	Get(ctx context.Context, tripID string) (*models.SimulationState, error)
	// Delete is a no-op for unknown trips
	Delete(ctx context.Context, tripID string) error
	List(ctx context.Context) ([]models.SimulationState, error)
}
