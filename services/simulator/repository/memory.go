package repository

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/internal/pkg/shardmap"
	"github.com/piresc/fleetwatch/services/simulator"
)

// MemoryStateRepo keeps simulation states in a sharded in-process map. States do not
// survive a restart.
type MemoryStateRepo struct {
	states *shardmap.Map[models.SimulationState]
}

// NewMemoryStateRepo creates an in-memory state repository
func NewMemoryStateRepo() simulator.StateRepo {
	return &MemoryStateRepo{states: shardmap.New[models.SimulationState]()}
}

func (r *MemoryStateRepo) Save(_ context.Context, state models.SimulationState) error {
	r.states.Set(state.TripID, state)
	return nil
}

func (r *MemoryStateRepo) Get(_ context.Context, tripID string) (*models.SimulationState, error) {
	state, ok := r.states.Get(tripID)
	if !ok {
		return nil, models.ErrStateNotFound
	}
	return &state, nil
}

func (r *MemoryStateRepo) Delete(_ context.Context, tripID string) error {
	r.states.Delete(tripID)
	return nil
}

func (r *MemoryStateRepo) List(_ context.Context) ([]models.SimulationState, error) {
	snapshot := r.states.Snapshot()
	states := make([]models.SimulationState, 0, len(snapshot))
	for _, s := range snapshot {
		states = append(states, s)
	}
	return states, nil
}
