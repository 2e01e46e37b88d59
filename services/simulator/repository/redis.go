package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/database"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/simulator"
)

// RedisStateRepo stores simulation states as JSON documents so trips survive a restart
type RedisStateRepo struct {
	redisClient *database.RedisClient
}

// NewRedisStateRepo creates a Redis backed state repository
func NewRedisStateRepo(redisClient *database.RedisClient) simulator.StateRepo {
	return &RedisStateRepo{redisClient: redisClient}
}

// Save stores the state without expiration; the owning loop deletes it
func (r *RedisStateRepo) Save(ctx context.Context, state models.SimulationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal simulation state: %w", err)
	}

	key := fmt.Sprintf(constants.KeySimulationState, state.TripID)
	if err := r.redisClient.Set(ctx, key, data, 0); err != nil {
		return fmt.Errorf("failed to store simulation state: %w", err)
	}
	return nil
}

func (r *RedisStateRepo) Get(ctx context.Context, tripID string) (*models.SimulationState, error) {
	key := fmt.Sprintf(constants.KeySimulationState, tripID)
	data, err := r.redisClient.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation state: %w", err)
	}

	var state models.SimulationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal simulation state: %w", err)
	}
	return &state, nil
}

func (r *RedisStateRepo) Delete(ctx context.Context, tripID string) error {
	key := fmt.Sprintf(constants.KeySimulationState, tripID)
	if err := r.redisClient.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete simulation state: %w", err)
	}
	return nil
}

// List returns every stored state. Entries that can no longer be decoded are skipped.
func (r *RedisStateRepo) List(ctx context.Context) ([]models.SimulationState, error) {
	keys, err := r.redisClient.ScanKeys(ctx, constants.KeySimulationPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan simulation states: %w", err)
	}

	states := make([]models.SimulationState, 0, len(keys))
	for _, key := range keys {
		data, err := r.redisClient.Get(ctx, key)
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get simulation state %s: %w", key, err)
		}

		var state models.SimulationState
		if err := json.Unmarshal([]byte(data), &state); err != nil {
			logger.Warn("Skipping undecodable simulation state",
				logger.String("key", key),
				logger.Err(err))
			continue
		}
		states = append(states, state)
	}
	return states, nil
}
