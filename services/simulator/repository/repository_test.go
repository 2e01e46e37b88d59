package repository

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/database"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/simulator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(tripID string) models.SimulationState {
	return models.SimulationState{
		TripID:          tripID,
		DriverID:        "driver-1",
		CarID:           "car-1",
		CurrentLocation: models.NewCoordinate(40.7128, -74.006),
		Destination:     models.NewCoordinate(40.7306, -73.9352),
		SpeedKmh:        decimal.NewFromInt(72),
		LastTick:        time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func setupRedisRepo(t *testing.T) (*miniredis.Miniredis, simulator.StateRepo) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisStateRepo(client)
}

func TestStateRepos(t *testing.T) {
	repos := map[string]func(t *testing.T) simulator.StateRepo{
		"memory": func(t *testing.T) simulator.StateRepo { return NewMemoryStateRepo() },
		"redis": func(t *testing.T) simulator.StateRepo {
			_, repo := setupRedisRepo(t)
			return repo
		},
	}

	for name, newRepo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			_, err := repo.Get(ctx, "trip-1")
			assert.ErrorIs(t, err, models.ErrStateNotFound)

			want := sampleState("trip-1")
			require.NoError(t, repo.Save(ctx, want))
			require.NoError(t, repo.Save(ctx, sampleState("trip-2")))

			got, err := repo.Get(ctx, "trip-1")
			require.NoError(t, err)
			assert.Equal(t, want.TripID, got.TripID)
			assert.True(t, want.CurrentLocation.Equal(got.CurrentLocation))
			assert.True(t, want.Destination.Equal(got.Destination))
			assert.True(t, want.SpeedKmh.Equal(got.SpeedKmh))
			assert.True(t, want.LastTick.Equal(got.LastTick))

			states, err := repo.List(ctx)
			require.NoError(t, err)
			ids := make([]string, 0, len(states))
			for _, s := range states {
				ids = append(ids, s.TripID)
			}
			sort.Strings(ids)
			assert.Equal(t, []string{"trip-1", "trip-2"}, ids)

			require.NoError(t, repo.Delete(ctx, "trip-1"))
			require.NoError(t, repo.Delete(ctx, "trip-1"), "deleting twice is fine")
			_, err = repo.Get(ctx, "trip-1")
			assert.ErrorIs(t, err, models.ErrStateNotFound)
		})
	}
}

func TestRedisStateRepo_KeyLayoutAndCorruptEntries(t *testing.T) {
	ctx := context.Background()
	mr, repo := setupRedisRepo(t)

	require.NoError(t, repo.Save(ctx, sampleState("trip-9")))
	assert.True(t, mr.Exists(fmt.Sprintf(constants.KeySimulationState, "trip-9")))

	require.NoError(t, mr.Set(fmt.Sprintf(constants.KeySimulationState, "broken"), "{not json"))

	states, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "trip-9", states[0].TripID)

	_, err = repo.Get(ctx, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrStateNotFound)
}

func TestRedisStateRepo_Unavailable(t *testing.T) {
	mr, repo := setupRedisRepo(t)
	mr.Close()

	err := repo.Save(context.Background(), sampleState("trip-1"))
	assert.Error(t, err)
	_, err = repo.Get(context.Background(), "trip-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrStateNotFound)
}
