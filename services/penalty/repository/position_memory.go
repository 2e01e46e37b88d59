package repository

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/internal/pkg/shardmap"
	"github.com/piresc/fleetwatch/services/penalty"
)

// MemoryPositionCache keeps the last accepted heartbeat per trip in process memory.
// Entries are never expired; use the Redis cache when trips are long-lived in number.
type MemoryPositionCache struct {
	positions *shardmap.Map[models.Heartbeat]
}

func NewMemoryPositionCache() penalty.PositionCache {
	return &MemoryPositionCache{positions: shardmap.New[models.Heartbeat]()}
}

func (c *MemoryPositionCache) Get(_ context.Context, tripID string) (*models.Heartbeat, error) {
	hb, ok := c.positions.Get(tripID)
	if !ok {
		return nil, models.ErrPositionNotFound
	}
	return &hb, nil
}

func (c *MemoryPositionCache) Put(_ context.Context, hb models.Heartbeat) error {
	c.positions.Set(hb.TripID, hb)
	return nil
}
