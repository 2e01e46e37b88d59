package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/database"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/penalty"
	"github.com/shopspring/decimal"
)

// DefaultPositionTTL drops positions of trips that stopped reporting
const DefaultPositionTTL = 10 * time.Minute

// RedisPositionCache stores the last accepted heartbeat of each trip as a hash with a TTL
type RedisPositionCache struct {
	redisClient *database.RedisClient
	ttl         time.Duration
}

// NewRedisPositionCache creates a Redis position cache. A non-positive ttl uses DefaultPositionTTL.
func NewRedisPositionCache(redisClient *database.RedisClient, ttl time.Duration) penalty.PositionCache {
	if ttl <= 0 {
		ttl = DefaultPositionTTL
	}
	return &RedisPositionCache{redisClient: redisClient, ttl: ttl}
}

func (c *RedisPositionCache) Put(ctx context.Context, hb models.Heartbeat) error {
	key := fmt.Sprintf(constants.KeyTripPosition, hb.TripID)
	fields := map[string]interface{}{
		constants.FieldLatitude:  hb.Location.Latitude.String(),
		constants.FieldLongitude: hb.Location.Longitude.String(),
		constants.FieldTimestamp: hb.Timestamp.UTC().Format(time.RFC3339Nano),
		constants.FieldEventID:   hb.EventID,
		constants.FieldDriverID:  hb.DriverID,
		constants.FieldCarID:     hb.CarID,
		constants.FieldSpeed:     hb.SpeedKmh.String(),
		constants.FieldGeohash:   hb.Geohash,
	}
	if err := c.redisClient.HSetWithTTL(ctx, key, fields, c.ttl); err != nil {
		return fmt.Errorf("failed to store trip position: %w", err)
	}
	return nil
}

func (c *RedisPositionCache) Get(ctx context.Context, tripID string) (*models.Heartbeat, error) {
	key := fmt.Sprintf(constants.KeyTripPosition, tripID)
	fields, err := c.redisClient.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip position: %w", err)
	}
	if len(fields) == 0 {
		return nil, models.ErrPositionNotFound
	}

	lat, err := decimal.NewFromString(fields[constants.FieldLatitude])
	if err != nil {
		return nil, fmt.Errorf("invalid cached latitude for trip %s: %w", tripID, err)
	}
	lng, err := decimal.NewFromString(fields[constants.FieldLongitude])
	if err != nil {
		return nil, fmt.Errorf("invalid cached longitude for trip %s: %w", tripID, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, fields[constants.FieldTimestamp])
	if err != nil {
		return nil, fmt.Errorf("invalid cached timestamp for trip %s: %w", tripID, err)
	}
	speed, _ := decimal.NewFromString(fields[constants.FieldSpeed])

	return &models.Heartbeat{
		EventID:   fields[constants.FieldEventID],
		CarID:     fields[constants.FieldCarID],
		DriverID:  fields[constants.FieldDriverID],
		TripID:    tripID,
		Location:  models.Coordinate{Latitude: lat, Longitude: lng},
		Geohash:   fields[constants.FieldGeohash],
		SpeedKmh:  speed,
		Timestamp: ts,
	}, nil
}
