package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/fleetwatch/internal/pkg/geo"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/penalty"
	"github.com/shopspring/decimal"
)

// DefaultMinDisplacementKm is the noise floor below which two heartbeats are not compared
const DefaultMinDisplacementKm = 1.0

// SpeedEstimator derives speed samples from consecutive heartbeats of a trip
type SpeedEstimator struct {
	engine          *geo.Engine
	cache           penalty.PositionCache
	minDisplacement decimal.Decimal
}

// NewSpeedEstimator creates an estimator. A non-positive minDisplacementKm uses the default.
func NewSpeedEstimator(engine *geo.Engine, cache penalty.PositionCache, minDisplacementKm float64) *SpeedEstimator {
	if minDisplacementKm <= 0 {
		minDisplacementKm = DefaultMinDisplacementKm
	}
	return &SpeedEstimator{
		engine:          engine,
		cache:           cache,
		minDisplacement: decimal.NewFromFloat(minDisplacementKm),
	}
}

// Estimate compares hb with the trip's cached heartbeat and replaces the cache when hb is accepted.
// It returns nil when no sample can be derived.
func (e *SpeedEstimator) Estimate(ctx context.Context, hb models.Heartbeat) (*models.SpeedSample, error) {
	sample, accept, err := e.Observe(ctx, hb)
	if err != nil {
		return nil, err
	}
	if accept {
		if err := e.Accept(ctx, hb); err != nil {
			return nil, err
		}
	}
	return sample, nil
}

// Observe is Estimate without the cache write. accept reports whether hb should become
// the trip's reference heartbeat.
func (e *SpeedEstimator) Observe(ctx context.Context, hb models.Heartbeat) (sample *models.SpeedSample, accept bool, err error) {
	prev, err := e.cache.Get(ctx, hb.TripID)
	if errors.Is(err, models.ErrPositionNotFound) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached position: %w", err)
	}

	elapsed := hb.Timestamp.Sub(prev.Timestamp)
	if elapsed <= 0 {
		return nil, false, nil
	}

	distance := e.engine.DistanceKm(prev.Location, hb.Location)
	if distance.LessThan(e.minDisplacement) {
		return nil, false, nil
	}

	hours := decimal.NewFromInt(elapsed.Nanoseconds()).Div(decimal.NewFromInt(int64(3600 * 1e9)))
	return &models.SpeedSample{
		HeartbeatID:       hb.EventID,
		CarID:             hb.CarID,
		DriverID:          hb.DriverID,
		TripID:            hb.TripID,
		PreviousLocation:  prev.Location,
		CurrentLocation:   hb.Location,
		PreviousTimestamp: prev.Timestamp,
		CurrentTimestamp:  hb.Timestamp,
		DistanceKm:        distance,
		SpeedKmh:          distance.Div(hours),
	}, true, nil
}

// Accept makes hb the trip's reference heartbeat
func (e *SpeedEstimator) Accept(ctx context.Context, hb models.Heartbeat) error {
	if err := e.cache.Put(ctx, hb); err != nil {
		return fmt.Errorf("failed to cache position: %w", err)
	}
	return nil
}
