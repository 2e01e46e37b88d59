package usecase

import (
	"math/rand/v2"
	"time"

	"github.com/piresc/fleetwatch/internal/pkg/geo"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/shopspring/decimal"
)

const (
	DefaultMinSpeedKmh = 40
	DefaultMaxSpeedKmh = 120
)

// Mover advances one trip's car by elapsed time at a random cruising speed
type Mover struct {
	geo      *geo.Engine
	minSpeed int
	maxSpeed int
}

// NewMover creates a mover drawing speeds uniformly from [minKmh, maxKmh].
// An empty or inverted band falls back to the defaults.
func NewMover(engine *geo.Engine, minKmh, maxKmh int) *Mover {
	if minKmh <= 0 || maxKmh < minKmh {
		minKmh, maxKmh = DefaultMinSpeedKmh, DefaultMaxSpeedKmh
	}
	return &Mover{geo: engine, minSpeed: minKmh, maxSpeed: maxKmh}
}

// InitialPosition places the car at the trip start with a fresh cruising speed
func (m *Mover) InitialPosition(trip models.Trip, now time.Time, rng *rand.Rand) models.SimulationState {
	return models.SimulationState{
		TripID:          trip.ID,
		DriverID:        trip.DriverID,
		CarID:           trip.CarID,
		CurrentLocation: trip.Start,
		Destination:     trip.Destination,
		SpeedKmh:        m.randomSpeed(rng),
		LastTick:        now,
	}
}

// Advance moves the car for the time elapsed since the last tick. It returns nil once the
// car is within the arrival threshold of its destination. A clock that did not move forward
// produces no movement.
func (m *Mover) Advance(state models.SimulationState, now time.Time, rng *rand.Rand) *models.SimulationState {
	elapsed := now.Sub(state.LastTick)
	if elapsed < 0 {
		elapsed = 0
	}

	moveKm := state.SpeedKmh.Mul(decimal.NewFromFloat(elapsed.Hours()))
	location := m.geo.Interpolate(state.CurrentLocation, state.Destination, moveKm)
	if m.geo.Arrived(location, state.Destination) {
		return nil
	}

	next := state
	next.CurrentLocation = location
	next.SpeedKmh = m.randomSpeed(rng)
	next.LastTick = now
	return &next
}

func (m *Mover) randomSpeed(rng *rand.Rand) decimal.Decimal {
	return decimal.NewFromInt(int64(m.minSpeed + rng.IntN(m.maxSpeed-m.minSpeed+1)))
}
