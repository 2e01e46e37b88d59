package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PenaltyTier maps a speed range to penalty points. The range is [LowerKmh, UpperKmh);
// a nil UpperKmh means the tier is unbounded above.
type PenaltyTier struct {
	Name        string   `json:"name" mapstructure:"name"`
	LowerKmh    float64  `json:"lower_kmh" mapstructure:"lower_kmh"`
	UpperKmh    *float64 `json:"upper_kmh,omitempty" mapstructure:"upper_kmh"`
	PointsPerKm int      `json:"points_per_km" mapstructure:"points_per_km"`
}

// Contains reports whether speed falls inside the tier
func (t PenaltyTier) Contains(speedKmh float64) bool {
	if speedKmh < t.LowerKmh {
		return false
	}
	return t.UpperKmh == nil || speedKmh < *t.UpperKmh
}

// PenaltyEvent is emitted once per speed sample that matches a tier
type PenaltyEvent struct {
	EventID       string          `json:"event_id"`
	DriverID      string          `json:"driver_id"`
	TripID        string          `json:"trip_id"`
	CarID         string          `json:"car_id"`
	Tier          string          `json:"tier"`
	SpeedKmh      decimal.Decimal `json:"speed_kmh"`
	PenaltyPoints int             `json:"penalty_points"`
	Timestamp     time.Time       `json:"timestamp"`
}

// DriverPenaltyTotal is the running penalty total of one driver
type DriverPenaltyTotal struct {
	DriverID     string    `json:"driver_id" db:"driver_id"`
	TotalPoints  int64     `json:"total_points" db:"total_points"`
	LastUpdated  time.Time `json:"last_updated" db:"last_updated"`
	LastEventSeq uint64    `json:"last_event_seq" db:"last_event_seq"`
}
