package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SimulationState is the live movement state of one simulated trip
type SimulationState struct {
	TripID          string          `json:"trip_id"`
	DriverID        string          `json:"driver_id"`
	CarID           string          `json:"car_id"`
	CurrentLocation Coordinate      `json:"current_location"`
	Destination     Coordinate      `json:"destination"`
	SpeedKmh        decimal.Decimal `json:"speed_kmh"`
	LastTick        time.Time       `json:"last_tick"`
}

// Heartbeat is a periodic simulated position report for one trip
type Heartbeat struct {
	EventID   string          `json:"event_id"`
	CarID     string          `json:"car_id"`
	DriverID  string          `json:"driver_id"`
	TripID    string          `json:"trip_id"`
	Location  Coordinate      `json:"location"`
	Geohash   string          `json:"geohash,omitempty"`
	SpeedKmh  decimal.Decimal `json:"speed_kmh"`
	Timestamp time.Time       `json:"timestamp"`
}

// SpeedSample is the speed derived from two accepted heartbeats of the same trip
type SpeedSample struct {
	HeartbeatID       string          `json:"heartbeat_id"`
	CarID             string          `json:"car_id"`
	DriverID          string          `json:"driver_id"`
	TripID            string          `json:"trip_id"`
	PreviousLocation  Coordinate      `json:"previous_location"`
	CurrentLocation   Coordinate      `json:"current_location"`
	PreviousTimestamp time.Time       `json:"previous_timestamp"`
	CurrentTimestamp  time.Time       `json:"current_timestamp"`
	DistanceKm        decimal.Decimal `json:"distance_km"`
	SpeedKmh          decimal.Decimal `json:"speed_kmh"`
}
