package models

import (
	"fmt"
	"regexp"
	"time"
)

// IDs are used as NATS subject tokens and store keys
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_=-]{1,128}$`)

// ValidateID rejects identifiers that cannot be a single subject token
func ValidateID(field, id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %s %q must be 1 to 128 characters of letters, digits, '_', '=' or '-'",
			ErrInvalidTrip, field, id)
	}
	return nil
}

// Trip is a created journey of a car from a start to a destination coordinate
type Trip struct {
	ID          string     `json:"id"`
	DriverID    string     `json:"driver_id"`
	CarID       string     `json:"car_id"`
	Start       Coordinate `json:"start"`
	Destination Coordinate `json:"destination"`
}

// Validate checks trip identity and coordinates before the trip enters the simulator
func (t Trip) Validate() error {
	if t.CarID == "" {
		return fmt.Errorf("%w: car_id is required", ErrInvalidTrip)
	}
	if err := ValidateID("id", t.ID); err != nil {
		return err
	}
	if err := ValidateID("driver_id", t.DriverID); err != nil {
		return err
	}
	if err := t.Start.Validate(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := t.Destination.Validate(); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	return nil
}

// TripCancellation requests that an active trip simulation stops
type TripCancellation struct {
	TripID      string    `json:"trip_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}
