package models

import "errors"

var (
	// ErrInvalidCoordinate is returned when latitude or longitude are out of range
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidTrip is returned when a trip, heartbeat or penalty event has missing or malformed identity fields
	ErrInvalidTrip = errors.New("invalid trip")
	// ErrStateNotFound is returned when no simulation state exists for a trip
	ErrStateNotFound = errors.New("simulation state not found")
	// ErrPositionNotFound is returned when no cached position exists for a trip
	ErrPositionNotFound = errors.New("cached position not found")
	// ErrTotalNotFound is returned when a driver has no penalty total yet
	ErrTotalNotFound = errors.New("driver penalty total not found")
	// ErrTripCancelled is the cancellation cause of a trip stopped by request
	ErrTripCancelled = errors.New("trip cancelled")
	// ErrTotalUnusable is returned when a stored driver total can be neither read nor written
	// and retrying cannot change that
	ErrTotalUnusable = errors.New("driver penalty total unusable")
	// ErrBusUnavailable marks publish failures caused by the event bus rather than by the event
	ErrBusUnavailable = errors.New("event bus unavailable")
)
