package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CoordinateScale is the number of decimal places kept for derived coordinates
const CoordinateScale = 10

var (
	minLatitude  = decimal.NewFromInt(-90)
	maxLatitude  = decimal.NewFromInt(90)
	minLongitude = decimal.NewFromInt(-180)
	maxLongitude = decimal.NewFromInt(180)
)

// Coordinate is an immutable latitude/longitude pair with decimal precision
type Coordinate struct {
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
}

// NewCoordinate builds a coordinate from float degrees
func NewCoordinate(lat, lng float64) Coordinate {
	return Coordinate{
		Latitude:  decimal.NewFromFloat(lat),
		Longitude: decimal.NewFromFloat(lng),
	}
}

// Validate checks that latitude and longitude are within range
func (c Coordinate) Validate() error {
	if c.Latitude.LessThan(minLatitude) || c.Latitude.GreaterThan(maxLatitude) {
		return fmt.Errorf("%w: latitude %s must be between -90 and 90", ErrInvalidCoordinate, c.Latitude)
	}
	if c.Longitude.LessThan(minLongitude) || c.Longitude.GreaterThan(maxLongitude) {
		return fmt.Errorf("%w: longitude %s must be between -180 and 180", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// Equal reports whether both coordinates denote the same point
func (c Coordinate) Equal(o Coordinate) bool {
	return c.Latitude.Equal(o.Latitude) && c.Longitude.Equal(o.Longitude)
}

// String formats the coordinate as (lat, lng) with six decimals
func (c Coordinate) String() string {
	return fmt.Sprintf("(%s, %s)", c.Latitude.StringFixed(6), c.Longitude.StringFixed(6))
}

// MarshalJSON writes latitude and longitude as JSON numbers rather than strings
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Latitude  json.RawMessage `json:"latitude"`
		Longitude json.RawMessage `json:"longitude"`
	}{
		Latitude:  json.RawMessage(c.Latitude.String()),
		Longitude: json.RawMessage(c.Longitude.String()),
	})
}
