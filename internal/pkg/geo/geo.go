// Package geo implements the spherical-earth math used to move simulated cars and to
// measure how far they travelled between two heartbeats.
package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/shopspring/decimal"
)

const (
	// EarthRadiusKm is the mean earth radius used by the haversine formula
	EarthRadiusKm = 6371.0

	// DefaultArrivalThresholdKm is the distance under which a car counts as arrived
	DefaultArrivalThresholdKm = 0.1

	// HeartbeatGeohashPrecision is the geohash length attached to heartbeats (~150m cells)
	HeartbeatGeohashPrecision = 7
)

// Engine computes distances and interpolated positions. The zero value is not usable,
// construct it with NewEngine.
type Engine struct {
	arrivalThreshold decimal.Decimal
}

// NewEngine creates a geo engine with the given arrival threshold in kilometers.
// A non-positive threshold falls back to DefaultArrivalThresholdKm.
func NewEngine(arrivalThresholdKm float64) *Engine {
	if arrivalThresholdKm <= 0 {
		arrivalThresholdKm = DefaultArrivalThresholdKm
	}
	return &Engine{arrivalThreshold: decimal.NewFromFloat(arrivalThresholdKm)}
}

// ArrivalThreshold returns the distance under which two points count as the same stop
func (e *Engine) ArrivalThreshold() decimal.Decimal {
	return e.arrivalThreshold
}

// DistanceKm returns the great-circle distance between a and b using the haversine formula
func (e *Engine) DistanceKm(a, b models.Coordinate) decimal.Decimal {
	return decimal.NewFromFloat(haversineKm(a, b))
}

// Arrived reports whether from is within the arrival threshold of to
func (e *Engine) Arrived(from, to models.Coordinate) bool {
	return e.DistanceKm(from, to).LessThan(e.arrivalThreshold)
}

// Interpolate moves from towards to by moveKm along the straight lat/lng segment.
// It returns to unchanged when the remaining distance is below the arrival threshold
// or when moveKm covers the whole remaining distance. Linear interpolation of
// coordinates is only accurate for short legs.
func (e *Engine) Interpolate(from, to models.Coordinate, moveKm decimal.Decimal) models.Coordinate {
	total := e.DistanceKm(from, to)
	if total.LessThan(e.arrivalThreshold) {
		return to
	}
	if moveKm.GreaterThanOrEqual(total) {
		return to
	}
	if !moveKm.IsPositive() {
		return from
	}

	fraction := moveKm.Div(total)
	return models.Coordinate{
		Latitude:  lerp(from.Latitude, to.Latitude, fraction),
		Longitude: lerp(from.Longitude, to.Longitude, fraction),
	}
}

// Geohash encodes the coordinate into a geohash cell of the given precision
func Geohash(c models.Coordinate, precision uint) string {
	lat, _ := c.Latitude.Float64()
	lng, _ := c.Longitude.Float64()
	return geohash.EncodeWithPrecision(lat, lng, precision)
}

func lerp(a, b, fraction decimal.Decimal) decimal.Decimal {
	return a.Add(b.Sub(a).Mul(fraction)).Round(models.CoordinateScale)
}

func haversineKm(a, b models.Coordinate) float64 {
	lat1 := toRadians(a.Latitude)
	lon1 := toRadians(a.Longitude)
	lat2 := toRadians(b.Latitude)
	lon2 := toRadians(b.Longitude)

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h marginally above 1 for antipodal points
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func toRadians(deg decimal.Decimal) float64 {
	f, _ := deg.Float64()
	return f * math.Pi / 180.0
}
