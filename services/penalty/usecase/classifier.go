package usecase

import (
	"github.com/google/uuid"
	"github.com/piresc/fleetwatch/internal/pkg/config"
	"github.com/piresc/fleetwatch/internal/pkg/models"
)

// penaltyEventSpace derives penalty event IDs from heartbeat IDs, so a redelivered
// heartbeat yields the same event and JetStream drops the duplicate.
var penaltyEventSpace = uuid.MustParse("7b0e2c1a-4f6d-4a8e-9c3b-5d2f1e0a9b84")

// Classifier maps speeds to penalty tiers
type Classifier struct {
	tiers []models.PenaltyTier
}

// NewClassifier validates tiers and returns a classifier over them
func NewClassifier(tiers []models.PenaltyTier) (*Classifier, error) {
	if err := config.ValidatePenaltyTiers(tiers); err != nil {
		return nil, err
	}
	return &Classifier{tiers: append([]models.PenaltyTier(nil), tiers...)}, nil
}

// Classify returns the first tier containing speedKmh
func (c *Classifier) Classify(speedKmh float64) (models.PenaltyTier, bool) {
	for _, t := range c.tiers {
		if t.Contains(speedKmh) {
			return t, true
		}
	}
	return models.PenaltyTier{}, false
}

// PenaltyFor builds the penalty event of a sample. Points are the tier's PointsPerKm,
// awarded once per sample regardless of its distance. The tier is chosen on the speed
// as published, rounded to two decimals.
func (c *Classifier) PenaltyFor(sample models.SpeedSample) (*models.PenaltyEvent, bool) {
	speed := sample.SpeedKmh.Round(2)
	tier, ok := c.Classify(speed.InexactFloat64())
	if !ok {
		return nil, false
	}
	return &models.PenaltyEvent{
		EventID:       uuid.NewSHA1(penaltyEventSpace, []byte(sample.HeartbeatID)).String(),
		DriverID:      sample.DriverID,
		TripID:        sample.TripID,
		CarID:         sample.CarID,
		Tier:          tier.Name,
		SpeedKmh:      speed,
		PenaltyPoints: tier.PointsPerKm,
		Timestamp:     sample.CurrentTimestamp,
	}, true
}
