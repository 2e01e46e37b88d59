package penalty

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/fleetwatch/services/penalty PositionCache,TotalsRepo

// PositionCache keeps the last accepted heartbeat of every trip
type PositionCache interface {
	// Get returns models.ErrPositionNotFound when the trip has no accepted heartbeat
	Get(ctx context.Context, tripID string) (*models.Heartbeat, error)
	Put(ctx context.Context, hb models.Heartbeat) error
}

// TotalsRepo is the durable store of driver penalty totals
type TotalsRepo interface {
	// Get returns models.ErrTotalNotFound when the driver has no total yet
	Get(ctx context.Context, driverID string) (*models.DriverPenaltyTotal, error)
	// Save stores total unless the stored one already has an equal or newer LastEventSeq
	Save(ctx context.Context, total models.DriverPenaltyTotal) error
}
