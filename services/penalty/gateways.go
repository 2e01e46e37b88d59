package penalty

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/fleetwatch/services/penalty PenaltyGW,PenaltyLog

// PenaltyGW publishes penalty events and driver totals to the bus
type PenaltyGW interface {
	PublishPenaltyEvent(ctx context.Context, event models.PenaltyEvent) error
	PublishDriverTotal(ctx context.Context, total models.DriverPenaltyTotal) error
}

// ReplayFunc receives one penalty event read back from the log
type ReplayFunc func(ctx context.Context, event models.PenaltyEvent, seq uint64) error

// PenaltyLog reads back the penalty event log
type PenaltyLog interface {
	// Checkpoint returns the offset up to which every event is known to be folded
	Checkpoint(ctx context.Context) (uint64, error)
	// Replay calls fn for every event from fromSeq up to the end of the log as seen at call time
	Replay(ctx context.Context, fromSeq uint64, fn ReplayFunc) (int, error)
}
