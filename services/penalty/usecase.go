package penalty

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/fleetwatch/services/penalty PenaltyUC

// PenaltyUC defines the interface for the speed to penalty points pipeline
type PenaltyUC interface {
	// ProcessHeartbeat derives a speed sample from hb and publishes a penalty event when it qualifies
	ProcessHeartbeat(ctx context.Context, hb models.Heartbeat) error
	// FoldPenalty folds the event found at seq in the penalty log into the driver's total.
	// progress, when set, is called before every retry.
	FoldPenalty(ctx context.Context, event models.PenaltyEvent, seq uint64, progress func()) error
	// Recover replays the penalty log into the totals store and returns the number of folded events
	Recover(ctx context.Context) (int, error)
	GetTotal(ctx context.Context, driverID string) (*models.DriverPenaltyTotal, error)
}
