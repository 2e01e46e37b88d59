package repository

import (
	"context"

	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/internal/pkg/shardmap"
	"github.com/piresc/fleetwatch/services/penalty"
)

// MemoryTotalsRepo keeps driver totals in process memory; Recover rebuilds it from the penalty log
type MemoryTotalsRepo struct {
	totals *shardmap.Map[models.DriverPenaltyTotal]
}

func NewMemoryTotalsRepo() penalty.TotalsRepo {
	return &MemoryTotalsRepo{totals: shardmap.New[models.DriverPenaltyTotal]()}
}

func (r *MemoryTotalsRepo) Get(_ context.Context, driverID string) (*models.DriverPenaltyTotal, error) {
	total, ok := r.totals.Get(driverID)
	if !ok {
		return nil, models.ErrTotalNotFound
	}
	return &total, nil
}

func (r *MemoryTotalsRepo) Save(_ context.Context, total models.DriverPenaltyTotal) error {
	r.totals.Compute(total.DriverID, func(current models.DriverPenaltyTotal, exists bool) (models.DriverPenaltyTotal, bool) {
		if exists && current.LastEventSeq >= total.LastEventSeq {
			return current, true
		}
		return total, true
	})
	return nil
}
