package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/penalty"
)

// PostgresTotalsRepo stores driver totals in the driver_penalty_totals table
type PostgresTotalsRepo struct {
	db *sqlx.DB
}

func NewPostgresTotalsRepo(db *sqlx.DB) penalty.TotalsRepo {
	return &PostgresTotalsRepo{db: db}
}

func (r *PostgresTotalsRepo) Get(ctx context.Context, driverID string) (*models.DriverPenaltyTotal, error) {
	query := `
		SELECT driver_id, total_points, last_updated, last_event_seq
		FROM driver_penalty_totals
		WHERE driver_id = $1
	`

	var total models.DriverPenaltyTotal
	err := r.db.GetContext(ctx, &total, query, driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTotalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get driver total: %w", err)
	}
	return &total, nil
}

// Save upserts total; rows already at an equal or newer sequence are left untouched
func (r *PostgresTotalsRepo) Save(ctx context.Context, total models.DriverPenaltyTotal) error {
	query := `
		INSERT INTO driver_penalty_totals (driver_id, total_points, last_updated, last_event_seq)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (driver_id) DO UPDATE SET
			total_points = EXCLUDED.total_points,
			last_updated = EXCLUDED.last_updated,
			last_event_seq = EXCLUDED.last_event_seq
		WHERE driver_penalty_totals.last_event_seq < EXCLUDED.last_event_seq
	`

	_, err := r.db.ExecContext(ctx, query,
		total.DriverID,
		total.TotalPoints,
		total.LastUpdated,
		int64(total.LastEventSeq),
	)
	if err != nil {
		return fmt.Errorf("failed to store driver total: %w", err)
	}
	return nil
}
