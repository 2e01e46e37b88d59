package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/internal/pkg/retry"
	"github.com/piresc/fleetwatch/services/penalty"
)

// DefaultStoreRetry retries totals store writes until they succeed or the context ends
func DefaultStoreRetry() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = retry.Unlimited
	cfg.BaseDelay = 250 * time.Millisecond
	cfg.MaxDelay = 10 * time.Second
	return cfg
}

// Aggregator folds penalty events into per-driver totals. Folds of one driver must not
// run concurrently; the partitioned consumer guarantees that.
type Aggregator struct {
	repo     penalty.TotalsRepo
	gw       penalty.PenaltyGW
	log      penalty.PenaltyLog
	retryCfg retry.Config
	// durable stores only replay past the log checkpoint
	durable bool
}

// NewAggregator creates an aggregator. With durable false Recover rebuilds from the start of the log.
func NewAggregator(repo penalty.TotalsRepo, gw penalty.PenaltyGW, log penalty.PenaltyLog, retryCfg retry.Config, durable bool) *Aggregator {
	return &Aggregator{
		repo:     repo,
		gw:       gw,
		log:      log,
		retryCfg: retryCfg,
		durable:  durable,
	}
}

// Fold applies event at log offset seq. Events at or below the stored LastEventSeq are
// duplicates and leave the total unchanged. The total is published after the durable write
// when its points changed.
func (a *Aggregator) Fold(ctx context.Context, event models.PenaltyEvent, seq uint64) (*models.DriverPenaltyTotal, bool, error) {
	total, changed, _, err := a.fold(ctx, event, seq, nil, true)
	return total, changed, err
}

func (a *Aggregator) fold(ctx context.Context, event models.PenaltyEvent, seq uint64, progress func(), emit bool) (total *models.DriverPenaltyTotal, changed, applied bool, err error) {
	cfg := a.retryCfg
	retryable := cfg.RetryableFunc
	cfg.RetryableFunc = func(err error) bool {
		if errors.Is(err, models.ErrTotalUnusable) {
			return false
		}
		return retryable == nil || retryable(err)
	}
	if progress != nil {
		cfg.OnRetry = func(int, error) { progress() }
	}
	retrier := retry.New(cfg, nil)

	var (
		next   models.DriverPenaltyTotal
		resend bool
	)
	err = retrier.Execute(ctx, func(ctx context.Context) error {
		current, err := a.Total(ctx, event.DriverID)
		if err != nil {
			return err
		}

		if seq <= current.LastEventSeq {
			next, changed, applied = *current, false, false
			// a redelivery of the last folded event may have missed its emission
			resend = seq == current.LastEventSeq && event.PenaltyPoints != 0
			return nil
		}

		next = *current
		next.TotalPoints += int64(event.PenaltyPoints)
		next.LastUpdated = event.Timestamp
		next.LastEventSeq = seq
		changed, applied = event.PenaltyPoints != 0, true
		resend = false
		return a.repo.Save(ctx, next)
	})
	if err != nil {
		return nil, false, false, fmt.Errorf("failed to fold penalty event %s: %w", event.EventID, err)
	}

	if emit && (changed || resend) {
		if err := a.gw.PublishDriverTotal(ctx, next); err != nil {
			return nil, false, false, err
		}
	}
	return &next, changed, applied, nil
}

// Total returns the driver's total, a zero total when the driver has none yet
func (a *Aggregator) Total(ctx context.Context, driverID string) (*models.DriverPenaltyTotal, error) {
	total, err := a.repo.Get(ctx, driverID)
	if errors.Is(err, models.ErrTotalNotFound) {
		return &models.DriverPenaltyTotal{DriverID: driverID}, nil
	}
	if err != nil {
		return nil, err
	}
	return total, nil
}

// Recover replays the penalty log past the checkpoint. It must finish before the live
// consumer starts folding. Totals are not re-emitted.
func (a *Aggregator) Recover(ctx context.Context) (int, error) {
	var from uint64 = 1
	if a.durable {
		checkpoint, err := a.log.Checkpoint(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to read penalty log checkpoint: %w", err)
		}
		from = checkpoint + 1
	}

	folded := 0
	_, err := a.log.Replay(ctx, from, func(ctx context.Context, event models.PenaltyEvent, seq uint64) error {
		_, _, applied, err := a.fold(ctx, event, seq, nil, false)
		if errors.Is(err, models.ErrTotalUnusable) {
			logger.Error("Skipping penalty event with unusable driver total",
				logger.String("driver_id", event.DriverID),
				logger.Uint64("seq", seq),
				logger.Err(err))
			return nil
		}
		if err != nil {
			return err
		}
		if applied {
			folded++
		}
		return nil
	})
	if err != nil {
		return folded, fmt.Errorf("failed to replay penalty log: %w", err)
	}

	logger.Info("Penalty log replayed",
		logger.Uint64("from_seq", from),
		logger.Int("folded", folded),
		logger.Bool("durable_store", a.durable))
	return folded, nil
}
