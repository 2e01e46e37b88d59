package usecase

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	nrpkg "github.com/piresc/fleetwatch/internal/pkg/newrelic"
	"github.com/piresc/fleetwatch/services/penalty"
)

// PenaltyUC runs heartbeats through the estimator and classifier and folds the
// resulting penalty events into driver totals
type PenaltyUC struct {
	estimator  *SpeedEstimator
	classifier *Classifier
	aggregator *Aggregator
	gw         penalty.PenaltyGW
	nrApp      *newrelic.Application
}

// NewPenaltyUC creates the penalty usecase
func NewPenaltyUC(estimator *SpeedEstimator, classifier *Classifier, aggregator *Aggregator, gw penalty.PenaltyGW, nrApp *newrelic.Application) *PenaltyUC {
	return &PenaltyUC{
		estimator:  estimator,
		classifier: classifier,
		aggregator: aggregator,
		gw:         gw,
		nrApp:      nrApp,
	}
}

var _ penalty.PenaltyUC = (*PenaltyUC)(nil)

// ProcessHeartbeat publishes the penalty event before the heartbeat replaces the cached
// position, so a failed publish is recomputed identically on redelivery.
func (uc *PenaltyUC) ProcessHeartbeat(ctx context.Context, hb models.Heartbeat) error {
	return nrpkg.WithBackgroundTransaction(ctx, uc.nrApp, "Penalty.ProcessHeartbeat",
		map[string]interface{}{"trip.id": hb.TripID, "driver.id": hb.DriverID},
		func(ctx context.Context) error {
			sample, accept, err := uc.estimator.Observe(ctx, hb)
			if err != nil {
				return err
			}

			if sample != nil {
				if event, ok := uc.classifier.PenaltyFor(*sample); ok {
					if err := uc.gw.PublishPenaltyEvent(ctx, *event); err != nil {
						return err
					}
					logger.InfoCtx(ctx, "Penalty event published",
						logger.String("driver_id", event.DriverID),
						logger.String("trip_id", event.TripID),
						logger.String("tier", event.Tier),
						logger.Stringer("speed_kmh", event.SpeedKmh),
						logger.Int("points", event.PenaltyPoints))
				}
			}

			if accept {
				return uc.estimator.Accept(ctx, hb)
			}
			return nil
		})
}

// FoldPenalty folds event into its driver's total
func (uc *PenaltyUC) FoldPenalty(ctx context.Context, event models.PenaltyEvent, seq uint64, progress func()) error {
	return nrpkg.WithBackgroundTransaction(ctx, uc.nrApp, "Penalty.FoldPenalty",
		map[string]interface{}{"driver.id": event.DriverID, "penalty.seq": seq},
		func(ctx context.Context) error {
			total, changed, _, err := uc.aggregator.fold(ctx, event, seq, progress, true)
			if err != nil {
				return err
			}
			if changed {
				logger.DebugCtx(ctx, "Driver penalty total updated",
					logger.String("driver_id", total.DriverID),
					logger.Int64("total_points", total.TotalPoints),
					logger.Uint64("seq", seq))
			}
			return nil
		})
}

// Recover replays the penalty log into the totals store
func (uc *PenaltyUC) Recover(ctx context.Context) (int, error) {
	return uc.aggregator.Recover(ctx)
}

func (uc *PenaltyUC) GetTotal(ctx context.Context, driverID string) (*models.DriverPenaltyTotal, error) {
	if driverID == "" {
		return nil, fmt.Errorf("%w: empty driver id", models.ErrTotalNotFound)
	}
	total, err := uc.aggregator.repo.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return total, nil
}
