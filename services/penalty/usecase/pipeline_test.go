package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/fleetwatch/internal/pkg/config"
	"github.com/piresc/fleetwatch/internal/pkg/geo"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/penalty"
	"github.com/piresc/fleetwatch/services/penalty/mocks"
	"github.com/piresc/fleetwatch/services/penalty/repository"
	"github.com/piresc/fleetwatch/services/penalty/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPipeline(t *testing.T, cache penalty.PositionCache, gw *mocks.MockPenaltyGW) *usecase.PenaltyUC {
	t.Helper()
	classifier, err := usecase.NewClassifier(config.DefaultPenaltyTiers())
	require.NoError(t, err)
	estimator := usecase.NewSpeedEstimator(geo.NewEngine(0.1), cache, 1.0)
	agg := usecase.NewAggregator(repository.NewMemoryTotalsRepo(), gw, &memoryLog{}, fastRetry(), false)
	return usecase.NewPenaltyUC(estimator, classifier, agg, gw, nil)
}

func TestProcessHeartbeat_PublishesPenalty(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPenaltyGW(ctrl)
	uc := newPipeline(t, repository.NewMemoryPositionCache(), gw)

	require.NoError(t, uc.ProcessHeartbeat(ctx, heartbeat("hb-1", 0, 0, t0)))

	var published models.PenaltyEvent
	gw.EXPECT().PublishPenaltyEvent(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev models.PenaltyEvent) error {
			published = ev
			return nil
		})
	require.NoError(t, uc.ProcessHeartbeat(ctx, heartbeat("hb-2", eightyKmLat, 0, t0.Add(time.Hour))))

	// 79.99997 km in an hour is published as 80 and classified as such
	assert.Equal(t, "80", published.SpeedKmh.String())
	assert.Equal(t, "EXCESSIVE_SPEEDING", published.Tier)
	assert.Equal(t, 5, published.PenaltyPoints)
	assert.Equal(t, "driver-1", published.DriverID)
}

func TestProcessHeartbeat_SlowTripPublishesNothing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPenaltyGW(ctrl)
	uc := newPipeline(t, repository.NewMemoryPositionCache(), gw)

	require.NoError(t, uc.ProcessHeartbeat(ctx, heartbeat("hb-1", 0, 0, t0)))
	// ~40 km/h
	require.NoError(t, uc.ProcessHeartbeat(ctx, heartbeat("hb-2", 0.359729, 0, t0.Add(time.Hour))))
}

func TestProcessHeartbeat_FailedPublishIsRecomputed(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPenaltyGW(ctrl)
	cache := repository.NewMemoryPositionCache()
	uc := newPipeline(t, cache, gw)

	require.NoError(t, uc.ProcessHeartbeat(ctx, heartbeat("hb-1", 0, 0, t0)))

	hb := heartbeat("hb-2", eightyKmLat, 0, t0.Add(time.Hour))
	var ids []string
	gomock.InOrder(
		gw.EXPECT().PublishPenaltyEvent(gomock.Any(), gomock.Any()).Return(errors.New("bus down")),
		gw.EXPECT().PublishPenaltyEvent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev models.PenaltyEvent) error {
				ids = append(ids, ev.EventID)
				return nil
			}),
	)

	assert.Error(t, uc.ProcessHeartbeat(ctx, hb))
	cached, err := cache.Get(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "hb-1", cached.EventID, "reference kept until the penalty is published")

	require.NoError(t, uc.ProcessHeartbeat(ctx, hb))
	require.Len(t, ids, 1)
	cached, err = cache.Get(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "hb-2", cached.EventID)
}

func TestGetTotal(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockPenaltyGW(ctrl)
	uc := newPipeline(t, repository.NewMemoryPositionCache(), gw)

	_, err := uc.GetTotal(ctx, "driver-1")
	assert.ErrorIs(t, err, models.ErrTotalNotFound)

	gw.EXPECT().PublishDriverTotal(gomock.Any(), gomock.Any()).Return(nil)
	require.NoError(t, uc.FoldPenalty(ctx, penaltyEvent("a", 2, t0), 1, nil))

	total, err := uc.GetTotal(ctx, "driver-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total.TotalPoints)
}
