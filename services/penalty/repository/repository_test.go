package repository

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/fleetwatch/internal/pkg/constants"
	"github.com/piresc/fleetwatch/internal/pkg/database"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/internal/pkg/nats/natstest"
	"github.com/piresc/fleetwatch/services/penalty"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func sampleHeartbeat(tripID string) models.Heartbeat {
	return models.Heartbeat{
		EventID:   "hb-" + tripID,
		CarID:     "car-1",
		DriverID:  "driver-1",
		TripID:    tripID,
		Location:  models.NewCoordinate(-6.175392, 106.827153),
		Geohash:   "qqguyur",
		SpeedKmh:  decimal.NewFromInt(72),
		Timestamp: t0.Add(1500 * time.Millisecond),
	}
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestPositionCaches(t *testing.T) {
	caches := map[string]func(t *testing.T) penalty.PositionCache{
		"memory": func(t *testing.T) penalty.PositionCache { return NewMemoryPositionCache() },
		"redis": func(t *testing.T) penalty.PositionCache {
			_, client := setupRedis(t)
			return NewRedisPositionCache(client, time.Minute)
		},
	}

	for name, newCache := range caches {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			cache := newCache(t)

			_, err := cache.Get(ctx, "trip-1")
			assert.ErrorIs(t, err, models.ErrPositionNotFound)

			want := sampleHeartbeat("trip-1")
			require.NoError(t, cache.Put(ctx, want))

			got, err := cache.Get(ctx, "trip-1")
			require.NoError(t, err)
			assert.Equal(t, want.EventID, got.EventID)
			assert.Equal(t, want.DriverID, got.DriverID)
			assert.True(t, want.Location.Equal(got.Location))
			assert.True(t, want.Timestamp.Equal(got.Timestamp))
			assert.True(t, want.SpeedKmh.Equal(got.SpeedKmh))

			next := sampleHeartbeat("trip-1")
			next.EventID = "hb-next"
			require.NoError(t, cache.Put(ctx, next))
			got, err = cache.Get(ctx, "trip-1")
			require.NoError(t, err)
			assert.Equal(t, "hb-next", got.EventID)
		})
	}
}

func TestRedisPositionCache_LayoutAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	cache := NewRedisPositionCache(client, 0)

	require.NoError(t, cache.Put(ctx, sampleHeartbeat("trip-9")))

	key := fmt.Sprintf(constants.KeyTripPosition, "trip-9")
	assert.Equal(t, "-6.175392", mr.HGet(key, constants.FieldLatitude))
	assert.Equal(t, "106.827153", mr.HGet(key, constants.FieldLongitude))
	assert.Equal(t, "qqguyur", mr.HGet(key, constants.FieldGeohash))
	assert.Equal(t, DefaultPositionTTL, mr.TTL(key))

	mr.FastForward(DefaultPositionTTL + time.Second)
	_, err := cache.Get(ctx, "trip-9")
	assert.ErrorIs(t, err, models.ErrPositionNotFound)
}

func TestRedisPositionCache_CorruptEntry(t *testing.T) {
	mr, client := setupRedis(t)
	cache := NewRedisPositionCache(client, time.Minute)

	mr.HSet(fmt.Sprintf(constants.KeyTripPosition, "trip-x"), constants.FieldLatitude, "north")
	_, err := cache.Get(context.Background(), "trip-x")
	assert.ErrorContains(t, err, "invalid cached latitude")
}

func TestTotalsRepos(t *testing.T) {
	repos := map[string]func(t *testing.T) penalty.TotalsRepo{
		"memory": func(t *testing.T) penalty.TotalsRepo { return NewMemoryTotalsRepo() },
		"kv": func(t *testing.T) penalty.TotalsRepo {
			_, client := natstest.RunJetStream(t)
			kv, err := client.KeyValue(context.Background(), constants.BucketDriverPenaltyPoints)
			require.NoError(t, err)
			return NewKVTotalsRepo(kv)
		},
	}

	for name, newRepo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			_, err := repo.Get(ctx, "driver-1")
			assert.ErrorIs(t, err, models.ErrTotalNotFound)

			first := models.DriverPenaltyTotal{DriverID: "driver-1", TotalPoints: 2, LastUpdated: t0, LastEventSeq: 1}
			require.NoError(t, repo.Save(ctx, first))

			second := models.DriverPenaltyTotal{DriverID: "driver-1", TotalPoints: 7, LastUpdated: t0.Add(time.Minute), LastEventSeq: 4}
			require.NoError(t, repo.Save(ctx, second))

			// older offsets never overwrite newer ones
			require.NoError(t, repo.Save(ctx, first))

			got, err := repo.Get(ctx, "driver-1")
			require.NoError(t, err)
			assert.Equal(t, int64(7), got.TotalPoints)
			assert.Equal(t, uint64(4), got.LastEventSeq)
			assert.True(t, second.LastUpdated.Equal(got.LastUpdated))
		})
	}
}

func TestKVTotalsRepo_KeysAndCorruptEntries(t *testing.T) {
	ctx := context.Background()
	_, client := natstest.RunJetStream(t)
	kv, err := client.KeyValue(ctx, constants.BucketDriverPenaltyPoints)
	require.NoError(t, err)
	repo := NewKVTotalsRepo(kv)

	for _, driverID := range []string{"driver@acme", "driver:7", "fleet.d1"} {
		total := models.DriverPenaltyTotal{DriverID: driverID, TotalPoints: 5, LastUpdated: t0, LastEventSeq: 1}
		require.NoError(t, repo.Save(ctx, total), driverID)

		got, err := repo.Get(ctx, driverID)
		require.NoError(t, err, driverID)
		assert.Equal(t, int64(5), got.TotalPoints)
	}

	// keys are the base64url form of the driver ID
	entry, err := kv.Get(ctx, "ZHJpdmVyQGFjbWU")
	require.NoError(t, err)
	assert.Contains(t, string(entry.Value()), `"driver@acme"`)

	_, err = kv.Put(ctx, totalKey("driver-9"), []byte("{not json"))
	require.NoError(t, err)
	_, err = repo.Get(ctx, "driver-9")
	assert.ErrorIs(t, err, models.ErrTotalUnusable)
}

func newSQLMock(t *testing.T) (penalty.TotalsRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresTotalsRepo(sqlx.NewDb(db, "pgx")), mock
}

func TestPostgresTotalsRepo_Get(t *testing.T) {
	repo, mock := newSQLMock(t)
	query := regexp.QuoteMeta("FROM driver_penalty_totals")

	rows := sqlmock.NewRows([]string{"driver_id", "total_points", "last_updated", "last_event_seq"}).
		AddRow("driver-1", int64(9), t0, int64(3))
	mock.ExpectQuery(query).WithArgs("driver-1").WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "driver-1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.TotalPoints)
	assert.Equal(t, uint64(3), got.LastEventSeq)

	mock.ExpectQuery(query).WithArgs("driver-2").
		WillReturnRows(sqlmock.NewRows([]string{"driver_id", "total_points", "last_updated", "last_event_seq"}))
	_, err = repo.Get(context.Background(), "driver-2")
	assert.ErrorIs(t, err, models.ErrTotalNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTotalsRepo_Save(t *testing.T) {
	repo, mock := newSQLMock(t)
	total := models.DriverPenaltyTotal{DriverID: "driver-1", TotalPoints: 7, LastUpdated: t0, LastEventSeq: 2}

	mock.ExpectExec(regexp.QuoteMeta("WHERE driver_penalty_totals.last_event_seq < EXCLUDED.last_event_seq")).
		WithArgs("driver-1", int64(7), t0, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Save(context.Background(), total))

	mock.ExpectExec("INSERT INTO driver_penalty_totals").
		WillReturnError(fmt.Errorf("connection refused"))
	err := repo.Save(context.Background(), total)
	assert.ErrorContains(t, err, "failed to store driver total")

	assert.NoError(t, mock.ExpectationsWereMet())
}
