package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetwatch/internal/pkg/circuitbreaker"
	"github.com/piresc/fleetwatch/internal/pkg/database"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(svc *HealthService) *echo.Echo {
	e := echo.New()
	RegisterHealthEndpoints(e, "trip-simulator", "1.2.3", svc)
	return e
}

func doGet(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPingHandler(t *testing.T) {
	t.Setenv("VERSION", "2.0.0")
	t.Setenv("GIT_COMMIT", "def456")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	err := NewPingHandler("penalty-points")(e.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "penalty-points", response.ServiceName)
	assert.Equal(t, "2.0.0", response.Version)
	assert.Equal(t, "def456", response.GitCommit)
	assert.Equal(t, runtime.Version(), response.GoVersion)
	assert.False(t, response.ServerTime.IsZero())
}

func TestHealthEndpoints_Healthy(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	svc := NewHealthService(logger.NewNopLogger())
	svc.AddChecker("redis", NewRedisHealthChecker(redisClient))
	svc.SetInfo(func() map[string]interface{} { return map[string]interface{}{"active_trips": 3} })
	e := newTestEcho(svc)

	rec := doGet(e, "/health/detailed")
	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "trip-simulator", response.Service)
	assert.Equal(t, "1.2.3", response.Version)
	assert.Equal(t, "healthy", response.Dependencies["redis"].Status)
	assert.Equal(t, float64(3), response.Details["active_trips"])

	assert.Equal(t, http.StatusOK, doGet(e, "/health").Code)
	assert.Equal(t, http.StatusOK, doGet(e, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, doGet(e, "/health/live").Code)
	assert.Equal(t, http.StatusOK, doGet(e, "/ping").Code)
}

func TestHealthEndpoints_Unhealthy(t *testing.T) {
	svc := NewHealthService(logger.NewNopLogger())
	svc.AddChecker("nats", CheckFunc(func(ctx context.Context) error { return errors.New("NATS not connected") }))
	e := newTestEcho(svc)

	rec := doGet(e, "/health/detailed")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "NATS not connected", response.Dependencies["nats"].Error)

	assert.Equal(t, http.StatusServiceUnavailable, doGet(e, "/health/ready").Code)
	assert.Equal(t, http.StatusOK, doGet(e, "/health/live").Code)
}

func TestRedisHealthChecker_Down(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	mr.Close()

	assert.Error(t, NewRedisHealthChecker(redisClient).CheckHealth(context.Background()))
	assert.NoError(t, NewRedisHealthChecker(nil).CheckHealth(context.Background()))
}

func TestBreakerHealthChecker(t *testing.T) {
	cfg := circuitbreaker.DefaultConfig("heartbeat-publisher")
	cfg.FailureThreshold = 1
	cb := circuitbreaker.New(cfg, logger.NewNopLogger())
	checker := NewBreakerHealthChecker(cb)

	assert.NoError(t, checker.CheckHealth(context.Background()))

	_ = cb.Execute(context.Background(), func(context.Context) error { return errors.New("down") })
	assert.Error(t, checker.CheckHealth(context.Background()))
}
