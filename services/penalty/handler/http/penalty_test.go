package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetwatch/internal/pkg/models"
	"github.com/piresc/fleetwatch/services/penalty/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEcho(t *testing.T) (*echo.Echo, *mocks.MockPenaltyUC) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockPenaltyUC(ctrl)
	h := NewPenaltyHandler(uc)

	e := echo.New()
	e.GET("/v1/drivers/:driverID/penalty-points", h.GetDriverPoints)
	return e, uc
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetDriverPoints(t *testing.T) {
	e, uc := setupEcho(t)
	updated := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	uc.EXPECT().GetTotal(gomock.Any(), "driver-1").Return(&models.DriverPenaltyTotal{
		DriverID:     "driver-1",
		TotalPoints:  9,
		LastUpdated:  updated,
		LastEventSeq: 3,
	}, nil)

	rec := get(e, "/v1/drivers/driver-1/penalty-points")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data models.DriverPenaltyTotal `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.Data.TotalPoints)
	assert.Equal(t, uint64(3), resp.Data.LastEventSeq)
	assert.True(t, updated.Equal(resp.Data.LastUpdated))
}

func TestGetDriverPoints_UnknownDriver(t *testing.T) {
	e, uc := setupEcho(t)

	uc.EXPECT().GetTotal(gomock.Any(), "ghost").Return(nil, models.ErrTotalNotFound)

	rec := get(e, "/v1/drivers/ghost/penalty-points")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDriverPoints_StoreError(t *testing.T) {
	e, uc := setupEcho(t)

	uc.EXPECT().GetTotal(gomock.Any(), "driver-1").Return(nil, errors.New("kv unavailable"))

	rec := get(e, "/v1/drivers/driver-1/penalty-points")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
