package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestWithBackgroundTransaction_NilApp(t *testing.T) {
	ctx := context.Background()
	called := false

	err := WithBackgroundTransaction(ctx, nil, "simulator/tick", map[string]interface{}{"trip.id": "t1"}, func(got context.Context) error {
		called = true
		assert.Nil(t, FromContext(got))
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestWithBackgroundTransaction_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := WithBackgroundTransaction(context.Background(), nil, "penalty/fold", nil, func(context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestHelpersAreNilSafe(t *testing.T) {
	assert.Nil(t, StartSegment(nil, "segment"))
	assert.NotPanics(t, func() {
		AddTransactionAttribute(nil, "k", "v")
		NoticeTransactionError(nil, errors.New("x"))
	})

	ran := false
	assert.NoError(t, WithSegment(context.Background(), "segment", func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}

func TestEchoMiddleware_NilAppPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(EchoMiddleware(nil))
	e.GET("/ping", func(c echo.Context) error {
		assert.Nil(t, FromEchoContext(c))
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
