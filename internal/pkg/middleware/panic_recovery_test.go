package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*logger.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
		panicType  string
	}{
		{name: "string panic", panicValue: "boom", panicType: "string"},
		{name: "error panic", panicValue: errors.New("broken"), panicType: "*errors.errorString"},
		{name: "int panic", panicValue: 42, panicType: "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zl, logs := newObservedLogger()
			e := echo.New()
			e.Use(RequestIDMiddleware())
			e.Use(PanicRecoveryWithZapMiddleware(zl))
			e.GET("/v1/trips/active", func(c echo.Context) error {
				panic(tt.panicValue)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/trips/active", nil)
			req.Header.Set(echo.HeaderXRequestID, "req-123")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Internal Server Error", body["error"])
			assert.Equal(t, "req-123", body["request_id"])

			entries := logs.FilterMessage("Panic recovered during request processing").All()
			require.Len(t, entries, 1)
			ctx := entries[0].ContextMap()
			assert.Equal(t, tt.panicType, ctx["panic_type"])
			assert.Equal(t, "/v1/trips/active", ctx["path"])
			assert.Equal(t, "req-123", ctx["request_id"])
			assert.NotEmpty(t, ctx["stack_trace"])
		})
	}
}

func TestPanicRecoveryWithZapMiddleware_NoPanic(t *testing.T) {
	zl, logs := newObservedLogger()
	e := echo.New()
	e.Use(PanicRecoveryWithZapMiddleware(zl))
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, logs.Len())
}

func TestPanicRecoveryWithZapMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() {
		PanicRecoveryWithZapMiddleware(nil)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("request_id").(string))
	})

	t.Run("generates id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(echo.HeaderXRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("keeps caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "abc")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc", rec.Header().Get(echo.HeaderXRequestID))
	})
}
