package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// AddAttribute adds a custom attribute to the current transaction
func AddAttribute(c echo.Context, key string, value interface{}) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute(key, value)
	}
}

// NoticeError reports an error to New Relic
func NoticeError(c echo.Context, err error) {
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.NoticeError(err)
	}
}

// SetTripID tags the current transaction with the trip it acts on
func SetTripID(c echo.Context, tripID string) {
	AddAttribute(c, "trip.id", tripID)
}

// SetDriverID tags the current transaction with the driver it acts on
func SetDriverID(c echo.Context, driverID string) {
	AddAttribute(c, "driver.id", driverID)
}

// Context returns the request context, which carries the New Relic transaction
func Context(c echo.Context) context.Context {
	return c.Request().Context()
}
