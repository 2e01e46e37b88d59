package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// EchoMiddleware instruments every echo route; a nil app yields a pass-through middleware
func EchoMiddleware(app *newrelic.Application) echo.MiddlewareFunc {
	if app == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(app)
}

// FromEchoContext extracts New Relic transaction from Echo context
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext extracts New Relic transaction from standard context
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// StartSegment creates a new segment for the given transaction
// Returns nil if transaction is not available
func StartSegment(txn *newrelic.Transaction, name string) *newrelic.Segment {
	if txn == nil {
		return nil
	}
	return txn.StartSegment(name)
}

// SetTransactionName sets the name of the transaction for better visibility
func SetTransactionName(txn *newrelic.Transaction, name string) {
	if txn != nil {
		txn.SetName(name)
	}
}

// AddTransactionAttribute adds a custom attribute to the transaction
func AddTransactionAttribute(txn *newrelic.Transaction, key string, value interface{}) {
	if txn != nil {
		txn.AddAttribute(key, value)
	}
}

// NoticeTransactionError reports an error to New Relic
func NoticeTransactionError(txn *newrelic.Transaction, err error) {
	if txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// WithSegment executes a function within a New Relic segment
func WithSegment(ctx context.Context, segmentName string, fn func() error) error {
	segment := StartSegment(FromContext(ctx), segmentName)
	if segment != nil {
		defer segment.End()
	}

	return fn()
}

// WithBackgroundTransaction runs fn inside a non-web transaction named name. Ticks and
// bus message folds have no HTTP request to hang a transaction on, so they start their own.
// With a nil app fn runs with the ctx it was given.
func WithBackgroundTransaction(ctx context.Context, app *newrelic.Application, name string, attrs map[string]interface{}, fn func(context.Context) error) error {
	if app == nil {
		return fn(ctx)
	}

	txn := app.StartTransaction(name)
	defer txn.End()
	for k, v := range attrs {
		txn.AddAttribute(k, v)
	}

	err := fn(newrelic.NewContext(ctx, txn))
	NoticeTransactionError(txn, err)
	return err
}
