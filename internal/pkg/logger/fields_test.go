package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	zap.New(core).Info("stream ready",
		String("stream", "POSITION_STREAM"),
		Strings("subjects", []string{"fleet.car.position.*"}),
		Int("partitions", 8),
		Uint64("seq", 42),
		Duration("delay", 250*time.Millisecond),
		Err(errors.New("boom")))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "POSITION_STREAM", fields["stream"])
		assert.Equal(t, []interface{}{"fleet.car.position.*"}, fields["subjects"])
		assert.Equal(t, int64(8), fields["partitions"])
		assert.Equal(t, uint64(42), fields["seq"])
		assert.Equal(t, 250*time.Millisecond, fields["delay"])
		assert.Equal(t, "boom", fields["error"])
	}
}
