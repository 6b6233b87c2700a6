package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/kevin07696/worldnet-gateway/internal/adapters/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_ConvertsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Info("Gateway request completed",
		ports.String("operation", "ADDSUBSCRIPTION"),
		ports.Int("attempt", 1),
		ports.Duration("elapsed", 250*time.Millisecond),
	)
	logger.Error("Gateway request failed", ports.Err(errors.New("connection refused")))

	require.Equal(t, 2, logs.Len())

	first := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, first.Level)
	assert.Equal(t, "ADDSUBSCRIPTION", first.ContextMap()["operation"])
	assert.Equal(t, int64(1), first.ContextMap()["attempt"])

	second := logs.All()[1]
	assert.Equal(t, zapcore.ErrorLevel, second.Level)
	assert.Equal(t, "connection refused", second.ContextMap()["error"])
}

func TestZapLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "kept", logs.All()[0].Message)
}

func TestNew(t *testing.T) {
	logger, err := New("debug", true)
	require.NoError(t, err)
	assert.True(t, logger.Zap().Core().Enabled(zapcore.DebugLevel))

	logger, err = New("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Zap().Core().Enabled(zapcore.InfoLevel))

	_, err = New("loud", false)
	assert.Error(t, err)
}
