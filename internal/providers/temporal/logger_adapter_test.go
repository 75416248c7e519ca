package temporal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConvertKeyvalsToFields(t *testing.T) {
	fields := convertKeyvalsToFields("WorkflowID", "commission-propagation-1", 42, "ignored", "Attempt", int32(2), "dangling")
	require.Len(t, fields, 2)
	assert.Equal(t, "WorkflowID", fields[0].Key)
	assert.Equal(t, "Attempt", fields[1].Key)

	fields = convertKeyvalsToFields("Error", errors.New("boom"))
	require.Len(t, fields, 1)
	assert.Equal(t, zapcore.ErrorType, fields[0].Type)
}

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := NewZapLoggerAdapter(zap.New(core))

	withLogger, ok := adapter.(log.WithLogger)
	require.True(t, ok)

	tagged := withLogger.With("Namespace", "default")
	tagged.Info("Started Worker", "TaskQueue", "commission")
	adapter.Warn("poll failed", "Error", errors.New("unavailable"))

	entries := logs.All()
	require.Len(t, entries, 2)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "temporal", ctx["component"])
	assert.Equal(t, "default", ctx["Namespace"])
	assert.Equal(t, "commission", ctx["TaskQueue"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "unavailable", entries[1].ContextMap()["Error"])
}
