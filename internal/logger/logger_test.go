package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func withObserver(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	prev := log
	core, logs := observer.New(zapcore.DebugLevel)
	log = zap.New(core)
	t.Cleanup(func() { log = prev })
	return logs
}

func TestInitialize(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	require.NoError(t, Initialize(Config{Debug: true}))
	assert.NotNil(t, Default())
	assert.True(t, Default().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(Config{Debug: false}))
	assert.False(t, Default().Core().Enabled(zapcore.DebugLevel))
}

func TestInitialize_InvalidSentryDSN(t *testing.T) {
	prev := log
	t.Cleanup(func() { log = prev })

	err := Initialize(Config{SentryDSN: "not a dsn"})
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	logs := withObserver(t)
	ctx := context.Background()

	Info("info", zap.Int("n", 1))
	InfoCtx(ctx, "info ctx")
	Warn("warn")
	WarnCtx(ctx, "warn ctx")
	Debug("debug")
	DebugCtx(ctx, "debug ctx")
	Error(errors.New("boom"))
	ErrorCtx(ctx, nil)

	entries := logs.All()
	require.Len(t, entries, 8)
	assert.Equal(t, "info", entries[0].Message)
	assert.Equal(t, int64(1), entries[0].ContextMap()["n"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[6].Message)
	assert.Equal(t, "error occurred", entries[7].Message)

	Flush(10 * time.Millisecond)
}

func TestWithWorkflowInfo(t *testing.T) {
	logs := withObserver(t)

	WithWorkflowInfo(WorkflowInfo{WorkflowType: "PropagateCommissions", WorkflowID: "wf-1"}).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "PropagateCommissions", entries[0].ContextMap()["workflow_type"])
	assert.Equal(t, "wf-1", entries[0].ContextMap()["workflow_id"])
}

func TestGetWorkflowInfo_NilContext(t *testing.T) {
	assert.Nil(t, GetWorkflowInfo(nil))
}
