package zapadapter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coriolisdb/pgwire/log/zapadapter"
	"github.com/coriolisdb/pgwire/pgxlog"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := zap.New(core)
	logger := zapadapter.NewLogger(base)

	logger.Log(context.Background(), pgxlog.LogLevelWarn, "hello", map[string]any{"one": "two"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, "two", entries[0].ContextMap()["one"])
}
