package logrusadapter_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coriolisdb/pgwire/log/logrusadapter"
	"github.com/coriolisdb/pgwire/pgxlog"
)

func TestLogger(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	logger := logrusadapter.NewLogger(base)

	logger.Log(context.Background(), pgxlog.LogLevelInfo, "hello", map[string]interface{}{"one": "two"})

	require.Len(t, hook.Entries, 1)
	entry := hook.Entries[0]
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, "two", entry.Data["one"])
}

func TestLoggerInvalidLevel(t *testing.T) {
	base, hook := test.NewNullLogger()
	logger := logrusadapter.NewLogger(base)

	logger.Log(context.Background(), pgxlog.LogLevel(99), "uh oh", nil)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.Entries[0].Level)
}
