package zerologadapter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/coriolisdb/pgwire/log/zerologadapter"
	"github.com/coriolisdb/pgwire/pgxlog"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	zlogger := zerolog.New(&buf)
	logger := zerologadapter.NewLogger(zlogger)

	logger.Log(context.Background(), pgxlog.LogLevelInfo, "hello", map[string]interface{}{"one": "two"})

	const want = `{"level":"info","module":"pgwire","one":"two","message":"hello"}
`
	assert.Equal(t, want, buf.String())
}

func TestLoggerNilData(t *testing.T) {
	var buf bytes.Buffer
	zlogger := zerolog.New(&buf)
	logger := zerologadapter.NewLogger(zlogger)

	logger.Log(context.Background(), pgxlog.LogLevelError, "boom", nil)

	const want = `{"level":"error","module":"pgwire","message":"boom"}
`
	assert.Equal(t, want, buf.String())
}
