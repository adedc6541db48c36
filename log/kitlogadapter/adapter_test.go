package kitlogadapter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"

	"github.com/coriolisdb/pgwire/log/kitlogadapter"
	"github.com/coriolisdb/pgwire/pgxlog"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := log.NewLogfmtLogger(&buf)
	logger := kitlogadapter.NewLogger(base)

	logger.Log(context.Background(), pgxlog.LogLevelInfo, "hello", map[string]any{"one": "two"})

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "one=two")
	assert.Contains(t, buf.String(), "level=info")
}
