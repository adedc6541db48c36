// Package kitlogadapter adapts a github.com/go-kit/log.Logger into a
// pgxlog.Logger.
package kitlogadapter

import (
	"context"

	"github.com/go-kit/log"
	kitlevel "github.com/go-kit/log/level"

	"github.com/coriolisdb/pgwire/pgxlog"
)

type Logger struct {
	l log.Logger
}

func NewLogger(l log.Logger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(ctx context.Context, level pgxlog.LogLevel, msg string, data map[string]any) {
	logger := l.l
	for k, v := range data {
		logger = log.With(logger, k, v)
	}

	switch level {
	case pgxlog.LogLevelTrace:
		logger.Log("level", level, "msg", msg)
	case pgxlog.LogLevelDebug:
		kitlevel.Debug(logger).Log("msg", msg)
	case pgxlog.LogLevelInfo:
		kitlevel.Info(logger).Log("msg", msg)
	case pgxlog.LogLevelWarn:
		kitlevel.Warn(logger).Log("msg", msg)
	case pgxlog.LogLevelError:
		kitlevel.Error(logger).Log("msg", msg)
	default:
		logger.Log("level", level, "msg", msg)
	}
}
