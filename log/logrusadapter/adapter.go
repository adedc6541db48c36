// Package logrusadapter adapts a github.com/sirupsen/logrus.Logger to
// pgxlog.Logger.
package logrusadapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/coriolisdb/pgwire/pgxlog"
)

type Logger struct {
	l *logrus.Logger
}

func NewLogger(l *logrus.Logger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(ctx context.Context, level pgxlog.LogLevel, msg string, data map[string]interface{}) {
	var logger logrus.FieldLogger
	if data != nil {
		logger = l.l.WithFields(data)
	} else {
		logger = l.l
	}

	switch level {
	case pgxlog.LogLevelTrace:
		logger.WithField("PGWIRE_LOG_LEVEL", level.String()).Debug(msg)
	case pgxlog.LogLevelDebug:
		logger.Debug(msg)
	case pgxlog.LogLevelInfo:
		logger.Info(msg)
	case pgxlog.LogLevelWarn:
		logger.Warn(msg)
	case pgxlog.LogLevelError:
		logger.Error(msg)
	default:
		logger.WithField("INVALID_PGWIRE_LOG_LEVEL", level.String()).Error(msg)
	}
}
