// Package zapadapter adapts a go.uber.org/zap.Logger into a pgxlog.Logger.
package zapadapter

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/coriolisdb/pgwire/pgxlog"
)

type Logger struct {
	l *zap.Logger
}

func NewLogger(l *zap.Logger) *Logger {
	return &Logger{l: l}
}

func (l *Logger) Log(ctx context.Context, level pgxlog.LogLevel, msg string, data map[string]any) {
	fields := make([]zap.Field, 0, len(data))
	for k, v := range data {
		fields = append(fields, zap.Any(k, v))
	}

	switch level {
	case pgxlog.LogLevelTrace, pgxlog.LogLevelDebug:
		l.l.Check(zapcore.DebugLevel, msg).Write(fields...)
	case pgxlog.LogLevelInfo:
		l.l.Check(zapcore.InfoLevel, msg).Write(fields...)
	case pgxlog.LogLevelWarn:
		l.l.Check(zapcore.WarnLevel, msg).Write(fields...)
	case pgxlog.LogLevelError:
		l.l.Check(zapcore.ErrorLevel, msg).Write(fields...)
	default:
		l.l.Check(zapcore.ErrorLevel, msg).Write(append(fields, zap.Stringer("invalid_level", level))...)
	}
}
