// Package zerologadapter adapts a github.com/rs/zerolog.Logger to
// pgxlog.Logger.
package zerologadapter

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coriolisdb/pgwire/pgxlog"
)

type Logger struct {
	logger zerolog.Logger
}

// NewLogger wraps logger as a pgxlog.Logger, tagging every line with a
// module field the way the teacher's adapter tagged lines with "pgx".
func NewLogger(logger zerolog.Logger) *Logger {
	return &Logger{
		logger: logger.With().Str("module", "pgwire").Logger(),
	}
}

func (pl *Logger) Log(ctx context.Context, level pgxlog.LogLevel, msg string, data map[string]interface{}) {
	var zlevel zerolog.Level
	switch level {
	case pgxlog.LogLevelNone:
		zlevel = zerolog.NoLevel
	case pgxlog.LogLevelError:
		zlevel = zerolog.ErrorLevel
	case pgxlog.LogLevelWarn:
		zlevel = zerolog.WarnLevel
	case pgxlog.LogLevelInfo:
		zlevel = zerolog.InfoLevel
	case pgxlog.LogLevelDebug:
		zlevel = zerolog.DebugLevel
	default:
		zlevel = zerolog.DebugLevel
	}

	entry := pl.logger.With().Fields(data).Logger()
	entry.WithLevel(zlevel).Msg(msg)
}
