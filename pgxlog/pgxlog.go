// Package pgxlog defines the logging port the driver's ambient stack logs
// through, and a query-logging helper that renders SQL text and its
// arguments into one sanitized line for that port.
//
// Grounded on the teacher's logger.go: same level set, same
// Log(ctx, level, msg, data) shape the zerolog/logrus adapters already
// implement, adjusted from a package-global Logger type to an importable
// interface so adapters don't need to depend on the driver's root package.
package pgxlog

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/coriolisdb/pgwire/internal/sanitize"
)

// LogLevel mirrors the teacher's LogLevelTrace..LogLevelNone scale; the
// zero value means "unspecified" and callers should treat it as Debug.
type LogLevel int

const (
	LogLevelNone  LogLevel = 1
	LogLevelError LogLevel = 2
	LogLevelWarn  LogLevel = 3
	LogLevelInfo  LogLevel = 4
	LogLevelDebug LogLevel = 5
	LogLevelTrace LogLevel = 6
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelTrace:
		return "trace"
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelNone:
		return "none"
	default:
		return "unknown"
	}
}

// Logger is the interface the driver logs through. data carries
// structured fields (sql, args, err, time, rowCount, ...) rather than
// being folded into msg, leaving formatting to the adapter.
type Logger interface {
	Log(ctx context.Context, level LogLevel, msg string, data map[string]any)
}

// QueryFields builds the structured field set a query-logging call site
// hands to Logger.Log, using internal/sanitize to interpolate args into
// sql for a human-readable "query" field while keeping args available
// separately for machine consumption. Long byte/string arguments are
// truncated, matching the teacher's logQueryArgs.
func QueryFields(sql string, args []any) map[string]any {
	fields := map[string]any{
		"sql":  sql,
		"args": truncateArgs(args),
	}
	if rendered, err := sanitize.SanitizeSQL(sql, args...); err == nil {
		fields["query"] = rendered
	}
	return fields
}

func truncateArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case []byte:
			if len(v) < 64 {
				out[i] = hex.EncodeToString(v)
			} else {
				out[i] = fmt.Sprintf("%x (truncated %d bytes)", v[:64], len(v)-64)
			}
		case string:
			if len(v) > 64 {
				out[i] = fmt.Sprintf("%s (truncated %d bytes)", v[:64], len(v)-64)
			} else {
				out[i] = v
			}
		default:
			out[i] = a
		}
	}
	return out
}
