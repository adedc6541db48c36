// Package pgtrace renders the wire messages a session exchanges with the
// server as a human-readable log, in the same spirit as libpq's PQtrace.
package pgtrace

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/coriolisdb/pgwire/pgproto"
)

// Tracer writes every message to Writer as one line. It implements
// pgproto.Tracer.
type Tracer struct {
	Writer io.Writer

	// SuppressTimestamps omits the leading timestamp column, which makes
	// golden-file tests reproducible.
	SuppressTimestamps bool
}

func (t *Tracer) TraceFrontendMessage(msg pgproto.FrontendMessage) {
	t.trace('F', msg)
}

func (t *Tracer) TraceBackendMessage(msg pgproto.BackendMessage) {
	t.trace('B', msg)
}

func (t *Tracer) trace(sender byte, msg pgproto.Message) {
	var buf strings.Builder

	if !t.SuppressTimestamps {
		buf.WriteString(time.Now().Format("2006-01-02 15:04:05.000000"))
		buf.WriteByte('\t')
	}
	buf.WriteByte(sender)
	buf.WriteByte('\t')

	switch msg := msg.(type) {
	case *pgproto.Authentication:
		fmt.Fprintf(&buf, "Authentication\t %d", msg.Type)
	case *pgproto.BackendKeyData:
		fmt.Fprintf(&buf, "BackendKeyData\t %d %d", msg.ProcessID, msg.SecretKey)
	case *pgproto.Bind:
		fmt.Fprintf(&buf, "Bind\t %s %s %d", quoted(msg.DestinationPortal), quoted(msg.PreparedStatement), len(msg.Parameters))
	case *pgproto.BindComplete:
		buf.WriteString("BindComplete")
	case *pgproto.CancelRequest:
		buf.WriteString("CancelRequest")
	case *pgproto.Close:
		fmt.Fprintf(&buf, "Close\t %c %s", msg.ObjectType, quoted(msg.Name))
	case *pgproto.CloseComplete:
		buf.WriteString("CloseComplete")
	case *pgproto.CommandComplete:
		fmt.Fprintf(&buf, "CommandComplete\t %s", quoted(string(msg.CommandTag)))
	case *pgproto.CopyBothResponse:
		buf.WriteString("CopyBothResponse")
	case *pgproto.CopyData:
		buf.WriteString("CopyData")
	case *pgproto.CopyDone:
		buf.WriteString("CopyDone")
	case *pgproto.CopyFail:
		fmt.Fprintf(&buf, "CopyFail\t %s", quoted(msg.Message))
	case *pgproto.CopyInResponse:
		buf.WriteString("CopyInResponse")
	case *pgproto.CopyOutResponse:
		buf.WriteString("CopyOutResponse")
	case *pgproto.DataRow:
		fmt.Fprintf(&buf, "DataRow\t %d", len(msg.Values))
	case *pgproto.Describe:
		fmt.Fprintf(&buf, "Describe\t %c %s", msg.ObjectType, quoted(msg.Name))
	case *pgproto.EmptyQueryResponse:
		buf.WriteString("EmptyQueryResponse")
	case *pgproto.ErrorResponse:
		fmt.Fprintf(&buf, "ErrorResponse\t %s %s", msg.Severity, msg.Message)
	case *pgproto.Execute:
		fmt.Fprintf(&buf, "Execute\t %s %d", quoted(msg.Portal), msg.MaxRows)
	case *pgproto.Flush:
		buf.WriteString("Flush")
	case *pgproto.NoData:
		buf.WriteString("NoData")
	case *pgproto.NoticeResponse:
		fmt.Fprintf(&buf, "NoticeResponse\t %s", msg.Message)
	case *pgproto.NotificationResponse:
		fmt.Fprintf(&buf, "NotificationResponse\t %d %s %s", msg.PID, quoted(msg.Channel), quoted(msg.Payload))
	case *pgproto.ParameterDescription:
		buf.WriteString("ParameterDescription")
	case *pgproto.ParameterStatus:
		fmt.Fprintf(&buf, "ParameterStatus\t %s %s", quoted(msg.Name), quoted(msg.Value))
	case *pgproto.Parse:
		fmt.Fprintf(&buf, "Parse\t %s %s %d", quoted(msg.Name), quoted(msg.Query), len(msg.ParameterOIDs))
	case *pgproto.ParseComplete:
		buf.WriteString("ParseComplete")
	case *pgproto.PortalSuspended:
		buf.WriteString("PortalSuspended")
	case *pgproto.Query:
		fmt.Fprintf(&buf, "Query\t %q", msg.String)
	case *pgproto.ReadyForQuery:
		fmt.Fprintf(&buf, "ReadyForQuery\t %c", msg.TxStatus)
	case *pgproto.RowDescription:
		fmt.Fprintf(&buf, "RowDescription\t %d", len(msg.Fields))
	case *pgproto.SSLRequest:
		buf.WriteString("SSLRequest")
	case *pgproto.StartupMessage:
		buf.WriteString("StartupMessage")
	case *pgproto.Sync:
		buf.WriteString("Sync")
	case *pgproto.Terminate:
		buf.WriteString("Terminate")
	default:
		buf.WriteString("Unknown")
	}

	buf.WriteByte('\n')
	io.WriteString(t.Writer, buf.String())
}

func quoted(s string) string {
	return `"` + s + `"`
}
