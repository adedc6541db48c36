package pgproto

import (
	"io"
)

// Tracer receives a copy of every message sent or received by a Frontend.
// Package pgtrace implements it; pgproto only depends on the interface so
// tracing stays optional.
type Tracer interface {
	TraceFrontendMessage(msg FrontendMessage)
	TraceBackendMessage(msg BackendMessage)
}

// writeError wraps a failure from the underlying writer, noting whether the
// write was a no-op so the caller can safely retry without risking a
// double-send.
type writeError struct {
	err         error
	safeToRetry bool
}

func (e *writeError) Error() string { return e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }
func (e *writeError) SafeToRetry() bool { return e.safeToRetry }

// Frontend is the client side of the wire protocol: it queues outgoing
// messages into one buffer per Flush and decodes exactly one backend
// message per Receive, reusing a flyweight value per message type so a busy
// connection does not allocate per row.
type Frontend struct {
	cr *chunkReader
	w  io.Writer

	tracer Tracer

	wbuf []byte

	authenticationResponse Authentication
	backendKeyData          BackendKeyData
	bindComplete            BindComplete
	closeComplete           CloseComplete
	commandComplete         CommandComplete
	copyBothResponse        CopyBothResponse
	copyData                CopyData
	copyInResponse          CopyInResponse
	copyOutResponse         CopyOutResponse
	copyDone                CopyDone
	dataRow                 DataRow
	emptyQueryResponse      EmptyQueryResponse
	errorResponse           ErrorResponse
	noData                  NoData
	noticeResponse          NoticeResponse
	notificationResponse    NotificationResponse
	parameterDescription    ParameterDescription
	parameterStatus         ParameterStatus
	parseComplete           ParseComplete
	portalSuspended         PortalSuspended
	readyForQuery           ReadyForQuery
	rowDescription          RowDescription

	bodyLen    int
	msgType    byte
	partialMsg bool
}

// NewFrontend wraps r and w, which must be the two halves of the same
// connection to a PostgreSQL server.
func NewFrontend(r io.Reader, w io.Writer) *Frontend {
	return &Frontend{
		cr:   newChunkReader(r, 0),
		w:    w,
		wbuf: make([]byte, 0, 1024),
	}
}

// Trace starts copying every message through t. Untrace stops it.
func (f *Frontend) Trace(t Tracer) { f.tracer = t }
func (f *Frontend) Untrace()       { f.tracer = nil }

// Send queues msg for the next Flush.
func (f *Frontend) Send(msg FrontendMessage) error {
	var err error
	f.wbuf, err = msg.Encode(f.wbuf)
	if err != nil {
		return err
	}
	if f.tracer != nil {
		f.tracer.TraceFrontendMessage(msg)
	}
	return nil
}

// Flush writes every message queued since the last Flush.
func (f *Frontend) Flush() error {
	if len(f.wbuf) == 0 {
		return nil
	}

	n, err := f.w.Write(f.wbuf)
	if err != nil {
		return &writeError{err: err, safeToRetry: n == 0}
	}

	if len(f.wbuf) > 65536 {
		f.wbuf = make([]byte, 0, 1024)
	} else {
		f.wbuf = f.wbuf[:0]
	}
	return nil
}

// Receive reads and decodes exactly one backend message. The returned
// message aliases a field on f and is only valid until the next call to
// Receive.
func (f *Frontend) Receive() (BackendMessage, error) {
	if !f.partialMsg {
		header, err := f.cr.Next(5)
		if err != nil {
			return nil, err
		}

		f.msgType = header[0]
		f.bodyLen = int(uint32(header[1])<<24 | uint32(header[2])<<16 | uint32(header[3])<<8 | uint32(header[4])) - 4
		if f.bodyLen < 0 {
			return nil, &ProtocolViolation{Detail: "negative message body length"}
		}
		f.partialMsg = true
	}

	body, err := f.cr.Next(f.bodyLen)
	if err != nil {
		return nil, err
	}
	f.partialMsg = false

	var msg BackendMessage
	switch f.msgType {
	case '1':
		msg = &f.parseComplete
	case '2':
		msg = &f.bindComplete
	case '3':
		msg = &f.closeComplete
	case 'A':
		msg = &f.notificationResponse
	case 'C':
		msg = &f.commandComplete
	case 'D':
		msg = &f.dataRow
	case 'E':
		msg = &f.errorResponse
	case 'G':
		msg = &f.copyInResponse
	case 'H':
		msg = &f.copyOutResponse
	case 'I':
		msg = &f.emptyQueryResponse
	case 'K':
		msg = &f.backendKeyData
	case 'N':
		msg = &f.noticeResponse
	case 'R':
		msg = &f.authenticationResponse
	case 'S':
		msg = &f.parameterStatus
	case 'T':
		msg = &f.rowDescription
	case 'W':
		msg = &f.copyBothResponse
	case 'Z':
		msg = &f.readyForQuery
	case 'c':
		msg = &f.copyDone
	case 'd':
		msg = &f.copyData
	case 'n':
		msg = &f.noData
	case 's':
		msg = &f.portalSuspended
	case 't':
		msg = &f.parameterDescription
	default:
		return nil, &ProtocolViolation{Detail: "unknown message type: " + string(f.msgType)}
	}

	if err := msg.Decode(body); err != nil {
		return nil, err
	}
	if f.tracer != nil {
		f.tracer.TraceBackendMessage(msg)
	}
	return msg, nil
}

// GetAuthType reports the subtype of the most recently received
// Authentication message, for code that needs to remember it across the
// handshake.
func (f *Frontend) GetAuthType() uint32 {
	return f.authenticationResponse.Type
}
