// Package pgproto implements the PostgreSQL frontend/backend wire protocol,
// version 3.0. It knows how to frame and decode the messages exchanged
// between a client and server; it does not interpret their semantics.
package pgproto

import (
	"encoding/binary"
	"fmt"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// Message is implemented by every wire message, frontend or backend.
type Message interface {
	// Decode parses data (the message body, without the 1-byte tag and
	// 4-byte length) into the receiver. Decode may retain data.
	Decode(data []byte) error

	// Encode appends the wire representation of the message, including its
	// tag and length prefix, to dst and returns the extended slice.
	Encode(dst []byte) ([]byte, error)
}

// FrontendMessage is sent by the client.
type FrontendMessage interface {
	Message
	Frontend()
}

// BackendMessage is sent by the server.
type BackendMessage interface {
	Message
	Backend()
}

// AuthenticationResponseMessage is a BackendMessage sent in answer to a
// startup request, prior to the initial ReadyForQuery.
type AuthenticationResponseMessage interface {
	BackendMessage
	AuthenticationResponse()
}

// ProtocolVersionNumber is protocol 3.0, the only version this package speaks.
const ProtocolVersionNumber = 196608 // 3 << 16

// ProtocolViolation reports a frame that cannot be a legal protocol message:
// a bad length, an unknown tag, or a payload that decodes inconsistently.
type ProtocolViolation struct {
	MessageType string
	Detail      string
}

func (e *ProtocolViolation) Error() string {
	if e.MessageType == "" {
		return "protocol violation: " + e.Detail
	}
	return fmt.Sprintf("protocol violation: %s: %s", e.MessageType, e.Detail)
}

func newInvalidLenErr(messageType string, expected, actual int) error {
	return &ProtocolViolation{
		MessageType: messageType,
		Detail:      fmt.Sprintf("expected body length %d, got %d", expected, actual),
	}
}

func newInvalidFormatErr(messageType, detail string) error {
	return &ProtocolViolation{MessageType: messageType, Detail: detail}
}

// beginMessage appends tag and a placeholder length field to buf, returning
// the extended buffer and the offset of the length field so it can be
// patched by finishMessage once the payload is known.
func beginMessage(buf []byte, tag byte) (newBuf []byte, lenOffset int) {
	buf = append(buf, tag)
	lenOffset = len(buf)
	buf = pgio.AppendInt32(buf, -1)
	return buf, lenOffset
}

// finishMessage patches the length field written by beginMessage now that
// the full payload has been appended to buf.
func finishMessage(buf []byte, lenOffset int) ([]byte, error) {
	binary.BigEndian.PutUint32(buf[lenOffset:], uint32(len(buf)-lenOffset))
	return buf, nil
}

// appendCString appends s followed by a NUL terminator.
func appendCString(buf []byte, s string) []byte {
	buf = append(buf, s...)
	return append(buf, 0)
}

// getCString reads a NUL-terminated string from the front of src, returning
// the remaining bytes, the string (without its terminator) and whether one
// was found.
func getCString(src []byte) (rest []byte, s string, ok bool) {
	for i, b := range src {
		if b == 0 {
			return src[i+1:], string(src[:i]), true
		}
	}
	return src, "", false
}
