package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// BackendKeyData supplies the process ID and secret key a client needs to
// issue a CancelRequest on a separate connection.
type BackendKeyData struct {
	ProcessID uint32
	SecretKey uint32
}

func (*BackendKeyData) Backend() {}

func (dst *BackendKeyData) Decode(src []byte) error {
	if len(src) != 8 {
		return newInvalidLenErr("BackendKeyData", 8, len(src))
	}
	dst.ProcessID = binary.BigEndian.Uint32(src)
	dst.SecretKey = binary.BigEndian.Uint32(src[4:])
	return nil
}

func (src *BackendKeyData) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'K')
	dst = pgio.AppendUint32(dst, src.ProcessID)
	dst = pgio.AppendUint32(dst, src.SecretKey)
	return finishMessage(dst, sp)
}

// ParameterStatus reports a runtime parameter's current value. The server
// sends one at startup for each parameter it tracks, and again whenever one
// changes, even in the middle of a row stream.
type ParameterStatus struct {
	Name  string
	Value string
}

func (*ParameterStatus) Backend() {}

func (dst *ParameterStatus) Decode(src []byte) error {
	rest, name, ok := getCString(src)
	if !ok {
		return newInvalidFormatErr("ParameterStatus", "missing name terminator")
	}
	rest, value, ok := getCString(rest)
	if !ok || len(rest) != 0 {
		return newInvalidFormatErr("ParameterStatus", "missing value terminator")
	}
	dst.Name = name
	dst.Value = value
	return nil
}

func (src *ParameterStatus) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'S')
	dst = appendCString(dst, src.Name)
	dst = appendCString(dst, src.Value)
	return finishMessage(dst, sp)
}

// ParseComplete answers a successful Parse.
type ParseComplete struct{}

func (*ParseComplete) Backend() {}

func (*ParseComplete) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("ParseComplete", 0, len(src))
	}
	return nil
}

func (src *ParseComplete) Encode(dst []byte) ([]byte, error) {
	return append(dst, '1', 0, 0, 0, 4), nil
}

// BindComplete answers a successful Bind.
type BindComplete struct{}

func (*BindComplete) Backend() {}

func (*BindComplete) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("BindComplete", 0, len(src))
	}
	return nil
}

func (src *BindComplete) Encode(dst []byte) ([]byte, error) {
	return append(dst, '2', 0, 0, 0, 4), nil
}

// CloseComplete answers a successful Close.
type CloseComplete struct{}

func (*CloseComplete) Backend() {}

func (*CloseComplete) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("CloseComplete", 0, len(src))
	}
	return nil
}

func (src *CloseComplete) Encode(dst []byte) ([]byte, error) {
	return append(dst, '3', 0, 0, 0, 4), nil
}

// ReadyForQuery marks a sync point: the server has finished processing
// everything up to and including the last Sync and is ready for the next
// request. TxStatus is 'I' (idle), 'T' (in a transaction) or 'E' (in a
// failed transaction, awaiting rollback).
type ReadyForQuery struct {
	TxStatus byte
}

func (*ReadyForQuery) Backend() {}

func (dst *ReadyForQuery) Decode(src []byte) error {
	if len(src) != 1 {
		return newInvalidLenErr("ReadyForQuery", 1, len(src))
	}
	switch src[0] {
	case 'I', 'T', 'E':
		dst.TxStatus = src[0]
	default:
		return newInvalidFormatErr("ReadyForQuery", "unknown transaction status")
	}
	return nil
}

func (src *ReadyForQuery) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'Z')
	dst = append(dst, src.TxStatus)
	return finishMessage(dst, sp)
}

// NotificationResponse delivers a LISTEN/NOTIFY payload sent by another
// session, possibly between other messages outside of any query cycle.
type NotificationResponse struct {
	PID     uint32
	Channel string
	Payload string
}

func (*NotificationResponse) Backend() {}

func (dst *NotificationResponse) Decode(src []byte) error {
	if len(src) < 4 {
		return newInvalidFormatErr("NotificationResponse", "missing pid")
	}
	dst.PID = binary.BigEndian.Uint32(src)
	rest, channel, ok := getCString(src[4:])
	if !ok {
		return newInvalidFormatErr("NotificationResponse", "missing channel terminator")
	}
	rest, payload, ok := getCString(rest)
	if !ok || len(rest) != 0 {
		return newInvalidFormatErr("NotificationResponse", "missing payload terminator")
	}
	dst.Channel = channel
	dst.Payload = payload
	return nil
}

func (src *NotificationResponse) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'A')
	dst = pgio.AppendUint32(dst, src.PID)
	dst = appendCString(dst, src.Channel)
	dst = appendCString(dst, src.Payload)
	return finishMessage(dst, sp)
}
