package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// Sync marks the end of a request group. The server responds with
// ReadyForQuery once every preceding message has been processed, including
// discarding anything queued behind an earlier ErrorResponse.
type Sync struct{}

func (*Sync) Frontend() {}

func (*Sync) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("Sync", 0, len(src))
	}
	return nil
}

func (src *Sync) Encode(dst []byte) ([]byte, error) {
	return append(dst, 'S', 0, 0, 0, 4), nil
}

// Flush asks the server to deliver any pending results without waiting for
// a Sync. The core does not use it directly but decodes it for wire
// completeness.
type Flush struct{}

func (*Flush) Frontend() {}

func (*Flush) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("Flush", 0, len(src))
	}
	return nil
}

func (src *Flush) Encode(dst []byte) ([]byte, error) {
	return append(dst, 'H', 0, 0, 0, 4), nil
}

// Terminate politely closes the session. The server does not reply.
type Terminate struct{}

func (*Terminate) Frontend() {}

func (*Terminate) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("Terminate", 0, len(src))
	}
	return nil
}

func (src *Terminate) Encode(dst []byte) ([]byte, error) {
	return append(dst, 'X', 0, 0, 0, 4), nil
}

// CopyDone signals a successful end of a COPY data stream.
type CopyDone struct{}

func (*CopyDone) Frontend() {}
func (*CopyDone) Backend()  {}

func (*CopyDone) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("CopyDone", 0, len(src))
	}
	return nil
}

func (src *CopyDone) Encode(dst []byte) ([]byte, error) {
	return append(dst, 'c', 0, 0, 0, 4), nil
}

// CopyFail aborts a COPY data stream with an explanatory message.
type CopyFail struct {
	Message string
}

func (*CopyFail) Frontend() {}

func (dst *CopyFail) Decode(src []byte) error {
	rest, s, ok := getCString(src)
	if !ok || len(rest) != 0 {
		return newInvalidFormatErr("CopyFail", "missing NUL terminator")
	}
	dst.Message = s
	return nil
}

func (src *CopyFail) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'f')
	dst = appendCString(dst, src.Message)
	return finishMessage(dst, sp)
}

// CopyData carries a chunk of COPY payload in either direction.
type CopyData struct {
	Data []byte
}

func (*CopyData) Frontend() {}
func (*CopyData) Backend()  {}

func (dst *CopyData) Decode(src []byte) error {
	dst.Data = src
	return nil
}

func (src *CopyData) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'd')
	dst = append(dst, src.Data...)
	return finishMessage(dst, sp)
}

// PasswordMessage answers an authentication challenge. Its payload is
// either the cleartext password or, for MD5 auth, the pre-hashed digest —
// the authenticator decides which string to put here.
type PasswordMessage struct {
	Password string
}

func (*PasswordMessage) Frontend() {}

func (dst *PasswordMessage) Decode(src []byte) error {
	rest, s, ok := getCString(src)
	if !ok || len(rest) != 0 {
		return newInvalidFormatErr("PasswordMessage", "missing NUL terminator")
	}
	dst.Password = s
	return nil
}

func (src *PasswordMessage) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'p')
	dst = appendCString(dst, src.Password)
	return finishMessage(dst, sp)
}

// Query sends a statement via the simple query protocol. The statement may
// contain multiple ;-separated commands; PostgreSQL runs them as an
// implicit transaction.
type Query struct {
	String string
}

func (*Query) Frontend() {}

func (dst *Query) Decode(src []byte) error {
	rest, s, ok := getCString(src)
	if !ok || len(rest) != 0 {
		return newInvalidFormatErr("Query", "missing NUL terminator")
	}
	dst.String = s
	return nil
}

func (src *Query) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'Q')
	dst = appendCString(dst, src.String)
	return finishMessage(dst, sp)
}

// Close releases a prepared statement or portal.
type Close struct {
	ObjectType byte // 'S' statement, 'P' portal
	Name       string
}

func (*Close) Frontend() {}

func (dst *Close) Decode(src []byte) error {
	if len(src) < 1 {
		return newInvalidFormatErr("Close", "missing object type")
	}
	dst.ObjectType = src[0]
	rest, s, ok := getCString(src[1:])
	if !ok || len(rest) != 0 {
		return newInvalidFormatErr("Close", "missing NUL terminator")
	}
	dst.Name = s
	return nil
}

func (src *Close) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'C')
	dst = append(dst, src.ObjectType)
	dst = appendCString(dst, src.Name)
	return finishMessage(dst, sp)
}

// Describe requests the parameter and result shape of a prepared statement
// or the result shape of a portal.
type Describe struct {
	ObjectType byte // 'S' statement, 'P' portal
	Name       string
}

func (*Describe) Frontend() {}

func (dst *Describe) Decode(src []byte) error {
	if len(src) < 1 {
		return newInvalidFormatErr("Describe", "missing object type")
	}
	dst.ObjectType = src[0]
	rest, s, ok := getCString(src[1:])
	if !ok || len(rest) != 0 {
		return newInvalidFormatErr("Describe", "missing NUL terminator")
	}
	dst.Name = s
	return nil
}

func (src *Describe) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'D')
	dst = append(dst, src.ObjectType)
	dst = appendCString(dst, src.Name)
	return finishMessage(dst, sp)
}

// Execute runs a bound portal, returning at most MaxRows rows (0 means no
// limit).
type Execute struct {
	Portal  string
	MaxRows uint32
}

func (*Execute) Frontend() {}

func (dst *Execute) Decode(src []byte) error {
	rest, s, ok := getCString(src)
	if !ok || len(rest) != 4 {
		return newInvalidFormatErr("Execute", "malformed body")
	}
	dst.Portal = s
	dst.MaxRows = binary.BigEndian.Uint32(rest)
	return nil
}

func (src *Execute) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'E')
	dst = appendCString(dst, src.Portal)
	dst = pgio.AppendUint32(dst, src.MaxRows)
	return finishMessage(dst, sp)
}
