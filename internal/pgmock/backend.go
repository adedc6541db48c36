package pgmock

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/coriolisdb/pgwire/pgproto"
)

// Backend is the server half of the wire protocol that pgproto itself
// does not implement (pgproto only ships Frontend, the client codec);
// pgmock needs its mirror image to play a fake server in tests. It reads
// and decodes exactly one frontend-sent message per Receive, and encodes
// and buffers backend messages per Send, flushed by Flush — the same
// shape as pgproto.Frontend, inverted.
type Backend struct {
	r io.Reader
	w io.Writer

	wbuf []byte
}

// NewBackend wraps r and w, the two halves of one accepted connection.
func NewBackend(r io.Reader, w io.Writer) *Backend {
	return &Backend{r: r, w: w, wbuf: make([]byte, 0, 1024)}
}

// ReceiveStartupMessage reads the untagged length-prefixed message that
// opens every connection: an SSLRequest, a CancelRequest (on its own
// dedicated connection), or a StartupMessage, distinguished by the
// sentinel code at offset 4 (or, for StartupMessage, the absence of one).
func (b *Backend) ReceiveStartupMessage() (pgproto.FrontendMessage, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(b.r, header); err != nil {
		return nil, err
	}
	n := int32(binary.BigEndian.Uint32(header))
	if n < 4 {
		return nil, fmt.Errorf("pgmock: invalid startup message length %d", n)
	}

	body := make([]byte, n-4)
	if _, err := io.ReadFull(b.r, body); err != nil {
		return nil, err
	}

	full := append(header, body...)

	if ssl := new(pgproto.SSLRequest); ssl.Decode(full[4:]) == nil {
		return ssl, nil
	}
	if cancel := new(pgproto.CancelRequest); cancel.Decode(full[4:]) == nil {
		return cancel, nil
	}

	startup := new(pgproto.StartupMessage)
	if err := startup.Decode(full[4:]); err != nil {
		return nil, err
	}
	return startup, nil
}

// Receive reads and decodes exactly one tagged frontend message.
func (b *Backend) Receive() (pgproto.FrontendMessage, error) {
	header := make([]byte, 5)
	if _, err := io.ReadFull(b.r, header); err != nil {
		return nil, err
	}

	tag := header[0]
	bodyLen := int(binary.BigEndian.Uint32(header[1:])) - 4
	if bodyLen < 0 {
		return nil, fmt.Errorf("pgmock: negative body length for tag %q", tag)
	}

	body := make([]byte, bodyLen)
	if bodyLen > 0 {
		if _, err := io.ReadFull(b.r, body); err != nil {
			return nil, err
		}
	}

	var msg pgproto.FrontendMessage
	switch tag {
	case 'p':
		msg = &pgproto.PasswordMessage{}
	case 'Q':
		msg = &pgproto.Query{}
	case 'P':
		msg = &pgproto.Parse{}
	case 'B':
		msg = &pgproto.Bind{}
	case 'D':
		msg = &pgproto.Describe{}
	case 'E':
		msg = &pgproto.Execute{}
	case 'H':
		msg = &pgproto.Flush{}
	case 'S':
		msg = &pgproto.Sync{}
	case 'C':
		msg = &pgproto.Close{}
	case 'X':
		msg = &pgproto.Terminate{}
	case 'd':
		msg = &pgproto.CopyData{}
	case 'c':
		msg = &pgproto.CopyDone{}
	case 'f':
		msg = &pgproto.CopyFail{}
	default:
		return nil, fmt.Errorf("pgmock: unknown frontend message tag %q", tag)
	}

	if err := msg.Decode(body); err != nil {
		return nil, err
	}
	return msg, nil
}

// Send queues a backend message for the next Flush.
func (b *Backend) Send(msg pgproto.BackendMessage) error {
	var err error
	b.wbuf, err = msg.Encode(b.wbuf)
	return err
}

// Flush writes every message queued since the last Flush.
func (b *Backend) Flush() error {
	if len(b.wbuf) == 0 {
		return nil
	}
	_, err := b.w.Write(b.wbuf)
	b.wbuf = b.wbuf[:0]
	return err
}
