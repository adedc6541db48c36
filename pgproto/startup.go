package pgproto

import (
	"encoding/binary"
	"sort"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

const sslRequestCode = 80877103

// StartupMessage is the very first message sent on a new connection. Unlike
// every other frontend message it has no 1-byte tag; the length field
// includes itself.
type StartupMessage struct {
	ProtocolVersion uint32
	Parameters      map[string]string
}

func (*StartupMessage) Frontend() {}

func (dst *StartupMessage) Decode(src []byte) error {
	if len(src) < 4 {
		return newInvalidFormatErr("StartupMessage", "too short")
	}

	dst.ProtocolVersion = binary.BigEndian.Uint32(src)
	rest := src[4:]

	dst.Parameters = make(map[string]string)
	for {
		var key, value string
		var ok bool

		rest, key, ok = getCString(rest)
		if !ok {
			return newInvalidFormatErr("StartupMessage", "missing key terminator")
		}
		if key == "" {
			return nil
		}

		rest, value, ok = getCString(rest)
		if !ok {
			return newInvalidFormatErr("StartupMessage", "missing value terminator")
		}
		dst.Parameters[key] = value
	}
}

func (src *StartupMessage) Encode(dst []byte) ([]byte, error) {
	lenOffset := len(dst)
	dst = pgio.AppendInt32(dst, -1)
	dst = pgio.AppendUint32(dst, src.ProtocolVersion)

	// Sorted for deterministic wire output, which keeps traces and tests
	// reproducible.
	keys := make([]string, 0, len(src.Parameters))
	for k := range src.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		dst = appendCString(dst, k)
		dst = appendCString(dst, src.Parameters[k])
	}
	dst = append(dst, 0)

	binary.BigEndian.PutUint32(dst[lenOffset:], uint32(len(dst)-lenOffset))
	return dst, nil
}

// SSLRequest is sent in place of a StartupMessage when the client wants to
// negotiate TLS before authenticating. Its reply is a single byte, 'S' or
// 'N', read directly off the transport rather than through the codec.
type SSLRequest struct{}

func (*SSLRequest) Frontend() {}

func (*SSLRequest) Decode(src []byte) error {
	if len(src) != 4 || binary.BigEndian.Uint32(src) != sslRequestCode {
		return newInvalidFormatErr("SSLRequest", "bad request code")
	}
	return nil
}

func (src *SSLRequest) Encode(dst []byte) ([]byte, error) {
	dst = pgio.AppendInt32(dst, 8)
	dst = pgio.AppendUint32(dst, sslRequestCode)
	return dst, nil
}
