package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

const cancelRequestCode = 80877102

// CancelRequest is sent on a fresh connection, separate from the one being
// cancelled, to ask the server to abort whatever that connection is
// currently running.
type CancelRequest struct {
	ProcessID uint32
	SecretKey uint32
}

func (*CancelRequest) Frontend() {}

func (dst *CancelRequest) Decode(src []byte) error {
	if len(src) != 12 {
		return newInvalidLenErr("CancelRequest", 12, len(src))
	}
	if binary.BigEndian.Uint32(src) != cancelRequestCode {
		return newInvalidFormatErr("CancelRequest", "bad request code")
	}
	dst.ProcessID = binary.BigEndian.Uint32(src[4:])
	dst.SecretKey = binary.BigEndian.Uint32(src[8:])
	return nil
}

func (src *CancelRequest) Encode(dst []byte) ([]byte, error) {
	dst = pgio.AppendInt32(dst, 16)
	dst = pgio.AppendUint32(dst, cancelRequestCode)
	dst = pgio.AppendUint32(dst, src.ProcessID)
	dst = pgio.AppendUint32(dst, src.SecretKey)
	return dst, nil
}
