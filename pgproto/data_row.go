package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// DataRow carries one result row. A nil entry means SQL NULL.
type DataRow struct {
	Values [][]byte
}

func (*DataRow) Backend() {}

func (dst *DataRow) Decode(src []byte) error {
	if len(src) < 2 {
		return newInvalidFormatErr("DataRow", "missing field count")
	}
	fieldCount := int(binary.BigEndian.Uint16(src))
	rp := 2

	// Reuse the backing array across reads unless it is badly mismatched,
	// so a long stream of narrow rows doesn't churn the allocator.
	if cap(dst.Values) < fieldCount || cap(dst.Values)-fieldCount > 32 {
		dst.Values = make([][]byte, fieldCount, 32)
	} else {
		dst.Values = dst.Values[:fieldCount]
	}

	for i := 0; i < fieldCount; i++ {
		if len(src[rp:]) < 4 {
			return newInvalidFormatErr("DataRow", "truncated field length")
		}
		size := int(int32(binary.BigEndian.Uint32(src[rp:])))
		rp += 4

		if size == -1 {
			dst.Values[i] = nil
			continue
		}
		if len(src[rp:]) < size {
			return newInvalidFormatErr("DataRow", "truncated field value")
		}
		dst.Values[i] = src[rp : rp+size]
		rp += size
	}

	return nil
}

func (src *DataRow) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'D')
	dst = pgio.AppendUint16(dst, uint16(len(src.Values)))
	for _, v := range src.Values {
		if v == nil {
			dst = pgio.AppendInt32(dst, -1)
			continue
		}
		dst = pgio.AppendInt32(dst, int32(len(v)))
		dst = append(dst, v...)
	}
	return finishMessage(dst, sp)
}

// EmptyQueryResponse answers a Query or Execute that carried no statement
// at all.
type EmptyQueryResponse struct{}

func (*EmptyQueryResponse) Backend() {}

func (*EmptyQueryResponse) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("EmptyQueryResponse", 0, len(src))
	}
	return nil
}

func (src *EmptyQueryResponse) Encode(dst []byte) ([]byte, error) {
	return append(dst, 'I', 0, 0, 0, 4), nil
}

// CommandComplete ends a command cycle with its result tag, e.g.
// "INSERT 0 1" or "SELECT 3".
type CommandComplete struct {
	CommandTag []byte
}

func (*CommandComplete) Backend() {}

func (dst *CommandComplete) Decode(src []byte) error {
	rest, s, ok := getCString(src)
	if !ok || len(rest) != 0 {
		return newInvalidFormatErr("CommandComplete", "missing NUL terminator")
	}
	dst.CommandTag = []byte(s)
	return nil
}

func (src *CommandComplete) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'C')
	dst = append(dst, src.CommandTag...)
	dst = append(dst, 0)
	return finishMessage(dst, sp)
}

// PortalSuspended is returned when Execute's row limit was reached before
// the portal was exhausted.
type PortalSuspended struct{}

func (*PortalSuspended) Backend() {}

func (*PortalSuspended) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("PortalSuspended", 0, len(src))
	}
	return nil
}

func (src *PortalSuspended) Encode(dst []byte) ([]byte, error) {
	return append(dst, 's', 0, 0, 0, 4), nil
}
