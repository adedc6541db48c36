package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// Parse asks the server to parse sql and name it name (the empty string is
// the unnamed statement). ParameterOIDs may be left empty to let the server
// infer parameter types, which is what the statement cache does — it
// learns the real types back from the matching ParameterDescription.
type Parse struct {
	Name          string
	Query         string
	ParameterOIDs []uint32
}

func (*Parse) Frontend() {}

func (dst *Parse) Decode(src []byte) error {
	rest, name, ok := getCString(src)
	if !ok {
		return newInvalidFormatErr("Parse", "missing name terminator")
	}
	rest, query, ok := getCString(rest)
	if !ok {
		return newInvalidFormatErr("Parse", "missing query terminator")
	}
	if len(rest) < 2 {
		return newInvalidFormatErr("Parse", "missing parameter count")
	}
	count := int(binary.BigEndian.Uint16(rest))
	rest = rest[2:]
	if len(rest) != count*4 {
		return newInvalidFormatErr("Parse", "parameter OID count mismatch")
	}

	dst.Name = name
	dst.Query = query
	dst.ParameterOIDs = make([]uint32, count)
	for i := 0; i < count; i++ {
		dst.ParameterOIDs[i] = binary.BigEndian.Uint32(rest[i*4:])
	}
	return nil
}

func (src *Parse) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'P')
	dst = appendCString(dst, src.Name)
	dst = appendCString(dst, src.Query)
	dst = pgio.AppendUint16(dst, uint16(len(src.ParameterOIDs)))
	for _, oid := range src.ParameterOIDs {
		dst = pgio.AppendUint32(dst, oid)
	}
	return finishMessage(dst, sp)
}
