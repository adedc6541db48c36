package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// Bind creates a portal from a prepared statement and a set of parameter
// values. A nil entry in Parameters encodes as SQL NULL (wire length -1).
type Bind struct {
	DestinationPortal    string
	PreparedStatement    string
	ParameterFormatCodes []int16
	Parameters           [][]byte
	ResultFormatCodes    []int16
}

func (*Bind) Frontend() {}

func (dst *Bind) Decode(src []byte) error {
	*dst = Bind{}

	rest, portal, ok := getCString(src)
	if !ok {
		return newInvalidFormatErr("Bind", "missing portal terminator")
	}
	rest, stmt, ok := getCString(rest)
	if !ok {
		return newInvalidFormatErr("Bind", "missing statement terminator")
	}
	dst.DestinationPortal = portal
	dst.PreparedStatement = stmt

	if len(rest) < 2 {
		return newInvalidFormatErr("Bind", "missing parameter format count")
	}
	pfc := int(binary.BigEndian.Uint16(rest))
	rest = rest[2:]
	if len(rest) < pfc*2 {
		return newInvalidFormatErr("Bind", "truncated parameter format codes")
	}
	dst.ParameterFormatCodes = make([]int16, pfc)
	for i := range dst.ParameterFormatCodes {
		dst.ParameterFormatCodes[i] = int16(binary.BigEndian.Uint16(rest))
		rest = rest[2:]
	}

	if len(rest) < 2 {
		return newInvalidFormatErr("Bind", "missing parameter count")
	}
	pc := int(binary.BigEndian.Uint16(rest))
	rest = rest[2:]
	dst.Parameters = make([][]byte, pc)
	for i := 0; i < pc; i++ {
		if len(rest) < 4 {
			return newInvalidFormatErr("Bind", "truncated parameter")
		}
		n := int(int32(binary.BigEndian.Uint32(rest)))
		rest = rest[4:]
		if n == -1 {
			continue
		}
		if len(rest) < n {
			return newInvalidFormatErr("Bind", "truncated parameter value")
		}
		dst.Parameters[i] = rest[:n]
		rest = rest[n:]
	}

	if len(rest) < 2 {
		return newInvalidFormatErr("Bind", "missing result format count")
	}
	rfc := int(binary.BigEndian.Uint16(rest))
	rest = rest[2:]
	if len(rest) != rfc*2 {
		return newInvalidFormatErr("Bind", "truncated result format codes")
	}
	dst.ResultFormatCodes = make([]int16, rfc)
	for i := range dst.ResultFormatCodes {
		dst.ResultFormatCodes[i] = int16(binary.BigEndian.Uint16(rest))
		rest = rest[2:]
	}

	return nil
}

func (src *Bind) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'B')
	dst = appendCString(dst, src.DestinationPortal)
	dst = appendCString(dst, src.PreparedStatement)

	dst = pgio.AppendUint16(dst, uint16(len(src.ParameterFormatCodes)))
	for _, fc := range src.ParameterFormatCodes {
		dst = pgio.AppendInt16(dst, fc)
	}

	dst = pgio.AppendUint16(dst, uint16(len(src.Parameters)))
	for _, p := range src.Parameters {
		if p == nil {
			dst = pgio.AppendInt32(dst, -1)
			continue
		}
		dst = pgio.AppendInt32(dst, int32(len(p)))
		dst = append(dst, p...)
	}

	dst = pgio.AppendUint16(dst, uint16(len(src.ResultFormatCodes)))
	for _, fc := range src.ResultFormatCodes {
		dst = pgio.AppendInt16(dst, fc)
	}

	return finishMessage(dst, sp)
}
