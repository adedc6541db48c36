package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// FieldDescription describes one result column, exactly as reported by the
// server in response to Describe.
type FieldDescription struct {
	Name                 string
	TableOID             uint32
	TableAttributeNumber uint16
	DataTypeOID          uint32
	DataTypeSize         int16
	TypeModifier         uint32
	Format               int16
}

// RowDescription reports the shape of the rows a statement or portal will
// produce.
type RowDescription struct {
	Fields []FieldDescription
}

func (*RowDescription) Backend() {}

func (dst *RowDescription) Decode(src []byte) error {
	if len(src) < 2 {
		return newInvalidFormatErr("RowDescription", "missing field count")
	}
	count := int(binary.BigEndian.Uint16(src))
	rest := src[2:]

	fields := make([]FieldDescription, count)
	for i := 0; i < count; i++ {
		var name string
		var ok bool
		rest, name, ok = getCString(rest)
		if !ok {
			return newInvalidFormatErr("RowDescription", "missing field name terminator")
		}
		if len(rest) < 18 {
			return newInvalidFormatErr("RowDescription", "truncated field descriptor")
		}
		fields[i] = FieldDescription{
			Name:                 name,
			TableOID:             binary.BigEndian.Uint32(rest),
			TableAttributeNumber: binary.BigEndian.Uint16(rest[4:]),
			DataTypeOID:          binary.BigEndian.Uint32(rest[6:]),
			DataTypeSize:         int16(binary.BigEndian.Uint16(rest[10:])),
			TypeModifier:         binary.BigEndian.Uint32(rest[12:]),
			Format:               int16(binary.BigEndian.Uint16(rest[16:])),
		}
		rest = rest[18:]
	}

	dst.Fields = fields
	return nil
}

func (src *RowDescription) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'T')
	dst = pgio.AppendUint16(dst, uint16(len(src.Fields)))
	for _, fd := range src.Fields {
		dst = appendCString(dst, fd.Name)
		dst = pgio.AppendUint32(dst, fd.TableOID)
		dst = pgio.AppendUint16(dst, fd.TableAttributeNumber)
		dst = pgio.AppendUint32(dst, fd.DataTypeOID)
		dst = pgio.AppendInt16(dst, fd.DataTypeSize)
		dst = pgio.AppendUint32(dst, fd.TypeModifier)
		dst = pgio.AppendInt16(dst, fd.Format)
	}
	return finishMessage(dst, sp)
}

// NoData is returned instead of RowDescription when the described object
// produces no rows (e.g. an INSERT with no RETURNING clause).
type NoData struct{}

func (*NoData) Backend() {}

func (*NoData) Decode(src []byte) error {
	if len(src) != 0 {
		return newInvalidLenErr("NoData", 0, len(src))
	}
	return nil
}

func (src *NoData) Encode(dst []byte) ([]byte, error) {
	return append(dst, 'n', 0, 0, 0, 4), nil
}

// ParameterDescription reports the OIDs the server inferred for a
// statement's placeholders.
type ParameterDescription struct {
	ParameterOIDs []uint32
}

func (*ParameterDescription) Backend() {}

func (dst *ParameterDescription) Decode(src []byte) error {
	if len(src) < 2 {
		return newInvalidFormatErr("ParameterDescription", "missing parameter count")
	}
	count := int(binary.BigEndian.Uint16(src))
	rest := src[2:]
	if len(rest) != count*4 {
		return newInvalidFormatErr("ParameterDescription", "parameter count mismatch")
	}
	dst.ParameterOIDs = make([]uint32, count)
	for i := range dst.ParameterOIDs {
		dst.ParameterOIDs[i] = binary.BigEndian.Uint32(rest[i*4:])
	}
	return nil
}

func (src *ParameterDescription) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 't')
	dst = pgio.AppendUint16(dst, uint16(len(src.ParameterOIDs)))
	for _, oid := range src.ParameterOIDs {
		dst = pgio.AppendUint32(dst, oid)
	}
	return finishMessage(dst, sp)
}
