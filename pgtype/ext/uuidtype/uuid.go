// Package uuidtype adds the uuid data type as an optional extension,
// registered explicitly by the caller rather than loaded into every Map by
// default.
package uuidtype

import (
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/coriolisdb/pgwire/pgtype"
)

const OID = 2950

type UUID struct {
	UUID   uuid.UUID
	Status pgtype.Status
}

// Register adds the uuid codec to m under its well-known OID and name.
func Register(m *pgtype.Map) {
	m.RegisterDataType(pgtype.DataType{
		Value:      &UUID{},
		Name:       "uuid",
		OID:        OID,
		FormatCode: pgtype.BinaryFormatCode,
	})
}

func (dst *UUID) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = UUID{Status: pgtype.Null}
	case uuid.UUID:
		*dst = UUID{UUID: value, Status: pgtype.Present}
	case [16]byte:
		*dst = UUID{UUID: uuid.UUID(value), Status: pgtype.Present}
	case []byte:
		if len(value) != 16 {
			return fmt.Errorf("[]byte must be 16 bytes to convert to UUID: %d", len(value))
		}
		u := UUID{Status: pgtype.Present}
		copy(u.UUID[:], value)
		*dst = u
	case string:
		u, err := uuid.FromString(value)
		if err != nil {
			return err
		}
		*dst = UUID{UUID: u, Status: pgtype.Present}
	default:
		return fmt.Errorf("cannot convert %v to UUID", src)
	}
	return nil
}

func (dst *UUID) Accepts(oid uint32) bool { return oid == OID }

func (src UUID) Get() any {
	if src.Status != pgtype.Present {
		return nil
	}
	return src.UUID
}

func (dst *UUID) DecodeText(ci *pgtype.Map, src []byte) error {
	if src == nil {
		*dst = UUID{Status: pgtype.Null}
		return nil
	}
	u, err := uuid.FromString(string(src))
	if err != nil {
		return err
	}
	*dst = UUID{UUID: u, Status: pgtype.Present}
	return nil
}

func (dst *UUID) DecodeBinary(ci *pgtype.Map, src []byte) error {
	if src == nil {
		*dst = UUID{Status: pgtype.Null}
		return nil
	}
	if len(src) != 16 {
		return fmt.Errorf("invalid length for UUID: %v", len(src))
	}
	u := UUID{Status: pgtype.Present}
	copy(u.UUID[:], src)
	*dst = u
	return nil
}

func (src UUID) EncodeText(ci *pgtype.Map, buf []byte) ([]byte, error) {
	if src.Status != pgtype.Present {
		return nil, nil
	}
	return append(buf, src.UUID.String()...), nil
}

func (src UUID) EncodeBinary(ci *pgtype.Map, buf []byte) ([]byte, error) {
	if src.Status != pgtype.Present {
		return nil, nil
	}
	return append(buf, src.UUID[:]...), nil
}
