package pgtype

import (
	"encoding/hex"
	"fmt"
)

// Bytea carries a raw byte string. The text format uses PostgreSQL's
// "\x"-prefixed hex encoding; binary is the bytes as-is.
type Bytea struct {
	Bytes  []byte
	Status Status
}

func (dst *Bytea) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Bytea{Status: Null}
	case []byte:
		if value == nil {
			*dst = Bytea{Status: Null}
		} else {
			*dst = Bytea{Bytes: value, Status: Present}
		}
	default:
		return fmt.Errorf("cannot convert %v to Bytea", src)
	}
	return nil
}

func (dst *Bytea) Accepts(oid uint32) bool { return oid == ByteaOID }

func (src Bytea) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Bytes
}

func (dst *Bytea) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Bytea{Status: Null}
		return nil
	}
	if len(src) < 2 || src[0] != '\\' || src[1] != 'x' {
		return fmt.Errorf("invalid hex format for bytea")
	}
	buf := make([]byte, hex.DecodedLen(len(src)-2))
	if _, err := hex.Decode(buf, src[2:]); err != nil {
		return err
	}
	*dst = Bytea{Bytes: buf, Status: Present}
	return nil
}

func (dst *Bytea) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Bytea{Status: Null}
		return nil
	}
	*dst = Bytea{Bytes: append([]byte(nil), src...), Status: Present}
	return nil
}

func (src Bytea) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	buf = append(buf, '\\', 'x')
	buf = append(buf, []byte(hex.EncodeToString(src.Bytes))...)
	return buf, nil
}

func (src Bytea) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, src.Bytes...), nil
}
