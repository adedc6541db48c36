package pgtype

import "fmt"

type Bool struct {
	Bool   bool
	Status Status
}

func (b *Bool) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*b = Bool{Status: Null}
	case Bool:
		*b = value
	case bool:
		*b = Bool{Bool: value, Status: Present}
	case *bool:
		if value == nil {
			*b = Bool{Status: Null}
		} else {
			*b = Bool{Bool: *value, Status: Present}
		}
	default:
		return fmt.Errorf("cannot convert %v to Bool", src)
	}
	return nil
}

func (b *Bool) Accepts(oid uint32) bool { return oid == BoolOID }

func (b *Bool) Get() any {
	switch b.Status {
	case Null:
		return nil
	case Undefined:
		return nil
	default:
		return b.Bool
	}
}

func (dst *Bool) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Bool{Status: Null}
		return nil
	}
	if len(src) != 1 {
		return fmt.Errorf("invalid length for bool: %v", len(src))
	}
	*dst = Bool{Bool: src[0] == 't', Status: Present}
	return nil
}

func (dst *Bool) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Bool{Status: Null}
		return nil
	}
	if len(src) != 1 {
		return fmt.Errorf("invalid length for bool: %v", len(src))
	}
	*dst = Bool{Bool: src[0] == 1, Status: Present}
	return nil
}

func (src Bool) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	if src.Bool {
		return append(buf, 't'), nil
	}
	return append(buf, 'f'), nil
}

func (src Bool) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	if src.Bool {
		return append(buf, 1), nil
	}
	return append(buf, 0), nil
}
