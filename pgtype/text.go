package pgtype

// Text backs text, varchar, bpchar and name: PostgreSQL stores and sends
// all four as plain UTF-8 bytes, so they share one codec distinguished
// only by the OID they're registered under.
type Text struct {
	String string
	Status Status
}

func (dst *Text) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Text{Status: Null}
	case string:
		*dst = Text{String: value, Status: Present}
	case *string:
		if value == nil {
			*dst = Text{Status: Null}
		} else {
			*dst = Text{String: *value, Status: Present}
		}
	case []byte:
		if value == nil {
			*dst = Text{Status: Null}
		} else {
			*dst = Text{String: string(value), Status: Present}
		}
	default:
		return textSetErr(src)
	}
	return nil
}

func (dst *Text) Accepts(oid uint32) bool {
	switch oid {
	case TextOID, VarcharOID, BPCharOID, NameOID:
		return true
	default:
		return false
	}
}

func (src Text) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.String
}

func (dst *Text) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Text{Status: Null}
		return nil
	}
	*dst = Text{String: string(src), Status: Present}
	return nil
}

func (dst *Text) DecodeBinary(ci *Map, src []byte) error {
	return dst.DecodeText(ci, src)
}

func (src Text) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, src.String...), nil
}

func (src Text) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	return src.EncodeText(ci, buf)
}

func textSetErr(src any) error {
	return &cannotConvertError{value: src, target: "Text"}
}

type cannotConvertError struct {
	value  any
	target string
}

func (e *cannotConvertError) Error() string {
	return "cannot convert value to " + e.target
}
