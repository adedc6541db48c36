package pgtype

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON carries a JSON document as raw bytes; it is never unmarshaled
// eagerly, only checked for well-formedness on decode and encode.
type JSON struct {
	Bytes  []byte
	Status Status
}

func (dst *JSON) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = JSON{Status: Null}
		return nil
	case string:
		*dst = JSON{Bytes: []byte(value), Status: Present}
		return nil
	case []byte:
		if value == nil {
			*dst = JSON{Status: Null}
			return nil
		}
		*dst = JSON{Bytes: value, Status: Present}
		return nil
	default:
		buf, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("cannot marshal %v to JSON: %w", src, err)
		}
		*dst = JSON{Bytes: buf, Status: Present}
		return nil
	}
}

func (dst *JSON) Accepts(oid uint32) bool { return oid == JSONOID }

func (src JSON) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Bytes
}

func (dst *JSON) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = JSON{Status: Null}
		return nil
	}
	if !json.Valid(src) {
		return fmt.Errorf("invalid JSON: %s", src)
	}
	*dst = JSON{Bytes: append([]byte(nil), src...), Status: Present}
	return nil
}

func (dst *JSON) DecodeBinary(ci *Map, src []byte) error {
	return dst.DecodeText(ci, src)
}

func (src JSON) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	if !json.Valid(src.Bytes) {
		return nil, fmt.Errorf("invalid JSON: %s", src.Bytes)
	}
	return append(buf, bytes.TrimSpace(src.Bytes)...), nil
}

func (src JSON) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	return src.EncodeText(ci, buf)
}
