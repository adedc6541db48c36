package pgtype

import "fmt"

// jsonbVersion is the single version byte JSONB's binary format prefixes
// every value with. PostgreSQL has only ever defined version 1.
const jsonbVersion = 1

// JSONB shares JSON's representation; only its binary wire format differs,
// by the leading version byte.
type JSONB JSON

func (dst *JSONB) Set(src any) error {
	return (*JSON)(dst).Set(src)
}

func (src JSONB) Get() any {
	return JSON(src).Get()
}

func (dst *JSONB) Accepts(oid uint32) bool { return oid == JSONBOID }

func (dst *JSONB) DecodeText(ci *Map, src []byte) error {
	return (*JSON)(dst).DecodeText(ci, src)
}

func (dst *JSONB) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = JSONB{Status: Null}
		return nil
	}
	if len(src) == 0 {
		return fmt.Errorf("jsonb too short")
	}
	if src[0] != jsonbVersion {
		return fmt.Errorf("unsupported jsonb version: %d", src[0])
	}
	return (*JSON)(dst).DecodeText(ci, src[1:])
}

func (src JSONB) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	return JSON(src).EncodeText(ci, buf)
}

func (src JSONB) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	buf = append(buf, jsonbVersion)
	return JSON(src).EncodeText(ci, buf)
}
