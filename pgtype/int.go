package pgtype

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

type Int2 struct {
	Int    int16
	Status Status
}

type Int4 struct {
	Int    int32
	Status Status
}

type Int8 struct {
	Int    int64
	Status Status
}

func (dst *Int2) Set(src any) error {
	n, isNull, err := toInt64(src)
	if err != nil {
		return err
	}
	if isNull {
		*dst = Int2{Status: Null}
		return nil
	}
	*dst = Int2{Int: int16(n), Status: Present}
	return nil
}

func (dst *Int4) Set(src any) error {
	n, isNull, err := toInt64(src)
	if err != nil {
		return err
	}
	if isNull {
		*dst = Int4{Status: Null}
		return nil
	}
	*dst = Int4{Int: int32(n), Status: Present}
	return nil
}

func (dst *Int8) Set(src any) error {
	n, isNull, err := toInt64(src)
	if err != nil {
		return err
	}
	if isNull {
		*dst = Int8{Status: Null}
		return nil
	}
	*dst = Int8{Int: n, Status: Present}
	return nil
}

func (dst *Int2) Accepts(oid uint32) bool { return oid == Int2OID }
func (dst *Int4) Accepts(oid uint32) bool { return oid == Int4OID }
func (dst *Int8) Accepts(oid uint32) bool { return oid == Int8OID }

func (src Int2) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Int
}

func (src Int4) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Int
}

func (src Int8) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Int
}

func toInt64(src any) (n int64, isNull bool, err error) {
	switch value := src.(type) {
	case nil:
		return 0, true, nil
	case int8:
		return int64(value), false, nil
	case int16:
		return int64(value), false, nil
	case int32:
		return int64(value), false, nil
	case int64:
		return value, false, nil
	case int:
		return int64(value), false, nil
	case uint32:
		return int64(value), false, nil
	case string:
		n, err = strconv.ParseInt(value, 10, 64)
		return n, false, err
	default:
		return 0, false, fmt.Errorf("cannot convert %v to integer", src)
	}
}

func (dst *Int2) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int2{Status: Null}
		return nil
	}
	n, err := strconv.ParseInt(string(src), 10, 16)
	if err != nil {
		return err
	}
	*dst = Int2{Int: int16(n), Status: Present}
	return nil
}

func (dst *Int2) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int2{Status: Null}
		return nil
	}
	if len(src) != 2 {
		return fmt.Errorf("invalid length for int2: %v", len(src))
	}
	*dst = Int2{Int: int16(binary.BigEndian.Uint16(src)), Status: Present}
	return nil
}

func (src Int2) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, strconv.FormatInt(int64(src.Int), 10)...), nil
}

func (src Int2) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, byte(src.Int>>8), byte(src.Int)), nil
}

func (dst *Int4) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int4{Status: Null}
		return nil
	}
	n, err := strconv.ParseInt(string(src), 10, 32)
	if err != nil {
		return err
	}
	*dst = Int4{Int: int32(n), Status: Present}
	return nil
}

func (dst *Int4) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int4{Status: Null}
		return nil
	}
	if len(src) != 4 {
		return fmt.Errorf("invalid length for int4: %v", len(src))
	}
	*dst = Int4{Int: int32(binary.BigEndian.Uint32(src)), Status: Present}
	return nil
}

func (src Int4) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, strconv.FormatInt(int64(src.Int), 10)...), nil
}

func (src Int4) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(src.Int))
	return append(buf, b[:]...), nil
}

func (dst *Int8) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int8{Status: Null}
		return nil
	}
	n, err := strconv.ParseInt(string(src), 10, 64)
	if err != nil {
		return err
	}
	*dst = Int8{Int: n, Status: Present}
	return nil
}

func (dst *Int8) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int8{Status: Null}
		return nil
	}
	if len(src) != 8 {
		return fmt.Errorf("invalid length for int8: %v", len(src))
	}
	*dst = Int8{Int: int64(binary.BigEndian.Uint64(src)), Status: Present}
	return nil
}

func (src Int8) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, strconv.FormatInt(src.Int, 10)...), nil
}

func (src Int8) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(src.Int))
	return append(buf, b[:]...), nil
}
