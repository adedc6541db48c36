package pgtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
)

type Float4 struct {
	Float  float32
	Status Status
}

type Float8 struct {
	Float  float64
	Status Status
}

func (dst *Float4) Set(src any) error {
	f, isNull, err := toFloat64(src)
	if err != nil {
		return err
	}
	if isNull {
		*dst = Float4{Status: Null}
		return nil
	}
	*dst = Float4{Float: float32(f), Status: Present}
	return nil
}

func (dst *Float8) Set(src any) error {
	f, isNull, err := toFloat64(src)
	if err != nil {
		return err
	}
	if isNull {
		*dst = Float8{Status: Null}
		return nil
	}
	*dst = Float8{Float: f, Status: Present}
	return nil
}

func (dst *Float4) Accepts(oid uint32) bool { return oid == Float4OID }
func (dst *Float8) Accepts(oid uint32) bool { return oid == Float8OID }

func (src Float4) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Float
}

func (src Float8) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Float
}

func toFloat64(src any) (f float64, isNull bool, err error) {
	switch value := src.(type) {
	case nil:
		return 0, true, nil
	case float32:
		return float64(value), false, nil
	case float64:
		return value, false, nil
	case int64:
		return float64(value), false, nil
	case string:
		f, err = strconv.ParseFloat(value, 64)
		return f, false, err
	default:
		return 0, false, fmt.Errorf("cannot convert %v to float", src)
	}
}

func (dst *Float4) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Float4{Status: Null}
		return nil
	}
	n, err := strconv.ParseFloat(string(src), 32)
	if err != nil {
		return err
	}
	*dst = Float4{Float: float32(n), Status: Present}
	return nil
}

func (dst *Float4) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Float4{Status: Null}
		return nil
	}
	if len(src) != 4 {
		return fmt.Errorf("invalid length for float4: %v", len(src))
	}
	*dst = Float4{Float: math.Float32frombits(binary.BigEndian.Uint32(src)), Status: Present}
	return nil
}

func (src Float4) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, strconv.FormatFloat(float64(src.Float), 'f', -1, 32)...), nil
}

func (src Float4) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], math.Float32bits(src.Float))
	return append(buf, b[:]...), nil
}

func (dst *Float8) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Float8{Status: Null}
		return nil
	}
	n, err := strconv.ParseFloat(string(src), 64)
	if err != nil {
		return err
	}
	*dst = Float8{Float: n, Status: Present}
	return nil
}

func (dst *Float8) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Float8{Status: Null}
		return nil
	}
	if len(src) != 8 {
		return fmt.Errorf("invalid length for float8: %v", len(src))
	}
	*dst = Float8{Float: math.Float64frombits(binary.BigEndian.Uint64(src)), Status: Present}
	return nil
}

func (src Float8) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, strconv.FormatFloat(src.Float, 'f', -1, 64)...), nil
}

func (src Float8) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(src.Float))
	return append(buf, b[:]...), nil
}
