package pgtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Vec2 struct {
	X float64
	Y float64
}

type Point struct {
	P      Vec2
	Status Status
}

func (dst *Point) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Point{Status: Null}
	case Vec2:
		*dst = Point{P: value, Status: Present}
	default:
		return fmt.Errorf("cannot convert %v to Point", src)
	}
	return nil
}

func (dst *Point) Accepts(oid uint32) bool { return oid == PointOID }

func (src Point) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.P
}

func (dst *Point) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Point{Status: Null}
		return nil
	}
	s := strings.Trim(string(src), "()")
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid point: %s", src)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return err
	}
	*dst = Point{P: Vec2{X: x, Y: y}, Status: Present}
	return nil
}

func (dst *Point) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Point{Status: Null}
		return nil
	}
	if len(src) != 16 {
		return fmt.Errorf("invalid length for point: %v", len(src))
	}
	x := math.Float64frombits(binary.BigEndian.Uint64(src))
	y := math.Float64frombits(binary.BigEndian.Uint64(src[8:]))
	*dst = Point{P: Vec2{X: x, Y: y}, Status: Present}
	return nil
}

func (src Point) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, fmt.Sprintf("(%s,%s)",
		strconv.FormatFloat(src.P.X, 'f', -1, 64),
		strconv.FormatFloat(src.P.Y, 'f', -1, 64))...), nil
}

func (src Point) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], math.Float64bits(src.P.X))
	binary.BigEndian.PutUint64(b[8:], math.Float64bits(src.P.Y))
	return append(buf, b[:]...), nil
}
