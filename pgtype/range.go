package pgtype

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// BoundType classifies a range endpoint.
type BoundType byte

const (
	Inclusive BoundType = 'i'
	Exclusive BoundType = 'e'
	Unbounded BoundType = 'U'
	Empty     BoundType = 'E'
)

const (
	rangeEmptyMask         byte = 0x01
	rangeLowerInclusiveBit byte = 0x02
	rangeUpperInclusiveBit byte = 0x04
	rangeLowerUnboundedBit byte = 0x08
	rangeUpperUnboundedBit byte = 0x10
)

// decodedRange carries the raw bound bytes out of the wire format, before
// the caller's element codec turns them into a typed Lower/Upper.
type decodedRange struct {
	Lower, Upper         []byte
	LowerType, UpperType BoundType
}

func decodeRangeBinary(src []byte) (decodedRange, error) {
	if len(src) == 0 {
		return decodedRange{}, fmt.Errorf("range binary value too short")
	}
	flags := src[0]
	rest := src[1:]

	if flags&rangeEmptyMask != 0 {
		return decodedRange{LowerType: Empty, UpperType: Empty}, nil
	}

	dr := decodedRange{LowerType: Exclusive, UpperType: Exclusive}
	if flags&rangeLowerInclusiveBit != 0 {
		dr.LowerType = Inclusive
	}
	if flags&rangeUpperInclusiveBit != 0 {
		dr.UpperType = Inclusive
	}

	if flags&rangeLowerUnboundedBit != 0 {
		dr.LowerType = Unbounded
	} else {
		if len(rest) < 4 {
			return decodedRange{}, fmt.Errorf("truncated range lower bound")
		}
		n := int32(binary.BigEndian.Uint32(rest))
		rest = rest[4:]
		if len(rest) < int(n) {
			return decodedRange{}, fmt.Errorf("truncated range lower bound value")
		}
		dr.Lower = rest[:n]
		rest = rest[n:]
	}

	if flags&rangeUpperUnboundedBit != 0 {
		dr.UpperType = Unbounded
	} else {
		if len(rest) < 4 {
			return decodedRange{}, fmt.Errorf("truncated range upper bound")
		}
		n := int32(binary.BigEndian.Uint32(rest))
		rest = rest[4:]
		if len(rest) < int(n) {
			return decodedRange{}, fmt.Errorf("truncated range upper bound value")
		}
		dr.Upper = rest[:n]
	}

	return dr, nil
}

func encodeRangeBinary(buf []byte, lowerType, upperType BoundType, lower, upper []byte) []byte {
	if lowerType == Empty || upperType == Empty {
		return append(buf, rangeEmptyMask)
	}

	var flags byte
	if lowerType == Inclusive {
		flags |= rangeLowerInclusiveBit
	}
	if upperType == Inclusive {
		flags |= rangeUpperInclusiveBit
	}
	if lowerType == Unbounded {
		flags |= rangeLowerUnboundedBit
	}
	if upperType == Unbounded {
		flags |= rangeUpperUnboundedBit
	}
	buf = append(buf, flags)

	if lowerType != Unbounded {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(lower)))
		buf = append(buf, n[:]...)
		buf = append(buf, lower...)
	}
	if upperType != Unbounded {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(upper)))
		buf = append(buf, n[:]...)
		buf = append(buf, upper...)
	}
	return buf
}

// decodedTextRange mirrors decodedRange for the `[1,10)` / `empty` literal
// format.
type decodedTextRange struct {
	Lower, Upper         string
	LowerType, UpperType BoundType
}

func decodeRangeText(src string) (decodedTextRange, error) {
	s := strings.TrimSpace(src)
	if strings.EqualFold(s, "empty") {
		return decodedTextRange{LowerType: Empty, UpperType: Empty}, nil
	}
	if len(s) < 3 {
		return decodedTextRange{}, fmt.Errorf("invalid range literal: %s", src)
	}

	var dtr decodedTextRange
	switch s[0] {
	case '[':
		dtr.LowerType = Inclusive
	case '(':
		dtr.LowerType = Exclusive
	default:
		return decodedTextRange{}, fmt.Errorf("invalid range literal: %s", src)
	}
	switch s[len(s)-1] {
	case ']':
		dtr.UpperType = Inclusive
	case ')':
		dtr.UpperType = Exclusive
	default:
		return decodedTextRange{}, fmt.Errorf("invalid range literal: %s", src)
	}

	inner := s[1 : len(s)-1]
	parts := splitRangeLiteral(inner)
	if len(parts) != 2 {
		return decodedTextRange{}, fmt.Errorf("invalid range literal: %s", src)
	}
	dtr.Lower, dtr.Upper = unquoteRangeToken(parts[0]), unquoteRangeToken(parts[1])
	if dtr.Lower == "" {
		dtr.LowerType = Unbounded
	}
	if dtr.Upper == "" {
		dtr.UpperType = Unbounded
	}
	return dtr, nil
}

func splitRangeLiteral(s string) []string {
	var parts []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		default:
		}
		if c != '"' {
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

func unquoteRangeToken(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}

func encodeRangeText(buf []byte, lowerType, upperType BoundType, lower, upper []byte) []byte {
	if lowerType == Empty || upperType == Empty {
		return append(buf, "empty"...)
	}
	if lowerType == Inclusive {
		buf = append(buf, '[')
	} else {
		buf = append(buf, '(')
	}
	buf = append(buf, lower...)
	buf = append(buf, ',')
	buf = append(buf, upper...)
	if upperType == Inclusive {
		buf = append(buf, ']')
	} else {
		buf = append(buf, ')')
	}
	return buf
}

// Int4Range is a range of int4 values.
type Int4Range struct {
	Lower, Upper         Int4
	LowerType, UpperType BoundType
	Status               Status
}

func (dst *Int4Range) Set(src any) error {
	if src == nil {
		*dst = Int4Range{Status: Null}
		return nil
	}
	return fmt.Errorf("cannot convert %v to Int4Range", src)
}

func (src Int4Range) Get() any {
	if src.Status != Present {
		return nil
	}
	return src
}

func (dst *Int4Range) Accepts(oid uint32) bool { return oid == Int4RangeOID }

func (dst *Int4Range) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int4Range{Status: Null}
		return nil
	}
	dr, err := decodeRangeBinary(src)
	if err != nil {
		return err
	}
	r := Int4Range{LowerType: dr.LowerType, UpperType: dr.UpperType, Status: Present}
	if dr.LowerType == Inclusive || dr.LowerType == Exclusive {
		if err := r.Lower.DecodeBinary(ci, dr.Lower); err != nil {
			return err
		}
	}
	if dr.UpperType == Inclusive || dr.UpperType == Exclusive {
		if err := r.Upper.DecodeBinary(ci, dr.Upper); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (dst *Int4Range) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int4Range{Status: Null}
		return nil
	}
	dtr, err := decodeRangeText(string(src))
	if err != nil {
		return err
	}
	r := Int4Range{LowerType: dtr.LowerType, UpperType: dtr.UpperType, Status: Present}
	if dtr.LowerType == Inclusive || dtr.LowerType == Exclusive {
		if err := r.Lower.DecodeText(ci, []byte(dtr.Lower)); err != nil {
			return err
		}
	}
	if dtr.UpperType == Inclusive || dtr.UpperType == Exclusive {
		if err := r.Upper.DecodeText(ci, []byte(dtr.Upper)); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (src Int4Range) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeBinary(buf, src.LowerType, src.UpperType, lower, upper), nil
}

func (src Int4Range) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeText(buf, src.LowerType, src.UpperType, lower, upper), nil
}

// Int8Range is a range of int8 values.
type Int8Range struct {
	Lower, Upper         Int8
	LowerType, UpperType BoundType
	Status               Status
}

func (dst *Int8Range) Set(src any) error {
	if src == nil {
		*dst = Int8Range{Status: Null}
		return nil
	}
	return fmt.Errorf("cannot convert %v to Int8Range", src)
}

func (src Int8Range) Get() any {
	if src.Status != Present {
		return nil
	}
	return src
}

func (dst *Int8Range) Accepts(oid uint32) bool { return oid == Int8RangeOID }

func (dst *Int8Range) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int8Range{Status: Null}
		return nil
	}
	dr, err := decodeRangeBinary(src)
	if err != nil {
		return err
	}
	r := Int8Range{LowerType: dr.LowerType, UpperType: dr.UpperType, Status: Present}
	if dr.LowerType == Inclusive || dr.LowerType == Exclusive {
		if err := r.Lower.DecodeBinary(ci, dr.Lower); err != nil {
			return err
		}
	}
	if dr.UpperType == Inclusive || dr.UpperType == Exclusive {
		if err := r.Upper.DecodeBinary(ci, dr.Upper); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (dst *Int8Range) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Int8Range{Status: Null}
		return nil
	}
	dtr, err := decodeRangeText(string(src))
	if err != nil {
		return err
	}
	r := Int8Range{LowerType: dtr.LowerType, UpperType: dtr.UpperType, Status: Present}
	if dtr.LowerType == Inclusive || dtr.LowerType == Exclusive {
		if err := r.Lower.DecodeText(ci, []byte(dtr.Lower)); err != nil {
			return err
		}
	}
	if dtr.UpperType == Inclusive || dtr.UpperType == Exclusive {
		if err := r.Upper.DecodeText(ci, []byte(dtr.Upper)); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (src Int8Range) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeBinary(buf, src.LowerType, src.UpperType, lower, upper), nil
}

func (src Int8Range) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeText(buf, src.LowerType, src.UpperType, lower, upper), nil
}

// NumRange is a range of numeric values.
type NumRange struct {
	Lower, Upper         Numeric
	LowerType, UpperType BoundType
	Status               Status
}

func (dst *NumRange) Set(src any) error {
	if src == nil {
		*dst = NumRange{Status: Null}
		return nil
	}
	return fmt.Errorf("cannot convert %v to NumRange", src)
}

func (src NumRange) Get() any {
	if src.Status != Present {
		return nil
	}
	return src
}

func (dst *NumRange) Accepts(oid uint32) bool { return oid == NumRangeOID }

func (dst *NumRange) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = NumRange{Status: Null}
		return nil
	}
	dr, err := decodeRangeBinary(src)
	if err != nil {
		return err
	}
	r := NumRange{LowerType: dr.LowerType, UpperType: dr.UpperType, Status: Present}
	if dr.LowerType == Inclusive || dr.LowerType == Exclusive {
		if err := r.Lower.DecodeBinary(ci, dr.Lower); err != nil {
			return err
		}
	}
	if dr.UpperType == Inclusive || dr.UpperType == Exclusive {
		if err := r.Upper.DecodeBinary(ci, dr.Upper); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (dst *NumRange) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = NumRange{Status: Null}
		return nil
	}
	dtr, err := decodeRangeText(string(src))
	if err != nil {
		return err
	}
	r := NumRange{LowerType: dtr.LowerType, UpperType: dtr.UpperType, Status: Present}
	if dtr.LowerType == Inclusive || dtr.LowerType == Exclusive {
		if err := r.Lower.DecodeText(ci, []byte(dtr.Lower)); err != nil {
			return err
		}
	}
	if dtr.UpperType == Inclusive || dtr.UpperType == Exclusive {
		if err := r.Upper.DecodeText(ci, []byte(dtr.Upper)); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (src NumRange) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeBinary(buf, src.LowerType, src.UpperType, lower, upper), nil
}

func (src NumRange) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeText(buf, src.LowerType, src.UpperType, lower, upper), nil
}

// TsRange is a range of timestamp (without time zone) values.
type TsRange struct {
	Lower, Upper         Timestamp
	LowerType, UpperType BoundType
	Status               Status
}

func (dst *TsRange) Set(src any) error {
	if src == nil {
		*dst = TsRange{Status: Null}
		return nil
	}
	return fmt.Errorf("cannot convert %v to TsRange", src)
}

func (src TsRange) Get() any {
	if src.Status != Present {
		return nil
	}
	return src
}

func (dst *TsRange) Accepts(oid uint32) bool { return oid == TsRangeOID }

func (dst *TsRange) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = TsRange{Status: Null}
		return nil
	}
	dr, err := decodeRangeBinary(src)
	if err != nil {
		return err
	}
	r := TsRange{LowerType: dr.LowerType, UpperType: dr.UpperType, Status: Present}
	if dr.LowerType == Inclusive || dr.LowerType == Exclusive {
		if err := r.Lower.DecodeBinary(ci, dr.Lower); err != nil {
			return err
		}
	}
	if dr.UpperType == Inclusive || dr.UpperType == Exclusive {
		if err := r.Upper.DecodeBinary(ci, dr.Upper); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (dst *TsRange) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = TsRange{Status: Null}
		return nil
	}
	dtr, err := decodeRangeText(string(src))
	if err != nil {
		return err
	}
	r := TsRange{LowerType: dtr.LowerType, UpperType: dtr.UpperType, Status: Present}
	if dtr.LowerType == Inclusive || dtr.LowerType == Exclusive {
		if err := r.Lower.DecodeText(ci, []byte(dtr.Lower)); err != nil {
			return err
		}
	}
	if dtr.UpperType == Inclusive || dtr.UpperType == Exclusive {
		if err := r.Upper.DecodeText(ci, []byte(dtr.Upper)); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (src TsRange) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeBinary(buf, src.LowerType, src.UpperType, lower, upper), nil
}

func (src TsRange) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeText(buf, src.LowerType, src.UpperType, lower, upper), nil
}

// TsTzRange is a range of timestamp with time zone values.
type TsTzRange struct {
	Lower, Upper         Timestamptz
	LowerType, UpperType BoundType
	Status               Status
}

func (dst *TsTzRange) Set(src any) error {
	if src == nil {
		*dst = TsTzRange{Status: Null}
		return nil
	}
	return fmt.Errorf("cannot convert %v to TsTzRange", src)
}

func (src TsTzRange) Get() any {
	if src.Status != Present {
		return nil
	}
	return src
}

func (dst *TsTzRange) Accepts(oid uint32) bool { return oid == TsTzRangeOID }

func (dst *TsTzRange) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = TsTzRange{Status: Null}
		return nil
	}
	dr, err := decodeRangeBinary(src)
	if err != nil {
		return err
	}
	r := TsTzRange{LowerType: dr.LowerType, UpperType: dr.UpperType, Status: Present}
	if dr.LowerType == Inclusive || dr.LowerType == Exclusive {
		if err := r.Lower.DecodeBinary(ci, dr.Lower); err != nil {
			return err
		}
	}
	if dr.UpperType == Inclusive || dr.UpperType == Exclusive {
		if err := r.Upper.DecodeBinary(ci, dr.Upper); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (dst *TsTzRange) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = TsTzRange{Status: Null}
		return nil
	}
	dtr, err := decodeRangeText(string(src))
	if err != nil {
		return err
	}
	r := TsTzRange{LowerType: dtr.LowerType, UpperType: dtr.UpperType, Status: Present}
	if dtr.LowerType == Inclusive || dtr.LowerType == Exclusive {
		if err := r.Lower.DecodeText(ci, []byte(dtr.Lower)); err != nil {
			return err
		}
	}
	if dtr.UpperType == Inclusive || dtr.UpperType == Exclusive {
		if err := r.Upper.DecodeText(ci, []byte(dtr.Upper)); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (src TsTzRange) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeBinary(buf, src.LowerType, src.UpperType, lower, upper), nil
}

func (src TsTzRange) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeText(buf, src.LowerType, src.UpperType, lower, upper), nil
}

// DateRange is a range of date values.
type DateRange struct {
	Lower, Upper         Date
	LowerType, UpperType BoundType
	Status               Status
}

func (dst *DateRange) Set(src any) error {
	if src == nil {
		*dst = DateRange{Status: Null}
		return nil
	}
	return fmt.Errorf("cannot convert %v to DateRange", src)
}

func (src DateRange) Get() any {
	if src.Status != Present {
		return nil
	}
	return src
}

func (dst *DateRange) Accepts(oid uint32) bool { return oid == DateRangeOID }

func (dst *DateRange) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = DateRange{Status: Null}
		return nil
	}
	dr, err := decodeRangeBinary(src)
	if err != nil {
		return err
	}
	r := DateRange{LowerType: dr.LowerType, UpperType: dr.UpperType, Status: Present}
	if dr.LowerType == Inclusive || dr.LowerType == Exclusive {
		if err := r.Lower.DecodeBinary(ci, dr.Lower); err != nil {
			return err
		}
	}
	if dr.UpperType == Inclusive || dr.UpperType == Exclusive {
		if err := r.Upper.DecodeBinary(ci, dr.Upper); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (dst *DateRange) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = DateRange{Status: Null}
		return nil
	}
	dtr, err := decodeRangeText(string(src))
	if err != nil {
		return err
	}
	r := DateRange{LowerType: dtr.LowerType, UpperType: dtr.UpperType, Status: Present}
	if dtr.LowerType == Inclusive || dtr.LowerType == Exclusive {
		if err := r.Lower.DecodeText(ci, []byte(dtr.Lower)); err != nil {
			return err
		}
	}
	if dtr.UpperType == Inclusive || dtr.UpperType == Exclusive {
		if err := r.Upper.DecodeText(ci, []byte(dtr.Upper)); err != nil {
			return err
		}
	}
	*dst = r
	return nil
}

func (src DateRange) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeBinary(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeBinary(buf, src.LowerType, src.UpperType, lower, upper), nil
}

func (src DateRange) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var lower, upper []byte
	var err error
	if src.LowerType == Inclusive || src.LowerType == Exclusive {
		if lower, err = src.Lower.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	if src.UpperType == Inclusive || src.UpperType == Exclusive {
		if upper, err = src.Upper.EncodeText(ci, nil); err != nil {
			return nil, err
		}
	}
	return encodeRangeText(buf, src.LowerType, src.UpperType, lower, upper), nil
}
