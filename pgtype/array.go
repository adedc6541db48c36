package pgtype

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// ArrayHeader is the binary prefix every array value carries: dimensions,
// whether any element is NULL, and the element type's own OID.
type ArrayHeader struct {
	ContainsNull bool
	ElementOID   int32
	Dimensions   []ArrayDimension
}

type ArrayDimension struct {
	Length     int32
	LowerBound int32
}

func (ah *ArrayHeader) decodeBinary(src []byte) (rest []byte, err error) {
	if len(src) < 12 {
		return nil, fmt.Errorf("invalid array header")
	}
	numDims := int32(binary.BigEndian.Uint32(src))
	containsNull := binary.BigEndian.Uint32(src[4:])
	ah.ContainsNull = containsNull == 1
	ah.ElementOID = int32(binary.BigEndian.Uint32(src[8:]))
	rest = src[12:]

	if numDims > 0 {
		ah.Dimensions = make([]ArrayDimension, numDims)
	}
	for i := range ah.Dimensions {
		if len(rest) < 8 {
			return nil, fmt.Errorf("truncated array dimension")
		}
		ah.Dimensions[i].Length = int32(binary.BigEndian.Uint32(rest))
		ah.Dimensions[i].LowerBound = int32(binary.BigEndian.Uint32(rest[4:]))
		rest = rest[8:]
	}
	return rest, nil
}

func (ah *ArrayHeader) encodeBinary(buf []byte) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(len(ah.Dimensions)))
	buf = append(buf, b[:]...)
	var n int32
	if ah.ContainsNull {
		n = 1
	}
	binary.BigEndian.PutUint32(b[:], uint32(n))
	buf = append(buf, b[:]...)
	binary.BigEndian.PutUint32(b[:], uint32(ah.ElementOID))
	buf = append(buf, b[:]...)
	for _, d := range ah.Dimensions {
		binary.BigEndian.PutUint32(b[:], uint32(d.Length))
		buf = append(buf, b[:]...)
		binary.BigEndian.PutUint32(b[:], uint32(d.LowerBound))
		buf = append(buf, b[:]...)
	}
	return buf
}

// Array is an N-dimensional array of elements whose own codec is looked up
// in the Map by ElementOID at encode/decode time. Every axis is carried in
// Header.Dimensions; Elements stays flat in row-major order, matching the
// wire layout, for every dimensionality.
type Array struct {
	Elements []Value
	Header   ArrayHeader
	Status   Status
}

// NewElementFunc constructs a fresh zero Value for an array's element
// codec; the array codec doesn't know the concrete element type itself.
type NewElementFunc func() Value

// Set accepts nil, a flat []Value, or a nested []any built the way Go
// literals describe multi-dimensional arrays ([]any{[]any{a, b}, []any{c,
// d}}). A SQL NULL element is represented by a leaf Value whose own
// Status is Null (e.g. &Int4{Status: Null}), not by a nil entry in the
// slice, since Set has no element constructor to build one from.
func (dst *Array) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Array{Status: Null}
	case []Value:
		if value == nil {
			*dst = Array{Status: Null}
		} else {
			*dst = Array{
				Elements: value,
				Header:   ArrayHeader{Dimensions: []ArrayDimension{{Length: int32(len(value)), LowerBound: 1}}},
				Status:   Present,
			}
		}
	case []any:
		if value == nil {
			*dst = Array{Status: Null}
			return nil
		}
		elements, dims, err := flattenArraySet(value)
		if err != nil {
			return err
		}
		*dst = Array{Elements: elements, Header: ArrayHeader{Dimensions: dimsToHeader(dims)}, Status: Present}
	default:
		return fmt.Errorf("cannot convert %v to Array", src)
	}
	return nil
}

// flattenArraySet walks a nested []any depth-first, flattening it to
// row-major Elements and recording each axis' length, the same shape
// decodeArrayText discovers for the text wire format.
func flattenArraySet(items []any) (elements []Value, dims []int32, err error) {
	if len(items) == 0 {
		return nil, []int32{0}, nil
	}

	if _, ok := items[0].([]any); ok {
		var childDims []int32
		for i, item := range items {
			child, ok := item.([]any)
			if !ok {
				return nil, nil, fmt.Errorf("mixed nesting depth in array literal at index %d", i)
			}
			childElements, cd, err := flattenArraySet(child)
			if err != nil {
				return nil, nil, err
			}
			if i == 0 {
				childDims = cd
			} else if !equalDims(childDims, cd) {
				return nil, nil, fmt.Errorf("mismatched array dimensions at index %d", i)
			}
			elements = append(elements, childElements...)
		}
		return elements, append([]int32{int32(len(items))}, childDims...), nil
	}

	elements = make([]Value, len(items))
	for i, item := range items {
		v, ok := item.(Value)
		if !ok {
			return nil, nil, fmt.Errorf("cannot convert %v to array element", item)
		}
		elements[i] = v
	}
	return elements, []int32{int32(len(items))}, nil
}

func equalDims(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dimsToHeader(dims []int32) []ArrayDimension {
	dimensions := make([]ArrayDimension, len(dims))
	for i, d := range dims {
		dimensions[i] = ArrayDimension{Length: d, LowerBound: 1}
	}
	return dimensions
}

func (src Array) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Elements
}

func (dst *Array) DecodeBinary(ci *Map, src []byte, newElement NewElementFunc) error {
	if src == nil {
		*dst = Array{Status: Null}
		return nil
	}

	var header ArrayHeader
	rest, err := header.decodeBinary(src)
	if err != nil {
		return err
	}

	total := 1
	for _, d := range header.Dimensions {
		total *= int(d.Length)
	}

	elements := make([]Value, total)
	for i := 0; i < total; i++ {
		if len(rest) < 4 {
			return fmt.Errorf("truncated array element length")
		}
		size := int(int32(binary.BigEndian.Uint32(rest)))
		rest = rest[4:]

		el := newElement()
		if size == -1 {
			if dec, ok := el.(BinaryDecoder); ok {
				if err := dec.DecodeBinary(ci, nil); err != nil {
					return err
				}
			}
		} else {
			if len(rest) < size {
				return fmt.Errorf("truncated array element value")
			}
			dec, ok := el.(BinaryDecoder)
			if !ok {
				return fmt.Errorf("element type does not support binary decoding")
			}
			if err := dec.DecodeBinary(ci, rest[:size]); err != nil {
				return err
			}
			rest = rest[size:]
		}
		elements[i] = el
	}

	*dst = Array{Elements: elements, Header: header, Status: Present}
	return nil
}

func (src Array) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	buf = src.Header.encodeBinary(buf)
	for _, el := range src.Elements {
		enc, ok := el.(BinaryEncoder)
		if !ok {
			return nil, fmt.Errorf("element type does not support binary encoding")
		}
		lenOffset := len(buf)
		buf = append(buf, 0, 0, 0, 0)
		encoded, err := enc.EncodeBinary(ci, buf)
		if err != nil {
			return nil, err
		}
		if encoded == nil {
			binary.BigEndian.PutUint32(buf[lenOffset:], 0xffffffff)
			buf = buf[:lenOffset+4]
			continue
		}
		binary.BigEndian.PutUint32(encoded[lenOffset:], uint32(len(encoded)-lenOffset-4))
		buf = encoded
	}
	return buf, nil
}

// DecodeText parses PostgreSQL's brace-delimited array literal, e.g.
// `{1,2,3}` or `{{1,2},{3,NULL}}`. splitArrayLiteral tracks brace depth so
// a nested `{...}` group splits as one sub-array token rather than being
// cut apart on its own internal commas; decodeArrayText then descends into
// those groups to build Header.Dimensions for every axis, the same
// row-major flattening the binary path already does.
func (dst *Array) DecodeText(ci *Map, src []byte, newElement NewElementFunc) error {
	if src == nil {
		*dst = Array{Status: Null}
		return nil
	}

	tokens, dims, err := decodeArrayText(strings.TrimSpace(string(src)))
	if err != nil {
		return err
	}

	elements := make([]Value, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		el := newElement()
		dec, ok := el.(TextDecoder)
		if !ok {
			return fmt.Errorf("element type does not support text decoding")
		}
		if tok == "NULL" {
			if err := dec.DecodeText(ci, nil); err != nil {
				return err
			}
		} else {
			tok = strings.Trim(tok, `"`)
			if err := dec.DecodeText(ci, []byte(tok)); err != nil {
				return err
			}
		}
		elements[i] = el
	}

	*dst = Array{
		Elements: elements,
		Header:   ArrayHeader{Dimensions: dimsToHeader(dims)},
		Status:   Present,
	}
	return nil
}

// decodeArrayText parses one brace-delimited array literal into a flat,
// row-major list of leaf tokens alongside the length of each axis it
// descended through. A top-level literal whose elements are themselves
// brace groups is a multi-dimensional array; decodeArrayText recurses into
// each group and requires every sibling group to agree on shape, the way
// the server itself rejects a jagged array literal.
func decodeArrayText(s string) (tokens []string, dims []int32, err error) {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, nil, fmt.Errorf("invalid array literal: %s", s)
	}
	parts := splitArrayLiteral(s[1 : len(s)-1])

	if len(parts) == 0 {
		return nil, []int32{0}, nil
	}

	if strings.HasPrefix(strings.TrimSpace(parts[0]), "{") {
		var childDims []int32
		for i, p := range parts {
			childTokens, cd, err := decodeArrayText(strings.TrimSpace(p))
			if err != nil {
				return nil, nil, err
			}
			if i == 0 {
				childDims = cd
			} else if !equalDims(childDims, cd) {
				return nil, nil, fmt.Errorf("mismatched array dimensions: %s", s)
			}
			tokens = append(tokens, childTokens...)
		}
		return tokens, append([]int32{int32(len(parts))}, childDims...), nil
	}

	return parts, []int32{int32(len(parts))}, nil
}

// splitArrayLiteral splits s on top-level commas, leaving commas inside
// quoted strings or nested {...} groups alone.
func splitArrayLiteral(s string) []string {
	if s == "" {
		return nil
	}
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case inQuotes:
			cur.WriteByte(c)
		case c == '{':
			depth++
			cur.WriteByte(c)
		case c == '}':
			depth--
			cur.WriteByte(c)
		case c == ',' && depth == 0:
			tokens = append(tokens, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	tokens = append(tokens, cur.String())
	return tokens
}

func (src Array) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	lengths := make([]int, len(src.Header.Dimensions))
	for i, d := range src.Header.Dimensions {
		lengths[i] = int(d.Length)
	}
	if len(lengths) == 0 {
		lengths = []int{len(src.Elements)}
	}
	buf, _, err := encodeArrayTextDim(ci, buf, src.Elements, lengths)
	return buf, err
}

// encodeArrayTextDim renders one axis of Elements (still flat, row-major)
// as a brace group, recursing for every dimension beyond the innermost and
// returning the slice of Elements not yet consumed so the caller's sibling
// groups pick up where this one left off.
func encodeArrayTextDim(ci *Map, buf []byte, elements []Value, lengths []int) ([]byte, []Value, error) {
	buf = append(buf, '{')

	if len(lengths) <= 1 {
		n := 0
		if len(lengths) == 1 {
			n = lengths[0]
		}
		for i := 0; i < n; i++ {
			if i > 0 {
				buf = append(buf, ',')
			}
			enc, ok := elements[i].(TextEncoder)
			if !ok {
				return nil, nil, fmt.Errorf("element type does not support text encoding")
			}
			encoded, err := enc.EncodeText(ci, nil)
			if err != nil {
				return nil, nil, err
			}
			if encoded == nil {
				buf = append(buf, "NULL"...)
				continue
			}
			buf = append(buf, '"')
			buf = append(buf, strings.ReplaceAll(string(encoded), `"`, `\"`)...)
			buf = append(buf, '"')
		}
		buf = append(buf, '}')
		return buf, elements[n:], nil
	}

	rest := elements
	for i := 0; i < lengths[0]; i++ {
		if i > 0 {
			buf = append(buf, ',')
		}
		var err error
		buf, rest, err = encodeArrayTextDim(ci, buf, rest, lengths[1:])
		if err != nil {
			return nil, nil, err
		}
	}
	buf = append(buf, '}')
	return buf, rest, nil
}
