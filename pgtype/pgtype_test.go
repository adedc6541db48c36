package pgtype

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRegistersBuiltins(t *testing.T) {
	m := NewMap()

	dt, ok := m.DataTypeForOID(BoolOID)
	require.True(t, ok)
	assert.Equal(t, "bool", dt.Name)

	dt, ok = m.DataTypeForName("numeric")
	require.True(t, ok)
	assert.Equal(t, uint32(NumericOID), dt.OID)

	_, ok = m.DataTypeForOID(999999)
	assert.False(t, ok)
}

func TestBoolBinaryRoundTrip(t *testing.T) {
	var b Bool
	require.NoError(t, b.Set(true))

	buf, err := b.EncodeBinary(nil, nil)
	require.NoError(t, err)

	var b2 Bool
	require.NoError(t, b2.DecodeBinary(nil, buf))
	assert.Equal(t, b, b2)
}

func TestInt4TextAndBinary(t *testing.T) {
	var n Int4
	require.NoError(t, n.Set(int32(-42)))

	text, err := n.EncodeText(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "-42", string(text))

	bin, err := n.EncodeBinary(nil, nil)
	require.NoError(t, err)

	var n2 Int4
	require.NoError(t, n2.DecodeBinary(nil, bin))
	assert.Equal(t, int32(-42), n2.Int)
}

func TestTextNullRoundTrip(t *testing.T) {
	var s Text
	require.NoError(t, s.DecodeText(nil, nil))
	assert.Equal(t, Null, s.Status)

	buf, err := s.EncodeText(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, buf)
}

func TestNumericBinaryRoundTrip(t *testing.T) {
	cases := []string{"0", "123.456", "-123.456", "100", "0.0001", "12345678901234567890"}
	for _, c := range cases {
		d, err := decimal.NewFromString(c)
		require.NoError(t, err)

		var n Numeric
		require.NoError(t, n.Set(d))

		buf, err := n.EncodeBinary(nil, nil)
		require.NoError(t, err)

		var n2 Numeric
		require.NoError(t, n2.DecodeBinary(nil, buf))

		assert.True(t, d.Equal(n2.Decimal), "case %s: got %s", c, n2.Decimal.String())
	}
}

func TestInetCIDRText(t *testing.T) {
	var inet Inet
	require.NoError(t, inet.DecodeText(nil, []byte("192.168.1.1/24")))

	text, err := inet.EncodeText(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1/24", string(text))
}

func TestHstoreTextRoundTrip(t *testing.T) {
	var h Hstore
	require.NoError(t, h.DecodeText(nil, []byte(`"a"=>"1", "b"=>NULL`)))
	require.Len(t, h.Map, 2)
	require.NotNil(t, h.Map["a"])
	assert.Equal(t, "1", *h.Map["a"])
	assert.Nil(t, h.Map["b"])
}

func TestArrayBinaryRoundTrip(t *testing.T) {
	a := Array{
		Elements: []Value{&Int4{Int: 1, Status: Present}, &Int4{Int: 2, Status: Present}},
		Header:   ArrayHeader{ElementOID: Int4OID, Dimensions: []ArrayDimension{{Length: 2, LowerBound: 1}}},
		Status:   Present,
	}

	buf, err := a.EncodeBinary(nil, nil)
	require.NoError(t, err)

	var a2 Array
	require.NoError(t, a2.DecodeBinary(nil, buf, func() Value { return &Int4{} }))
	require.Len(t, a2.Elements, 2)
	assert.Equal(t, int32(1), a2.Elements[0].(*Int4).Int)
	assert.Equal(t, int32(2), a2.Elements[1].(*Int4).Int)
}

func TestArrayTextNestedNullRoundTrip(t *testing.T) {
	var a Array
	require.NoError(t, a.DecodeText(nil, []byte(`{{1,2},{NULL,4}}`), func() Value { return &Int4{} }))

	require.Len(t, a.Elements, 4)
	assert.Equal(t, int32(1), a.Elements[0].(*Int4).Int)
	assert.Equal(t, int32(2), a.Elements[1].(*Int4).Int)
	assert.Equal(t, Null, a.Elements[2].(*Int4).Status)
	assert.Equal(t, int32(4), a.Elements[3].(*Int4).Int)

	require.Len(t, a.Header.Dimensions, 2)
	assert.Equal(t, int32(2), a.Header.Dimensions[0].Length)
	assert.Equal(t, int32(2), a.Header.Dimensions[1].Length)

	text, err := a.EncodeText(nil, nil)
	require.NoError(t, err)

	var a2 Array
	require.NoError(t, a2.DecodeText(nil, text, func() Value { return &Int4{} }))
	require.Len(t, a2.Elements, 4)
	assert.Equal(t, int32(1), a2.Elements[0].(*Int4).Int)
	assert.Equal(t, Null, a2.Elements[2].(*Int4).Status)
	assert.Equal(t, a.Header.Dimensions, a2.Header.Dimensions)
}

func TestArraySetNestedSlice(t *testing.T) {
	var a Array
	err := a.Set([]any{
		[]any{&Int4{Int: 1, Status: Present}, &Int4{Status: Null}},
		[]any{&Int4{Int: 3, Status: Present}, &Int4{Int: 4, Status: Present}},
	})
	require.NoError(t, err)

	require.Len(t, a.Elements, 4)
	assert.Equal(t, Null, a.Elements[1].(*Int4).Status)
	require.Equal(t, []ArrayDimension{{Length: 2, LowerBound: 1}, {Length: 2, LowerBound: 1}}, a.Header.Dimensions)
}

func TestArraySetJaggedSliceRejected(t *testing.T) {
	var a Array
	err := a.Set([]any{
		[]any{&Int4{Int: 1, Status: Present}},
		[]any{&Int4{Int: 2, Status: Present}, &Int4{Int: 3, Status: Present}},
	})
	assert.Error(t, err)
}

func TestInt4RangeBinaryRoundTrip(t *testing.T) {
	r := Int4Range{
		Lower:     Int4{Int: 1, Status: Present},
		Upper:     Int4{Int: 10, Status: Present},
		LowerType: Inclusive,
		UpperType: Exclusive,
		Status:    Present,
	}

	buf, err := r.EncodeBinary(nil, nil)
	require.NoError(t, err)

	var r2 Int4Range
	require.NoError(t, r2.DecodeBinary(nil, buf))
	assert.Equal(t, int32(1), r2.Lower.Int)
	assert.Equal(t, int32(10), r2.Upper.Int)
	assert.Equal(t, Inclusive, r2.LowerType)
	assert.Equal(t, Exclusive, r2.UpperType)
}
