package pgtype

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// numeric sign markers, as the server encodes them in the binary header.
const (
	numericNaN    = 0xc000
	numericPos    = 0x0000
	numericNeg    = 0x4000
	numericNegInf = 0xf000
	numericPosInf = 0xd000
)

const numericDigitBase = 10000

// Numeric wraps shopspring/decimal, the representation callers get for the
// numeric type; arbitrary precision beyond float64 is the whole point of
// the type, so a plain float64 can't stand in for it.
type Numeric struct {
	Decimal decimal.Decimal
	Status  Status
}

func (dst *Numeric) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Numeric{Status: Null}
	case decimal.Decimal:
		*dst = Numeric{Decimal: value, Status: Present}
	case float64:
		*dst = Numeric{Decimal: decimal.NewFromFloat(value), Status: Present}
	case int64:
		*dst = Numeric{Decimal: decimal.New(value, 0), Status: Present}
	case string:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return err
		}
		*dst = Numeric{Decimal: d, Status: Present}
	default:
		return fmt.Errorf("cannot convert %v to Numeric", src)
	}
	return nil
}

func (dst *Numeric) Accepts(oid uint32) bool { return oid == NumericOID }

func (src Numeric) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Decimal
}

func (dst *Numeric) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Numeric{Status: Null}
		return nil
	}
	d, err := decimal.NewFromString(string(src))
	if err != nil {
		return err
	}
	*dst = Numeric{Decimal: d, Status: Present}
	return nil
}

// DecodeBinary reads the base-10000 digit group format the server uses on
// the wire: {ndigits, weight, sign, dscale} followed by ndigits uint16
// digits, each holding 4 decimal digits, most significant group first.
func (dst *Numeric) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Numeric{Status: Null}
		return nil
	}
	if len(src) < 8 {
		return fmt.Errorf("invalid length for numeric: %v", len(src))
	}
	ndigits := binary.BigEndian.Uint16(src)
	weight := int16(binary.BigEndian.Uint16(src[2:]))
	sign := binary.BigEndian.Uint16(src[4:])

	switch sign {
	case numericNaN, numericNegInf, numericPosInf:
		return fmt.Errorf("numeric special value not representable as decimal.Decimal")
	}

	digits := src[8:]
	if len(digits) != int(ndigits)*2 {
		return fmt.Errorf("invalid digit count for numeric")
	}

	accum := new(big.Int)
	base := big.NewInt(numericDigitBase)
	for i := 0; i < int(ndigits); i++ {
		d := binary.BigEndian.Uint16(digits[i*2:])
		accum.Mul(accum, base)
		accum.Add(accum, big.NewInt(int64(d)))
	}
	if sign == numericNeg {
		accum.Neg(accum)
	}

	// accum holds the digit groups packed together as one integer; the
	// least significant group's decimal exponent is (weight+1-ndigits)*4.
	exp := (int(weight) + 1 - int(ndigits)) * 4
	*dst = Numeric{Decimal: decimal.NewFromBigInt(accum, int32(exp)), Status: Present}
	return nil
}

func (src Numeric) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, src.Decimal.String()...), nil
}

// EncodeBinary builds the digit-group wire format from the decimal's fixed
// decimal-string representation, padding to 4-digit group boundaries on
// both sides of the decimal point the way the server does.
func (src Numeric) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}

	d := src.Decimal
	sign := uint16(numericPos)
	if d.Sign() < 0 {
		sign = numericNeg
		d = d.Abs()
	}

	dscale := uint16(0)
	if exp := src.Decimal.Exponent(); exp < 0 {
		dscale = uint16(-exp)
	}

	s := d.StringFixed(int32(dscale))
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}

	// Pad the integer part on the left and the fractional part on the
	// right so both split evenly into 4-digit groups.
	for len(intPart)%4 != 0 {
		intPart = "0" + intPart
	}
	for len(fracPart)%4 != 0 {
		fracPart = fracPart + "0"
	}

	allDigits := intPart + fracPart
	numGroups := len(allDigits) / 4
	weight := int16(len(intPart)/4 - 1)

	digitGroups := make([]uint16, 0, numGroups)
	allZero := true
	for i := 0; i < numGroups; i++ {
		group := allDigits[i*4 : i*4+4]
		var n uint16
		for _, c := range group {
			n = n*10 + uint16(c-'0')
		}
		if n != 0 {
			allZero = false
		}
		digitGroups = append(digitGroups, n)
	}

	// Trim leading and trailing all-zero groups, adjusting weight to match,
	// the same normalization the server applies before sending.
	for len(digitGroups) > 0 && digitGroups[0] == 0 {
		digitGroups = digitGroups[1:]
		weight--
	}
	for len(digitGroups) > 0 && digitGroups[len(digitGroups)-1] == 0 {
		digitGroups = digitGroups[:len(digitGroups)-1]
	}
	if allZero {
		digitGroups = nil
		weight = 0
		sign = numericPos
	}

	var hdr [8]byte
	binary.BigEndian.PutUint16(hdr[0:], uint16(len(digitGroups)))
	binary.BigEndian.PutUint16(hdr[2:], uint16(weight))
	binary.BigEndian.PutUint16(hdr[4:], sign)
	binary.BigEndian.PutUint16(hdr[6:], dscale)
	buf = append(buf, hdr[:]...)

	for _, g := range digitGroups {
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], g)
		buf = append(buf, b[:]...)
	}
	return buf, nil
}
