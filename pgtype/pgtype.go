// Package pgtype maps between native Go values and the wire's on-the-byte
// field representations, keyed by the type OIDs the server assigns.
package pgtype

import "fmt"

// Format codes, as carried on the wire alongside every parameter and
// result field.
const (
	TextFormatCode   int16 = 0
	BinaryFormatCode int16 = 1
)

// Well-known OIDs for the built-in codecs. Types outside this list have no
// codec unless one is registered with Map.RegisterDataType; they are not
// looked up in the server's catalogue.
const (
	BoolOID             = 16
	ByteaOID            = 17
	NameOID             = 19
	Int8OID             = 20
	Int2OID             = 21
	Int4OID             = 23
	TextOID             = 25
	JSONOID             = 114
	JSONArrayOID        = 199
	Float4OID           = 700
	Float8OID           = 701
	InetOID             = 869
	BoolArrayOID        = 1000
	Int2ArrayOID        = 1005
	Int4ArrayOID        = 1007
	TextArrayOID        = 1009
	BPCharArrayOID      = 1014
	VarcharArrayOID     = 1015
	Int8ArrayOID        = 1016
	Float4ArrayOID      = 1021
	Float8ArrayOID      = 1022
	MacaddrOID          = 829
	BPCharOID           = 1042
	VarcharOID          = 1043
	DateOID             = 1082
	TimeOID             = 1083
	TimestampOID        = 1114
	TimestampArrayOID   = 1115
	TimestampTzOID      = 1184
	TimestampTzArrayOID = 1185
	PointOID            = 600
	Int4RangeOID        = 3904
	NumRangeOID         = 3906
	TsRangeOID          = 3908
	TsTzRangeOID        = 3910
	DateRangeOID        = 3912
	Int8RangeOID        = 3926
	CidrOID             = 650
	CidrArrayOID        = 651
	NumericOID          = 1700
	HstoreOID           = 33470
	JSONBOID            = 3802
)

// Status reports whether a decoded value is present, and distinguishes SQL
// NULL from a field the server never populated.
type Status byte

const (
	Undefined Status = iota
	Null
	Present
)

// InfinityModifier marks a timestamp or numeric range endpoint that
// represents unbounded infinity rather than a finite value.
type InfinityModifier int8

const (
	Infinity         InfinityModifier = 1
	None             InfinityModifier = 0
	NegativeInfinity InfinityModifier = -1
)

// Value is implemented by every codec's Go-side representation. Set
// assigns a native Go value of arbitrary type to the receiver; Get returns
// it back out.
type Value interface {
	Set(src any) error
	Get() any
}

// BinaryDecoder and TextDecoder populate a Value from wire bytes in the
// named format; a nil src means SQL NULL.
type BinaryDecoder interface {
	DecodeBinary(ci *Map, src []byte) error
}

type TextDecoder interface {
	DecodeText(ci *Map, src []byte) error
}

// OIDAccepter is implemented by a Value codec bound to one or more fixed
// OIDs; it reports whether it accepts decoding a given wire OID. Scan's
// fast path, which hands a result field directly to a caller-supplied
// Value instead of going through the Map, consults this before decoding
// so a field of the wrong type is rejected the same way the Map-driven
// path already rejects it via DataTypeForOID.
type OIDAccepter interface {
	Accepts(oid uint32) bool
}

// BinaryEncoder and TextEncoder append a Value's wire representation, in
// the named format, to buf. A nil return with a nil error means SQL NULL.
type BinaryEncoder interface {
	EncodeBinary(ci *Map, buf []byte) (newBuf []byte, err error)
}

type TextEncoder interface {
	EncodeText(ci *Map, buf []byte) (newBuf []byte, err error)
}

// DataType binds a zero Value to the OID and name the server uses for it,
// and to the format it prefers on the wire.
type DataType struct {
	Value      Value
	Name       string
	OID        uint32
	FormatCode int16
}

// WrongTypeError is returned when a row field is accessed with a Go type
// whose codec does not accept the column's declared OID.
type WrongTypeError struct {
	OID      uint32
	TypeName string
	GoType   string
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("cannot decode OID %d (%s) into %s", e.OID, e.TypeName, e.GoType)
}

// Map is the per-connection registry of codecs. It is populated with the
// built-ins at construction and grows only when a caller registers a type
// explicitly; unknown OIDs are not resolved against the server's catalogue.
type Map struct {
	oidToDataType  map[uint32]*DataType
	nameToDataType map[string]*DataType
}

// NewMap returns a Map preloaded with every built-in codec.
func NewMap() *Map {
	m := &Map{
		oidToDataType:  make(map[uint32]*DataType, 64),
		nameToDataType: make(map[string]*DataType, 64),
	}
	registerBuiltins(m)
	return m
}

// RegisterDataType adds or replaces the codec for dt.OID and dt.Name. Used
// both by the built-in registration and by extension packages such as
// pgtype/ext/uuidtype.
func (m *Map) RegisterDataType(dt DataType) {
	d := dt
	m.oidToDataType[dt.OID] = &d
	m.nameToDataType[dt.Name] = &d
}

// DataTypeForOID returns the registered codec for oid, if any.
func (m *Map) DataTypeForOID(oid uint32) (*DataType, bool) {
	dt, ok := m.oidToDataType[oid]
	return dt, ok
}

// DataTypeForName returns the registered codec for name, if any.
func (m *Map) DataTypeForName(name string) (*DataType, bool) {
	dt, ok := m.nameToDataType[name]
	return dt, ok
}
