package pgtype

// registerBuiltins populates a freshly constructed Map with every codec the
// driver ships built in. Types outside this set have no codec unless a
// caller registers one; they are not looked up in the server's catalogue.
func registerBuiltins(m *Map) {
	for _, dt := range []DataType{
		{Value: &Bool{}, Name: "bool", OID: BoolOID, FormatCode: BinaryFormatCode},

		{Value: &Int2{}, Name: "int2", OID: Int2OID, FormatCode: BinaryFormatCode},
		{Value: &Int4{}, Name: "int4", OID: Int4OID, FormatCode: BinaryFormatCode},
		{Value: &Int8{}, Name: "int8", OID: Int8OID, FormatCode: BinaryFormatCode},

		{Value: &Float4{}, Name: "float4", OID: Float4OID, FormatCode: BinaryFormatCode},
		{Value: &Float8{}, Name: "float8", OID: Float8OID, FormatCode: BinaryFormatCode},

		// text/varchar/bpchar/name share Text's wire representation; only
		// the OID and catalogue name differ.
		{Value: &Text{}, Name: "text", OID: TextOID, FormatCode: BinaryFormatCode},
		{Value: &Text{}, Name: "varchar", OID: VarcharOID, FormatCode: BinaryFormatCode},
		{Value: &Text{}, Name: "bpchar", OID: BPCharOID, FormatCode: BinaryFormatCode},
		{Value: &Text{}, Name: "name", OID: NameOID, FormatCode: BinaryFormatCode},

		{Value: &Bytea{}, Name: "bytea", OID: ByteaOID, FormatCode: BinaryFormatCode},

		{Value: &JSON{}, Name: "json", OID: JSONOID, FormatCode: TextFormatCode},
		{Value: &JSONB{}, Name: "jsonb", OID: JSONBOID, FormatCode: BinaryFormatCode},

		{Value: &Inet{}, Name: "inet", OID: InetOID, FormatCode: BinaryFormatCode},
		{Value: &Cidr{}, Name: "cidr", OID: CidrOID, FormatCode: BinaryFormatCode},

		{Value: &Date{}, Name: "date", OID: DateOID, FormatCode: BinaryFormatCode},
		{Value: &Timestamp{}, Name: "timestamp", OID: TimestampOID, FormatCode: BinaryFormatCode},
		{Value: &Timestamptz{}, Name: "timestamptz", OID: TimestampTzOID, FormatCode: BinaryFormatCode},

		{Value: &Hstore{}, Name: "hstore", OID: HstoreOID, FormatCode: BinaryFormatCode},

		{Value: &Macaddr{}, Name: "macaddr", OID: MacaddrOID, FormatCode: BinaryFormatCode},
		{Value: &Point{}, Name: "point", OID: PointOID, FormatCode: BinaryFormatCode},

		{Value: &Numeric{}, Name: "numeric", OID: NumericOID, FormatCode: BinaryFormatCode},

		{Value: &Int4Range{}, Name: "int4range", OID: Int4RangeOID, FormatCode: BinaryFormatCode},
		{Value: &Int8Range{}, Name: "int8range", OID: Int8RangeOID, FormatCode: BinaryFormatCode},
		{Value: &NumRange{}, Name: "numrange", OID: NumRangeOID, FormatCode: BinaryFormatCode},
		{Value: &TsRange{}, Name: "tsrange", OID: TsRangeOID, FormatCode: BinaryFormatCode},
		{Value: &TsTzRange{}, Name: "tstzrange", OID: TsTzRangeOID, FormatCode: BinaryFormatCode},
		{Value: &DateRange{}, Name: "daterange", OID: DateRangeOID, FormatCode: BinaryFormatCode},
	} {
		m.RegisterDataType(dt)
	}

	registerArrayBuiltins(m)
}

// newArrayElementFunc returns a NewElementFunc producing zero values of a
// scalar built-in, closed over at registration time so the generic Array
// codec never has to branch on the element OID itself.
func newArrayElementFunc(zero func() Value) NewElementFunc {
	return func() Value { return zero() }
}

// registerArrayBuiltins registers one array codec per built-in array OID,
// each bound to the constructor for its scalar element type.
func registerArrayBuiltins(m *Map) {
	type arrayBinding struct {
		oid     uint32
		name    string
		elemOID uint32
		newElem NewElementFunc
	}

	bindings := []arrayBinding{
		{BoolArrayOID, "_bool", BoolOID, newArrayElementFunc(func() Value { return &Bool{} })},
		{Int2ArrayOID, "_int2", Int2OID, newArrayElementFunc(func() Value { return &Int2{} })},
		{Int4ArrayOID, "_int4", Int4OID, newArrayElementFunc(func() Value { return &Int4{} })},
		{Int8ArrayOID, "_int8", Int8OID, newArrayElementFunc(func() Value { return &Int8{} })},
		{Float4ArrayOID, "_float4", Float4OID, newArrayElementFunc(func() Value { return &Float4{} })},
		{Float8ArrayOID, "_float8", Float8OID, newArrayElementFunc(func() Value { return &Float8{} })},
		{TextArrayOID, "_text", TextOID, newArrayElementFunc(func() Value { return &Text{} })},
		{VarcharArrayOID, "_varchar", VarcharOID, newArrayElementFunc(func() Value { return &Text{} })},
		{BPCharArrayOID, "_bpchar", BPCharOID, newArrayElementFunc(func() Value { return &Text{} })},
		{TimestampArrayOID, "_timestamp", TimestampOID, newArrayElementFunc(func() Value { return &Timestamp{} })},
		{TimestampTzArrayOID, "_timestamptz", TimestampTzOID, newArrayElementFunc(func() Value { return &Timestamptz{} })},
		{CidrArrayOID, "_cidr", CidrOID, newArrayElementFunc(func() Value { return &Cidr{} })},
		{JSONArrayOID, "_json", JSONOID, newArrayElementFunc(func() Value { return &JSON{} })},
	}

	for _, b := range bindings {
		m.RegisterDataType(DataType{
			Value:      &arrayElementBinder{oid: b.oid, elementOID: b.elemOID, newElement: b.newElem},
			Name:       b.name,
			OID:        b.oid,
			FormatCode: BinaryFormatCode,
		})
	}
}

// arrayElementBinder wraps Array with the NewElementFunc for one specific
// array OID, so callers can Set/Get/Decode/Encode it the same way as any
// other registered DataType without passing a constructor around.
type arrayElementBinder struct {
	Array
	oid        uint32
	elementOID uint32
	newElement NewElementFunc
}

func (dst *arrayElementBinder) Accepts(oid uint32) bool { return oid == dst.oid }

func (dst *arrayElementBinder) Set(src any) error {
	return dst.Array.Set(src)
}

func (src *arrayElementBinder) Get() any {
	return src.Array.Get()
}

func (dst *arrayElementBinder) DecodeBinary(ci *Map, src []byte) error {
	return (&dst.Array).DecodeBinary(ci, src, dst.newElement)
}

func (dst *arrayElementBinder) DecodeText(ci *Map, src []byte) error {
	return (&dst.Array).DecodeText(ci, src, dst.newElement)
}

func (src *arrayElementBinder) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	return src.Array.EncodeBinary(ci, buf)
}

func (src *arrayElementBinder) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	return src.Array.EncodeText(ci, buf)
}
