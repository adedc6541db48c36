package pgtype

// Cidr shares Inet's representation; the server distinguishes cidr from
// inet purely by OID, never by wire layout.
type Cidr Inet

func (dst *Cidr) Set(src any) error {
	return (*Inet)(dst).Set(src)
}

func (src Cidr) Get() any {
	return Inet(src).Get()
}

func (dst *Cidr) Accepts(oid uint32) bool { return oid == CidrOID }

func (dst *Cidr) DecodeText(ci *Map, src []byte) error {
	return (*Inet)(dst).DecodeText(ci, src)
}

func (dst *Cidr) DecodeBinary(ci *Map, src []byte) error {
	return (*Inet)(dst).DecodeBinary(ci, src)
}

func (src Cidr) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	return Inet(src).EncodeText(ci, buf)
}

func (src Cidr) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	return Inet(src).EncodeBinary(ci, buf)
}
