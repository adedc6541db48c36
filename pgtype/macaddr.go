package pgtype

import (
	"fmt"
	"net"
)

type Macaddr struct {
	Addr   net.HardwareAddr
	Status Status
}

func (dst *Macaddr) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Macaddr{Status: Null}
	case net.HardwareAddr:
		if value == nil {
			*dst = Macaddr{Status: Null}
		} else {
			*dst = Macaddr{Addr: value, Status: Present}
		}
	case string:
		addr, err := net.ParseMAC(value)
		if err != nil {
			return err
		}
		*dst = Macaddr{Addr: addr, Status: Present}
	default:
		return fmt.Errorf("cannot convert %v to Macaddr", src)
	}
	return nil
}

func (dst *Macaddr) Accepts(oid uint32) bool { return oid == MacaddrOID }

func (src Macaddr) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Addr
}

func (dst *Macaddr) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Macaddr{Status: Null}
		return nil
	}
	addr, err := net.ParseMAC(string(src))
	if err != nil {
		return err
	}
	*dst = Macaddr{Addr: addr, Status: Present}
	return nil
}

func (dst *Macaddr) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Macaddr{Status: Null}
		return nil
	}
	if len(src) != 6 {
		return fmt.Errorf("invalid length for macaddr: %v", len(src))
	}
	*dst = Macaddr{Addr: append(net.HardwareAddr(nil), src...), Status: Present}
	return nil
}

func (src Macaddr) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, src.Addr.String()...), nil
}

func (src Macaddr) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	return append(buf, src.Addr...), nil
}
