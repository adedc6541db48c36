package pgtype

import (
	"fmt"
	"net"
	"strings"
)

// Network address family codes as the server reports them, per
// src/include/utils/inet.h. These have been the same value on every
// platform PostgreSQL has shipped on.
const (
	inetAFInet  = 2
	inetAFInet6 = 3
)

// Inet backs both inet and cidr: the wire representation is identical,
// distinguished only by an is_cidr flag the server always sets consistently
// for a given OID, so the Go value doesn't need to track it separately.
type Inet struct {
	IPNet  *net.IPNet
	Status Status
}

func (dst *Inet) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Inet{Status: Null}
	case string:
		return dst.DecodeText(nil, []byte(value))
	case net.IPNet:
		*dst = Inet{IPNet: &value, Status: Present}
	case *net.IPNet:
		if value == nil {
			*dst = Inet{Status: Null}
		} else {
			*dst = Inet{IPNet: value, Status: Present}
		}
	case net.IP:
		*dst = Inet{IPNet: wholeHostMask(value), Status: Present}
	default:
		return fmt.Errorf("cannot convert %v to Inet", src)
	}
	return nil
}

func (dst *Inet) Accepts(oid uint32) bool { return oid == InetOID }

func (src Inet) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.IPNet
}

func wholeHostMask(ip net.IP) *net.IPNet {
	bits := 32
	if ip.To4() == nil {
		bits = 128
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}
}

func (dst *Inet) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Inet{Status: Null}
		return nil
	}
	s := string(src)
	if !strings.Contains(s, "/") {
		ip := net.ParseIP(s)
		if ip == nil {
			return fmt.Errorf("invalid inet address: %s", s)
		}
		*dst = Inet{IPNet: wholeHostMask(ip), Status: Present}
		return nil
	}
	ip, ipnet, err := net.ParseCIDR(s)
	if err != nil {
		return err
	}
	ipnet.IP = ip
	*dst = Inet{IPNet: ipnet, Status: Present}
	return nil
}

func (dst *Inet) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Inet{Status: Null}
		return nil
	}
	if len(src) < 4 {
		return fmt.Errorf("invalid length for inet: %v", len(src))
	}
	bits := src[1]
	addr := src[4:]
	if len(addr) != int(src[3]) {
		return fmt.Errorf("invalid address length for inet")
	}
	*dst = Inet{
		IPNet: &net.IPNet{IP: net.IP(addr), Mask: net.CIDRMask(int(bits), len(addr)*8)},
		Status: Present,
	}
	return nil
}

func (src Inet) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	ones, _ := src.IPNet.Mask.Size()
	return append(buf, fmt.Sprintf("%s/%d", src.IPNet.IP.String(), ones)...), nil
}

func (src Inet) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	family := byte(inetAFInet)
	ip := src.IPNet.IP.To4()
	if ip == nil {
		family = inetAFInet6
		ip = src.IPNet.IP.To16()
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address for inet")
		}
	}
	ones, _ := src.IPNet.Mask.Size()
	buf = append(buf, family, byte(ones), 0, byte(len(ip)))
	return append(buf, ip...), nil
}
