package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// Authentication request subtypes, sent by the server during the startup
// handshake to say what it wants next.
const (
	AuthTypeOk          uint32 = 0
	AuthTypeCleartext   uint32 = 3
	AuthTypeMD5         uint32 = 5
	AuthTypeSCMCreds    uint32 = 6
	AuthTypeGSS         uint32 = 7
	AuthTypeGSSCont     uint32 = 8
	AuthTypeSSPI        uint32 = 9
	AuthTypeSASL        uint32 = 10
	AuthTypeSASLCont    uint32 = 11
	AuthTypeSASLFinal   uint32 = 12
)

// Authentication is one step of the startup authentication exchange. Salt
// is populated for AuthTypeMD5 only; Data carries the SASL mechanism list or
// challenge bytes for the SASL variants.
type Authentication struct {
	Type uint32
	Salt [4]byte
	Data []byte
}

func (*Authentication) Backend()                 {}
func (*Authentication) AuthenticationResponse()   {}

func (dst *Authentication) Decode(src []byte) error {
	if len(src) < 4 {
		return newInvalidFormatErr("Authentication", "missing type")
	}
	dst.Type = binary.BigEndian.Uint32(src)
	rest := src[4:]

	switch dst.Type {
	case AuthTypeOk, AuthTypeCleartext:
		if len(rest) != 0 {
			return newInvalidFormatErr("Authentication", "unexpected trailing data")
		}
	case AuthTypeMD5:
		if len(rest) != 4 {
			return newInvalidFormatErr("Authentication", "missing salt")
		}
		copy(dst.Salt[:], rest)
	case AuthTypeSASL, AuthTypeSASLCont, AuthTypeSASLFinal:
		dst.Data = append([]byte(nil), rest...)
	default:
		dst.Data = append([]byte(nil), rest...)
	}
	return nil
}

func (src *Authentication) Encode(dst []byte) ([]byte, error) {
	dst, sp := beginMessage(dst, 'R')
	dst = pgio.AppendUint32(dst, src.Type)
	switch src.Type {
	case AuthTypeMD5:
		dst = append(dst, src.Salt[:]...)
	case AuthTypeSASL, AuthTypeSASLCont, AuthTypeSASLFinal:
		dst = append(dst, src.Data...)
	}
	return finishMessage(dst, sp)
}
