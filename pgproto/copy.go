package pgproto

import (
	"encoding/binary"

	"github.com/coriolisdb/pgwire/internal/pgio"
)

// copyResponse is the shared shape of CopyInResponse, CopyOutResponse and
// CopyBothResponse: an overall format plus one format code per column.
type copyResponse struct {
	OverallFormat     byte
	ColumnFormatCodes []int16
}

func (dst *copyResponse) decode(src []byte, typeName string) error {
	if len(src) < 3 {
		return newInvalidFormatErr(typeName, "missing format fields")
	}
	dst.OverallFormat = src[0]
	count := int(binary.BigEndian.Uint16(src[1:]))
	rest := src[3:]
	if len(rest) != count*2 {
		return newInvalidFormatErr(typeName, "column format count mismatch")
	}
	dst.ColumnFormatCodes = make([]int16, count)
	for i := range dst.ColumnFormatCodes {
		dst.ColumnFormatCodes[i] = int16(binary.BigEndian.Uint16(rest[i*2:]))
	}
	return nil
}

func (src *copyResponse) encode(dst []byte, tag byte) ([]byte, error) {
	dst, sp := beginMessage(dst, tag)
	dst = append(dst, src.OverallFormat)
	dst = pgio.AppendUint16(dst, uint16(len(src.ColumnFormatCodes)))
	for _, fc := range src.ColumnFormatCodes {
		dst = pgio.AppendInt16(dst, fc)
	}
	return finishMessage(dst, sp)
}

// CopyInResponse tells the client the server is ready to receive CopyData
// messages for a COPY FROM STDIN.
type CopyInResponse struct {
	OverallFormat     byte
	ColumnFormatCodes []int16
}

func (*CopyInResponse) Backend() {}

func (dst *CopyInResponse) Decode(src []byte) error {
	r := (*copyResponse)(dst)
	return r.decode(src, "CopyInResponse")
}

func (src *CopyInResponse) Encode(dst []byte) ([]byte, error) {
	r := (*copyResponse)(src)
	return r.encode(dst, 'G')
}

// CopyOutResponse precedes a stream of CopyData messages for a COPY TO
// STDOUT.
type CopyOutResponse struct {
	OverallFormat     byte
	ColumnFormatCodes []int16
}

func (*CopyOutResponse) Backend() {}

func (dst *CopyOutResponse) Decode(src []byte) error {
	r := (*copyResponse)(dst)
	return r.decode(src, "CopyOutResponse")
}

func (src *CopyOutResponse) Encode(dst []byte) ([]byte, error) {
	r := (*copyResponse)(src)
	return r.encode(dst, 'H')
}

// CopyBothResponse is CopyInResponse and CopyOutResponse combined, used for
// streaming replication.
type CopyBothResponse struct {
	OverallFormat     byte
	ColumnFormatCodes []int16
}

func (*CopyBothResponse) Backend() {}

func (dst *CopyBothResponse) Decode(src []byte) error {
	r := (*copyResponse)(dst)
	return r.decode(src, "CopyBothResponse")
}

func (src *CopyBothResponse) Encode(dst []byte) ([]byte, error) {
	r := (*copyResponse)(src)
	return r.encode(dst, 'W')
}
