package pgtype

import (
	"encoding/binary"
	"fmt"
	"time"
)

const pgTimestampFormat = "2006-01-02 15:04:05.999999999"

// microsecFromUnixEpochToY2K is the offset between the Unix epoch and
// 2000-01-01, the epoch the wire format counts microseconds from.
const microsecFromUnixEpochToY2K = 946684800 * 1000000

const (
	negativeInfinityMicrosecondOffset = -9223372036854775808
	infinityMicrosecondOffset         = 9223372036854775807
)

// Timestamp represents a timestamp without time zone: the wall-clock
// reading the server stored, with no timezone conversion applied in either
// direction.
type Timestamp struct {
	Time             time.Time
	InfinityModifier InfinityModifier
	Status           Status
}

func (dst *Timestamp) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Timestamp{Status: Null}
	case time.Time:
		*dst = Timestamp{Time: value, Status: Present}
	default:
		return fmt.Errorf("cannot convert %v to Timestamp", src)
	}
	return nil
}

func (dst *Timestamp) Accepts(oid uint32) bool { return oid == TimestampOID }

func (src Timestamp) Get() any {
	if src.Status != Present {
		return nil
	}
	if src.InfinityModifier != None {
		return src.InfinityModifier
	}
	return src.Time
}

func (dst *Timestamp) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Timestamp{Status: Null}
		return nil
	}
	s := string(src)
	switch s {
	case "infinity":
		*dst = Timestamp{InfinityModifier: Infinity, Status: Present}
		return nil
	case "-infinity":
		*dst = Timestamp{InfinityModifier: NegativeInfinity, Status: Present}
		return nil
	}
	t, err := time.Parse(pgTimestampFormat, s)
	if err != nil {
		return err
	}
	*dst = Timestamp{Time: t, Status: Present}
	return nil
}

func (dst *Timestamp) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Timestamp{Status: Null}
		return nil
	}
	if len(src) != 8 {
		return fmt.Errorf("invalid length for timestamp: %v", len(src))
	}
	usec := int64(binary.BigEndian.Uint64(src))
	switch usec {
	case infinityMicrosecondOffset:
		*dst = Timestamp{InfinityModifier: Infinity, Status: Present}
		return nil
	case negativeInfinityMicrosecondOffset:
		*dst = Timestamp{InfinityModifier: NegativeInfinity, Status: Present}
		return nil
	}
	t := time.Unix(0, (usec*1000)+microsecFromUnixEpochToY2K*1000).UTC()
	*dst = Timestamp{Time: t, Status: Present}
	return nil
}

func (src Timestamp) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	switch src.InfinityModifier {
	case Infinity:
		return append(buf, "infinity"...), nil
	case NegativeInfinity:
		return append(buf, "-infinity"...), nil
	}
	return append(buf, src.Time.Format(pgTimestampFormat)...), nil
}

func (src Timestamp) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var usec int64
	switch src.InfinityModifier {
	case Infinity:
		usec = infinityMicrosecondOffset
	case NegativeInfinity:
		usec = negativeInfinityMicrosecondOffset
	default:
		usec = src.Time.Unix()*1000000 + int64(src.Time.Nanosecond())/1000 - microsecFromUnixEpochToY2K
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(usec))
	return append(buf, b[:]...), nil
}
