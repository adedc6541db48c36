package pgtype

import (
	"encoding/binary"
	"fmt"
	"time"
)

const pgDateFormat = "2006-01-02"

// dateEpoch is the server's day-zero for the binary date format: 2000-01-01.
var dateEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	negativeInfinityDayOffset = -2147483648
	infinityDayOffset         = 2147483647
)

type Date struct {
	Time             time.Time
	InfinityModifier InfinityModifier
	Status           Status
}

func (dst *Date) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Date{Status: Null}
	case time.Time:
		*dst = Date{Time: value, Status: Present}
	case string:
		return dst.DecodeText(nil, []byte(value))
	default:
		return fmt.Errorf("cannot convert %v to Date", src)
	}
	return nil
}

func (dst *Date) Accepts(oid uint32) bool { return oid == DateOID }

func (src Date) Get() any {
	switch src.Status {
	case Null:
		return nil
	case Present:
		if src.InfinityModifier != None {
			return src.InfinityModifier.String()
		}
		return src.Time
	default:
		return nil
	}
}

func (dst *Date) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Date{Status: Null}
		return nil
	}
	s := string(src)
	switch s {
	case "infinity":
		*dst = Date{InfinityModifier: Infinity, Status: Present}
		return nil
	case "-infinity":
		*dst = Date{InfinityModifier: NegativeInfinity, Status: Present}
		return nil
	}
	t, err := time.ParseInLocation(pgDateFormat, s, time.UTC)
	if err != nil {
		return err
	}
	*dst = Date{Time: t, Status: Present}
	return nil
}

func (dst *Date) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Date{Status: Null}
		return nil
	}
	if len(src) != 4 {
		return fmt.Errorf("invalid length for date: %v", len(src))
	}
	dayOffset := int32(binary.BigEndian.Uint32(src))

	switch dayOffset {
	case infinityDayOffset:
		*dst = Date{InfinityModifier: Infinity, Status: Present}
		return nil
	case negativeInfinityDayOffset:
		*dst = Date{InfinityModifier: NegativeInfinity, Status: Present}
		return nil
	}

	*dst = Date{Time: dateEpoch.AddDate(0, 0, int(dayOffset)), Status: Present}
	return nil
}

func (src Date) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	switch src.Status {
	case Null:
		return nil, nil
	case Undefined:
		return nil, fmt.Errorf("cannot encode undefined")
	}
	switch src.InfinityModifier {
	case Infinity:
		return append(buf, "infinity"...), nil
	case NegativeInfinity:
		return append(buf, "-infinity"...), nil
	}
	return append(buf, src.Time.Format(pgDateFormat)...), nil
}

func (src Date) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	switch src.Status {
	case Null:
		return nil, nil
	case Undefined:
		return nil, fmt.Errorf("cannot encode undefined")
	}

	var dayOffset int32
	switch src.InfinityModifier {
	case Infinity:
		dayOffset = infinityDayOffset
	case NegativeInfinity:
		dayOffset = negativeInfinityDayOffset
	default:
		dayOffset = int32(src.Time.Sub(dateEpoch).Hours() / 24)
	}

	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(dayOffset))
	return append(buf, b[:]...), nil
}

func (m InfinityModifier) String() string {
	switch m {
	case Infinity:
		return "infinity"
	case NegativeInfinity:
		return "-infinity"
	default:
		return "none"
	}
}
