package pgtype

import (
	"fmt"
	"time"
)

const pgTimestamptzFormat = "2006-01-02 15:04:05.999999999Z07:00"

// Timestamptz represents a timestamp with time zone. The server always
// sends these normalized to UTC; Time carries that UTC instant.
type Timestamptz struct {
	Time             time.Time
	InfinityModifier InfinityModifier
	Status           Status
}

func (dst *Timestamptz) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Timestamptz{Status: Null}
	case time.Time:
		*dst = Timestamptz{Time: value, Status: Present}
	default:
		return fmt.Errorf("cannot convert %v to Timestamptz", src)
	}
	return nil
}

func (dst *Timestamptz) Accepts(oid uint32) bool { return oid == TimestampTzOID }

func (src Timestamptz) Get() any {
	if src.Status != Present {
		return nil
	}
	if src.InfinityModifier != None {
		return src.InfinityModifier
	}
	return src.Time
}

func (dst *Timestamptz) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Timestamptz{Status: Null}
		return nil
	}
	s := string(src)
	switch s {
	case "infinity":
		*dst = Timestamptz{InfinityModifier: Infinity, Status: Present}
		return nil
	case "-infinity":
		*dst = Timestamptz{InfinityModifier: NegativeInfinity, Status: Present}
		return nil
	}
	t, err := time.Parse(pgTimestamptzFormat, s)
	if err != nil {
		return err
	}
	*dst = Timestamptz{Time: t.UTC(), Status: Present}
	return nil
}

func (dst *Timestamptz) DecodeBinary(ci *Map, src []byte) error {
	var ts Timestamp
	if err := ts.DecodeBinary(ci, src); err != nil {
		return err
	}
	*dst = Timestamptz{Time: ts.Time, InfinityModifier: ts.InfinityModifier, Status: ts.Status}
	return nil
}

func (src Timestamptz) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	switch src.InfinityModifier {
	case Infinity:
		return append(buf, "infinity"...), nil
	case NegativeInfinity:
		return append(buf, "-infinity"...), nil
	}
	return append(buf, src.Time.UTC().Format(pgTimestamptzFormat)...), nil
}

func (src Timestamptz) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	ts := Timestamp{Time: src.Time, InfinityModifier: src.InfinityModifier, Status: src.Status}
	return ts.EncodeBinary(ci, buf)
}
