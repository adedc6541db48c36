package pgdrv

import (
	"fmt"
	"reflect"

	"github.com/coriolisdb/pgwire/internal/anynil"
	"github.com/coriolisdb/pgwire/internal/stmtcache"
	"github.com/coriolisdb/pgwire/pgconn"
	"github.com/coriolisdb/pgwire/pgtype"
)

// encodeParams implements §4.4 step 1: validate arity, then encode each
// argument using the codec registered for its statement-declared OID,
// choosing binary format whenever that OID has a binary-capable codec and
// text otherwise. Result columns are requested in binary wherever the
// type map has a codec for their OID.
func encodeParams(typeMap *pgtype.Map, sd *stmtcache.StatementDescription, args []any) (values [][]byte, paramFormats, resultFormats []int16, err error) {
	if len(args) != len(sd.ParamOIDs) {
		return nil, nil, nil, &pgconn.WrongParamCountError{Expected: len(sd.ParamOIDs), Actual: len(args)}
	}

	values = make([][]byte, len(args))
	paramFormats = make([]int16, len(args))

	for i, arg := range args {
		buf, format, encErr := encodeParam(typeMap, sd.ParamOIDs[i], arg)
		if encErr != nil {
			return nil, nil, nil, fmt.Errorf("pgdrv: parameter %d: %w", i, encErr)
		}
		values[i] = buf
		paramFormats[i] = format
	}

	resultFormats = make([]int16, len(sd.Fields))
	for i, fd := range sd.Fields {
		if _, ok := typeMap.DataTypeForOID(fd.DataTypeOID); ok {
			resultFormats[i] = pgtype.BinaryFormatCode
		} else {
			resultFormats[i] = pgtype.TextFormatCode
		}
	}

	return values, paramFormats, resultFormats, nil
}

func encodeParam(typeMap *pgtype.Map, oid uint32, arg any) ([]byte, int16, error) {
	if anynil.Is(arg) {
		return nil, pgtype.BinaryFormatCode, nil
	}

	dt, ok := typeMap.DataTypeForOID(oid)
	if !ok {
		if s, ok := arg.(string); ok {
			return []byte(s), pgtype.TextFormatCode, nil
		}
		return nil, 0, fmt.Errorf("no codec registered for OID %d and argument is not a string", oid)
	}

	value := newValue(dt.Value)
	if err := value.Set(arg); err != nil {
		return nil, 0, err
	}

	if encoder, ok := value.(pgtype.BinaryEncoder); ok {
		buf, err := encoder.EncodeBinary(typeMap, nil)
		if err != nil {
			return nil, 0, err
		}
		return buf, pgtype.BinaryFormatCode, nil
	}
	if encoder, ok := value.(pgtype.TextEncoder); ok {
		buf, err := encoder.EncodeText(typeMap, nil)
		if err != nil {
			return nil, 0, err
		}
		return buf, pgtype.TextFormatCode, nil
	}

	return nil, 0, fmt.Errorf("codec for OID %d does not support encoding", oid)
}

// newValue returns a fresh zero instance of template's concrete type, so
// encoding and decoding never mutate the shared template a *pgtype.Map
// keeps registered per OID.
func newValue(template pgtype.Value) pgtype.Value {
	return reflect.New(reflect.TypeOf(template).Elem()).Interface().(pgtype.Value)
}
