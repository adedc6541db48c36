package pgdrv

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/coriolisdb/pgwire/pgconn"
	"github.com/coriolisdb/pgwire/pgproto"
	"github.com/coriolisdb/pgwire/pgtype"
)

// Rows is the lazy row iterator Conn.Query returns, grounded on the
// teacher's baseRows: it wraps a *pgconn.ResultReader and decodes fields
// on demand through the connection's type map.
type Rows struct {
	conn    *Conn
	rr      *pgconn.ResultReader
	typeMap *pgtype.Map
	closed  bool
	err     error

	// noRelease marks a Rows handed out by BatchResults.NextResult: the
	// connection stays busy until BatchResults.Close, not this Rows' own
	// Close, releases it.
	noRelease bool
}

// Next advances to the next row. Callers must call Close (directly or via
// exhaustion) before issuing another operation on the owning Conn.
func (rows *Rows) Next() bool {
	if rows.closed {
		return false
	}
	if rows.rr.NextRow() {
		return true
	}
	rows.Close()
	return false
}

// FieldDescriptions reports the result's column shape.
func (rows *Rows) FieldDescriptions() []pgproto.FieldDescription { return rows.rr.FieldDescriptions() }

// Err reports the first error observed during iteration.
func (rows *Rows) Err() error {
	if rows.err != nil {
		return rows.err
	}
	return rows.rr.Err()
}

// Close releases the row iterator's hold on the connection. Safe to call
// more than once.
func (rows *Rows) Close() {
	if rows.closed {
		return
	}
	rows.closed = true
	_, err := rows.rr.Close()
	if err != nil && rows.err == nil {
		rows.err = err
	}
	if !rows.noRelease {
		rows.conn.release()
	}
}

// CommandTag returns the final command tag, valid once the cycle has
// ended (after Close or exhaustion).
func (rows *Rows) CommandTag() pgconn.CommandTag {
	tag, _ := rows.rr.Close()
	return tag
}

// Values decodes the current row's fields into their codecs' native Go
// representation, falling back to raw bytes or string for unregistered
// OIDs.
func (rows *Rows) Values() ([]any, error) {
	fields := rows.FieldDescriptions()
	raw := rows.rr.Values()
	values := make([]any, len(raw))

	for i, buf := range raw {
		if buf == nil {
			values[i] = nil
			continue
		}
		v, err := decodeField(rows.typeMap, fields[i], buf)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Scan decodes the current row's fields into dest, in declared column
// order, the way database/sql.Rows.Scan does.
func (rows *Rows) Scan(dest ...any) error {
	fields := rows.FieldDescriptions()
	raw := rows.rr.Values()

	if len(fields) != len(dest) {
		return fmt.Errorf("pgdrv: %d fields, %d scan destinations", len(fields), len(dest))
	}

	for i, d := range dest {
		if err := scanField(rows.typeMap, fields[i], raw[i], d); err != nil {
			return fmt.Errorf("pgdrv: scan column %d: %w", i, err)
		}
	}
	return nil
}

func decodeField(typeMap *pgtype.Map, fd pgproto.FieldDescription, buf []byte) (any, error) {
	dt, ok := typeMap.DataTypeForOID(fd.DataTypeOID)
	if !ok {
		return append([]byte(nil), buf...), nil
	}

	value := newValue(dt.Value)
	if err := decodeInto(value, fd.Format, typeMap, buf); err != nil {
		return nil, err
	}
	return value.Get(), nil
}

func decodeInto(value pgtype.Value, format int16, typeMap *pgtype.Map, buf []byte) error {
	if format == pgtype.BinaryFormatCode {
		decoder, ok := value.(pgtype.BinaryDecoder)
		if !ok {
			return fmt.Errorf("pgdrv: %T has no binary decoder", value)
		}
		return decoder.DecodeBinary(typeMap, buf)
	}
	decoder, ok := value.(pgtype.TextDecoder)
	if !ok {
		return fmt.Errorf("pgdrv: %T has no text decoder", value)
	}
	return decoder.DecodeText(typeMap, buf)
}

// scanField decodes one field into dest, which may itself be a
// pgtype.Value (decoded directly, after an OID compatibility check for any
// Value that implements pgtype.OIDAccepter) or an ordinary Go pointer
// (decoded via the OID's registered codec, then reflect-assigned).
func scanField(typeMap *pgtype.Map, fd pgproto.FieldDescription, buf []byte, dest any) error {
	if dest == nil {
		return nil
	}

	if v, ok := dest.(pgtype.Value); ok {
		if a, ok := v.(pgtype.OIDAccepter); ok && !a.Accepts(fd.DataTypeOID) {
			name := ""
			if dt, ok := typeMap.DataTypeForOID(fd.DataTypeOID); ok {
				name = dt.Name
			}
			return &pgtype.WrongTypeError{OID: fd.DataTypeOID, TypeName: name, GoType: fmt.Sprintf("%T", dest)}
		}
		if buf == nil {
			return v.Set(nil)
		}
		return decodeInto(v, fd.Format, typeMap, buf)
	}

	dt, ok := typeMap.DataTypeForOID(fd.DataTypeOID)
	if !ok {
		return &pgtype.WrongTypeError{OID: fd.DataTypeOID, GoType: fmt.Sprintf("%T", dest)}
	}

	value := newValue(dt.Value)
	if buf != nil {
		if err := decodeInto(value, fd.Format, typeMap, buf); err != nil {
			return err
		}
	} else if err := value.Set(nil); err != nil {
		return err
	}

	return assign(dest, value.Get())
}

// assign mirrors database/sql's ConvertAssign closely enough for this
// driver's own scalar and pointer-to-scalar destinations.
func assign(dest, src any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.New("destination must be a non-nil pointer")
	}
	elem := dv.Elem()

	if src == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}

	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(elem.Type()) {
		elem.Set(sv)
		return nil
	}
	if sv.Type().ConvertibleTo(elem.Type()) {
		elem.Set(sv.Convert(elem.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", src, elem.Type())
}

// Row is the single-row convenience Conn.QueryRow returns, in the
// teacher's connRow style: any error is deferred until Scan.
type Row struct {
	rows *Rows
	err  error
}

// Scan advances to the first row and decodes it. Scan on zero rows
// returns ErrNoRows.
func (row *Row) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	defer row.rows.Close()

	if !row.rows.Next() {
		if err := row.rows.Err(); err != nil {
			return err
		}
		return ErrNoRows
	}
	return row.rows.Scan(dest...)
}

// ErrNoRows is returned from Row.Scan when the query produced zero rows.
var ErrNoRows = errors.New("pgdrv: no rows in result set")
