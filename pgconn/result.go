package pgconn

import (
	"context"

	"github.com/coriolisdb/pgwire/pgproto"
)

// ResultReader is the lazy row iterator §4.4 and §4.5 both produce: one
// DataRow at a time, with the final CommandTag available once the cycle
// reaches ReadyForQuery.
type ResultReader struct {
	conn   *PgConn
	fields []pgproto.FieldDescription

	rowValues  [][]byte
	commandTag CommandTag
	err        error
	closed     bool

	// batchBoundary marks a reader handed out by BatchResults.NextResult:
	// its cycle ends at this item's CommandComplete/EmptyQueryResponse
	// rather than at the batch's single trailing ReadyForQuery.
	batchBoundary bool
}

// FieldDescriptions reports the result's column shape, known once the
// first RowDescription (simple query) or immediately (extended query,
// copied from the statement description) has been seen.
func (rr *ResultReader) FieldDescriptions() []pgproto.FieldDescription { return rr.fields }

// NextRow advances to the next row, returning false at the end of the
// cycle (whether from exhaustion or from an error — callers check Err
// after a false return).
func (rr *ResultReader) NextRow() bool {
	if rr.closed {
		return false
	}
	for {
		msg, err := rr.conn.receive()
		if err != nil {
			rr.err = err
			rr.closed = true
			return false
		}

		switch msg := msg.(type) {
		case *pgproto.BindComplete:
		case *pgproto.RowDescription:
			rr.fields = append([]pgproto.FieldDescription(nil), msg.Fields...)
		case *pgproto.DataRow:
			rr.rowValues = msg.Values
			return true
		case *pgproto.CommandComplete:
			rr.commandTag = CommandTag(msg.CommandTag)
			if rr.batchBoundary {
				return false
			}
		case *pgproto.EmptyQueryResponse:
			if rr.batchBoundary {
				return false
			}
		case *pgproto.PortalSuspended:
		case *pgproto.ErrorResponse:
			if rr.err == nil {
				rr.err = ErrorResponseToPgError(msg)
			}
		case *pgproto.ReadyForQuery:
			rr.conn.txStatus = msg.TxStatus
			rr.closed = true
			return false
		}
	}
}

// Values returns the current row's fields, each either raw bytes or nil
// for SQL NULL, in the negotiated format.
func (rr *ResultReader) Values() [][]byte { return rr.rowValues }

// Err reports the first ErrorResponse observed, or a transport error.
func (rr *ResultReader) Err() error { return rr.err }

// Close finishes the cycle. If the caller abandons the iterator before
// exhaustion, Close sends Close(portal)+Sync and drains to ReadyForQuery,
// discarding any ErrorResponse encountered along the way — the safe
// choice for §9's second Open Question. If the cycle already reached
// ReadyForQuery on its own, Close just returns the tag and error already
// recorded.
func (rr *ResultReader) Close() (CommandTag, error) {
	if rr.closed {
		return rr.commandTag, rr.err
	}

	_ = rr.conn.frontend.Send(&pgproto.Close{ObjectType: 'P', Name: ""})
	_ = rr.conn.frontend.Send(&pgproto.Sync{})
	if err := rr.conn.frontend.Flush(); err != nil {
		rr.closed = true
		return rr.commandTag, &IoError{Err: err}
	}

	for {
		msg, err := rr.conn.receive()
		if err != nil {
			rr.closed = true
			return rr.commandTag, err
		}
		switch msg := msg.(type) {
		case *pgproto.CommandComplete:
			rr.commandTag = CommandTag(msg.CommandTag)
		case *pgproto.ReadyForQuery:
			rr.conn.txStatus = msg.TxStatus
			rr.closed = true
			return rr.commandTag, nil
		}
	}
}

// ExecParams runs sd as an extended-query cycle: Bind(portal="") with the
// given parameter values and format codes, then Execute(maxRows=0), then
// Sync. Parameter arity is checked before anything is written to the
// transport, per spec.md's invariant.
func (c *PgConn) ExecParams(ctx context.Context, sd *StatementDescription, paramValues [][]byte, paramFormats, resultFormats []int16) *ResultReader {
	if len(paramValues) != len(sd.ParamOIDs) {
		return &ResultReader{err: &WrongParamCountError{Expected: len(sd.ParamOIDs), Actual: len(paramValues)}, closed: true}
	}

	if err := c.frontend.Send(&pgproto.Bind{
		PreparedStatement:    sd.Name,
		ParameterFormatCodes: paramFormats,
		Parameters:           paramValues,
		ResultFormatCodes:    resultFormats,
	}); err != nil {
		return &ResultReader{err: &IoError{Err: err}, closed: true}
	}
	if err := c.frontend.Send(&pgproto.Execute{Portal: "", MaxRows: 0}); err != nil {
		return &ResultReader{err: &IoError{Err: err}, closed: true}
	}
	if err := c.frontend.Send(&pgproto.Sync{}); err != nil {
		return &ResultReader{err: &IoError{Err: err}, closed: true}
	}
	if err := c.frontend.Flush(); err != nil {
		return &ResultReader{err: &IoError{Err: err}, closed: true}
	}

	return &ResultReader{conn: c, fields: sd.Fields}
}

// SimpleQuery runs sql via the simple query sub-protocol (§4.5): no
// parameters, no Parse/Bind, just Query→result stream→ReadyForQuery.
func (c *PgConn) SimpleQuery(ctx context.Context, sql string) *ResultReader {
	if err := c.frontend.Send(&pgproto.Query{String: sql}); err != nil {
		return &ResultReader{err: &IoError{Err: err}, closed: true}
	}
	if err := c.frontend.Flush(); err != nil {
		return &ResultReader{err: &IoError{Err: err}, closed: true}
	}
	return &ResultReader{conn: c}
}
