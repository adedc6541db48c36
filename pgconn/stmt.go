package pgconn

import (
	"context"
	"strconv"

	"github.com/coriolisdb/pgwire/internal/stmtcache"
	"github.com/coriolisdb/pgwire/pgproto"
)

// StatementDescription is the session engine's record of a prepared
// statement: its wire name, the SQL it was prepared from, the parameter
// type OIDs the server inferred, and its result column descriptors.
type StatementDescription = stmtcache.StatementDescription

// closeCachedStatement is the statement cache's eviction callback: it
// closes the evicted statement on the wire and drains to ReadyForQuery
// before returning, so the cache never gets ahead of what the server
// actually still has prepared.
func (c *PgConn) closeCachedStatement(sd *StatementDescription) {
	_ = c.frontend.Send(&pgproto.Close{ObjectType: 'S', Name: sd.Name})
	_ = c.frontend.Send(&pgproto.Sync{})
	if err := c.frontend.Flush(); err != nil {
		return
	}
	for {
		msg, err := c.receive()
		if err != nil {
			return
		}
		if rfq, ok := msg.(*pgproto.ReadyForQuery); ok {
			c.txStatus = rfq.TxStatus
			return
		}
	}
}

// Prepare implements §4.3: it generates a fresh name s<counter> for sql
// (reusing the statement already in the statement cache, if any), sends
// Parse→Describe(statement)→Sync, and reads back ParseComplete,
// ParameterDescription, RowDescription-or-NoData, and ReadyForQuery. Any
// ErrorResponse is drained to ReadyForQuery before being returned.
func (c *PgConn) Prepare(ctx context.Context, sql string) (*StatementDescription, error) {
	if sd := c.statementCache.Get(sql); sd != nil {
		return sd, nil
	}

	c.stmtCounter++
	name := "s" + strconv.Itoa(c.stmtCounter)

	if err := c.frontend.Send(&pgproto.Parse{Name: name, Query: sql}); err != nil {
		return nil, &IoError{Err: err}
	}
	if err := c.frontend.Send(&pgproto.Describe{ObjectType: 'S', Name: name}); err != nil {
		return nil, &IoError{Err: err}
	}
	if err := c.frontend.Send(&pgproto.Sync{}); err != nil {
		return nil, &IoError{Err: err}
	}
	if err := c.frontend.Flush(); err != nil {
		return nil, &IoError{Err: err}
	}

	sd := &StatementDescription{Name: name, SQL: sql}
	var firstErr error

	for {
		msg, err := c.receive()
		if err != nil {
			return nil, err
		}

		switch msg := msg.(type) {
		case *pgproto.ParseComplete:
		case *pgproto.ParameterDescription:
			sd.ParamOIDs = append([]uint32(nil), msg.ParameterOIDs...)
		case *pgproto.RowDescription:
			sd.Fields = append([]pgproto.FieldDescription(nil), msg.Fields...)
		case *pgproto.NoData:
		case *pgproto.ErrorResponse:
			if firstErr == nil {
				firstErr = ErrorResponseToPgError(msg)
			}
		case *pgproto.ReadyForQuery:
			c.txStatus = msg.TxStatus
			if firstErr != nil {
				return nil, firstErr
			}
			c.statementCache.Put(sd)
			return sd, nil
		default:
			return nil, &InvalidStateError{Reason: "unexpected message during Prepare"}
		}
	}
}

// Deallocate evicts sql's statement from the cache (if present) and
// closes it on the wire immediately.
func (c *PgConn) Deallocate(ctx context.Context, sql string) {
	c.statementCache.Invalidate(sql)
}
