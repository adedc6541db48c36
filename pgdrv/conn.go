// Package pgdrv is the public face of the driver: Conn, Rows/Row, Stmt,
// and Tx, built on pgconn's session engine and pgtype's value codec, the
// way the teacher's root package sits on top of its own pgconn.
package pgdrv

import (
	"context"
	"errors"
	"fmt"

	"github.com/coriolisdb/pgwire/dsn"
	"github.com/coriolisdb/pgwire/pgconn"
	"github.com/coriolisdb/pgwire/pgtype"
	"github.com/coriolisdb/pgwire/pgxlog"
)

// ErrBusy is returned when an operation is attempted on a Conn that
// already has a live Rows (or an operation still in flight) consuming it,
// implementing §5's runtime single-consumer guard. An open Tx does not
// make the Conn busy; its methods acquire the Conn per call.
var ErrBusy = errors.New("pgdrv: connection has a live statement or rows in progress")

// ErrClosed is returned by any operation on a Conn after Close.
var ErrClosed = errors.New("pgdrv: connection is closed")

// Conn is a single, non-concurrent-safe connection to the server. At most
// one Rows or in-flight operation may consume it at a time; Conn enforces
// this at runtime with the busy flag below rather than at compile time,
// since Go has no borrow checker.
type Conn struct {
	pg      *pgconn.PgConn
	typeMap *pgtype.Map
	logger  pgxlog.Logger

	busy   bool
	closed bool

	// txDepth records the current nested transaction depth, kept up to
	// date by Tx; BeginTx refuses to start a top-level transaction while it
	// is non-zero.
	txDepth int
}

// Connect parses connString with the dsn package and dials it.
func Connect(ctx context.Context, connString string) (*Conn, error) {
	config, err := dsn.Parse(connString)
	if err != nil {
		return nil, err
	}
	return ConnectConfig(ctx, config)
}

// ConnectConfig dials an already-built pgconn.Config, for callers that
// assembled one directly rather than through a connection string.
func ConnectConfig(ctx context.Context, config *pgconn.Config) (*Conn, error) {
	pg, err := pgconn.Connect(ctx, config)
	if err != nil {
		return nil, err
	}
	return &Conn{pg: pg, typeMap: pgtype.NewMap()}, nil
}

// TypeMap returns the connection's codec registry, open to registering
// additional or overriding codecs before first use.
func (c *Conn) TypeMap() *pgtype.Map { return c.typeMap }

// SetLogger attaches a pgxlog.Logger; every Exec/Query logs the
// sanitized query text at Debug, and failures at Error. A nil logger
// (the default) disables query logging entirely.
func (c *Conn) SetLogger(logger pgxlog.Logger) { c.logger = logger }

func (c *Conn) logQuery(ctx context.Context, sql string, args []any, err error) {
	if c.logger == nil {
		return
	}
	fields := pgxlog.QueryFields(sql, args)
	if err != nil {
		fields["err"] = err.Error()
		c.logger.Log(ctx, pgxlog.LogLevelError, "query failed", fields)
		return
	}
	c.logger.Log(ctx, pgxlog.LogLevelDebug, "query", fields)
}

func (c *Conn) acquire() error {
	if c.closed {
		return ErrClosed
	}
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

func (c *Conn) release() { c.busy = false }

// Close sends Terminate and releases the transport. Close is idempotent.
func (c *Conn) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.pg.Close(ctx)
}

// Cancel asks the server to cancel whatever the connection is currently
// running, over a separate transport, per §5.
func (c *Conn) Cancel(ctx context.Context) error {
	return c.pg.Cancel(ctx)
}

// Prepare parses and describes sql, returning a reusable Stmt.
func (c *Conn) Prepare(ctx context.Context, sql string) (*Stmt, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	sd, err := c.pg.Prepare(ctx, sql)
	if err != nil {
		return nil, err
	}
	return &Stmt{conn: c, sd: sd}, nil
}

// Deallocate evicts sql's cached statement and closes it on the wire.
func (c *Conn) Deallocate(ctx context.Context, sql string) {
	c.pg.Deallocate(ctx, sql)
}

// Exec runs sql to completion and returns its command tag. With no
// arguments it takes the simple-query short path per §4.5; with
// arguments it is prepare+execute+close per §4.4.
func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	rr, err := c.execLocked(ctx, sql, args)
	if err != nil {
		c.logQuery(ctx, sql, args, err)
		return nil, err
	}
	for rr.NextRow() {
	}
	tag, err := rr.Close()
	c.logQuery(ctx, sql, args, err)
	return tag, err
}

func (c *Conn) execLocked(ctx context.Context, sql string, args []any) (*pgconn.ResultReader, error) {
	if len(args) == 0 {
		return c.pg.SimpleQuery(ctx, sql), nil
	}

	sd, err := c.pg.Prepare(ctx, sql)
	if err != nil {
		return nil, err
	}
	paramValues, paramFormats, resultFormats, err := encodeParams(c.typeMap, sd, args)
	if err != nil {
		return nil, err
	}
	return c.pg.ExecParams(ctx, sd, paramValues, paramFormats, resultFormats), nil
}

// Query runs sql and returns a lazy row iterator. The connection is busy
// (ErrBusy on any other operation) until the Rows is closed or exhausted.
func (c *Conn) Query(ctx context.Context, sql string, args ...any) (*Rows, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}

	rr, err := c.execLocked(ctx, sql, args)
	c.logQuery(ctx, sql, args, err)
	if err != nil {
		c.release()
		return nil, err
	}
	return &Rows{conn: c, rr: rr, typeMap: c.typeMap}, nil
}

// QueryRow is Query followed by an implicit Close after the first row, in
// the teacher's connRow style: errors are deferred to Scan.
func (c *Conn) QueryRow(ctx context.Context, sql string, args ...any) *Row {
	rows, err := c.Query(ctx, sql, args...)
	if err != nil {
		return &Row{err: err}
	}
	return &Row{rows: rows}
}

// Begin starts a top-level transaction with default options.
func (c *Conn) Begin(ctx context.Context) (*Tx, error) {
	return c.BeginTx(ctx, TxOptions{})
}

// BeginTx starts a top-level transaction with the given options. It
// returns an error if a Tx is already open on c; nested savepoints are
// opened with Tx.Begin instead.
func (c *Conn) BeginTx(ctx context.Context, opts TxOptions) (*Tx, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	if c.txDepth != 0 {
		return nil, fmt.Errorf("pgdrv: BUG: txDepth %d at top-level Begin", c.txDepth)
	}

	rr := c.pg.SimpleQuery(ctx, opts.beginSQL())
	for rr.NextRow() {
	}
	if _, err := rr.Close(); err != nil {
		return nil, err
	}
	c.txDepth = 1
	return &Tx{conn: c, depth: 1, status: txStatusInProgress}, nil
}
