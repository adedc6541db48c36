package pgdrv

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/coriolisdb/pgwire/pgconn"
)

type TxIsoLevel string

const (
	Serializable    TxIsoLevel = "serializable"
	RepeatableRead  TxIsoLevel = "repeatable read"
	ReadCommitted   TxIsoLevel = "read committed"
	ReadUncommitted TxIsoLevel = "read uncommitted"
)

type TxAccessMode string

const (
	ReadWrite TxAccessMode = "read write"
	ReadOnly  TxAccessMode = "read only"
)

type TxDeferrableMode string

const (
	Deferrable    TxDeferrableMode = "deferrable"
	NotDeferrable TxDeferrableMode = "not deferrable"
)

// TxOptions configures a top-level Begin; ignored by nested Begin calls,
// since PostgreSQL savepoints carry no isolation/access-mode options of
// their own.
type TxOptions struct {
	IsoLevel       TxIsoLevel
	AccessMode     TxAccessMode
	DeferrableMode TxDeferrableMode
}

func (o TxOptions) beginSQL() string {
	buf := &bytes.Buffer{}
	buf.WriteString("begin")
	if o.IsoLevel != "" {
		fmt.Fprintf(buf, " isolation level %s", o.IsoLevel)
	}
	if o.AccessMode != "" {
		fmt.Fprintf(buf, " %s", o.AccessMode)
	}
	if o.DeferrableMode != "" {
		fmt.Fprintf(buf, " %s", o.DeferrableMode)
	}
	return buf.String()
}

type txStatus int8

const (
	txStatusInProgress txStatus = iota
	txStatusCommitted
	txStatusRolledBack
	txStatusClosed
)

// ErrTxClosed is returned by any Tx method after Commit or Rollback.
var ErrTxClosed = errors.New("pgdrv: tx is closed")

// Tx implements §4.6's transaction controller: depth 1 is a real BEGIN,
// and a Tx opened while another Tx on the same Conn is already live is a
// SAVEPOINT nested inside it (InTxn(n) -> InTxn(n+1)). Committing or
// rolling back a nested Tx sends RELEASE or ROLLBACK TO + RELEASE and
// drops back to depth n-1; only depth 1's Commit/Rollback touches the
// real transaction.
type Tx struct {
	conn   *Conn
	depth  int
	status txStatus
	err    error
}

// Begin opens a nested transaction (a savepoint) inside tx. The returned
// Tx must be committed or rolled back before tx itself can be.
func (tx *Tx) Begin(ctx context.Context) (*Tx, error) {
	if tx.status != txStatusInProgress {
		return nil, ErrTxClosed
	}
	if err := tx.conn.acquire(); err != nil {
		return nil, err
	}
	defer tx.conn.release()

	n := tx.depth + 1
	sql := fmt.Sprintf("savepoint sp%d", n)
	rr := tx.conn.pg.SimpleQuery(ctx, sql)
	for rr.NextRow() {
	}
	if _, err := rr.Close(); err != nil {
		return nil, err
	}

	tx.conn.txDepth = n
	return &Tx{conn: tx.conn, depth: n, status: txStatusInProgress}, nil
}

func (tx *Tx) failed() bool {
	return tx.conn.pg.TxStatus() == 'E'
}

// Commit closes tx, sending COMMIT at depth 1 or RELEASE sp<n> for a
// nested savepoint. Per §7's propagation policy, committing a Tx whose
// connection is in FailedTxn behaves like Rollback instead.
func (tx *Tx) Commit(ctx context.Context) error {
	if tx.status != txStatusInProgress {
		return ErrTxClosed
	}
	if tx.failed() {
		return tx.finish(ctx, false)
	}
	return tx.finish(ctx, true)
}

// Rollback closes tx, sending ROLLBACK at depth 1 or
// "ROLLBACK TO sp<n>; RELEASE sp<n>" for a nested savepoint. Safe to call
// after Commit has already failed, and safe to defer unconditionally.
func (tx *Tx) Rollback(ctx context.Context) error {
	if tx.status != txStatusInProgress {
		return ErrTxClosed
	}
	return tx.finish(ctx, false)
}

func (tx *Tx) finish(ctx context.Context, commit bool) error {
	if err := tx.conn.acquire(); err != nil {
		return err
	}
	defer tx.conn.release()

	var sql string
	switch {
	case tx.depth == 1 && commit:
		sql = "commit"
	case tx.depth == 1 && !commit:
		sql = "rollback"
	case tx.depth > 1 && commit:
		sql = fmt.Sprintf("release sp%d", tx.depth)
	default:
		sql = fmt.Sprintf("rollback to sp%d; release sp%d", tx.depth, tx.depth)
	}

	rr := tx.conn.pg.SimpleQuery(ctx, sql)
	for rr.NextRow() {
	}
	_, err := rr.Close()

	if commit {
		tx.status = txStatusCommitted
	} else {
		tx.status = txStatusRolledBack
	}
	tx.err = err
	tx.conn.txDepth = tx.depth - 1
	return err
}

// Exec delegates to the underlying Conn.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx.status != txStatusInProgress {
		return nil, ErrTxClosed
	}
	return tx.conn.Exec(ctx, sql, args...)
}

// Query delegates to the underlying Conn.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (*Rows, error) {
	if tx.status != txStatusInProgress {
		return nil, ErrTxClosed
	}
	return tx.conn.Query(ctx, sql, args...)
}

// QueryRow delegates to the underlying Conn.
func (tx *Tx) QueryRow(ctx context.Context, sql string, args ...any) *Row {
	if tx.status != txStatusInProgress {
		return &Row{err: ErrTxClosed}
	}
	return tx.conn.QueryRow(ctx, sql, args...)
}

// Prepare delegates to the underlying Conn.
func (tx *Tx) Prepare(ctx context.Context, sql string) (*Stmt, error) {
	if tx.status != txStatusInProgress {
		return nil, ErrTxClosed
	}
	return tx.conn.Prepare(ctx, sql)
}

// Err returns the error, if any, from the Commit or Rollback that closed
// tx.
func (tx *Tx) Err() error { return tx.err }
