package pgdrv_test

import (
	"context"
	"testing"
	"time"

	"github.com/coriolisdb/pgwire/internal/pgmock"
	"github.com/coriolisdb/pgwire/pgdrv"
	"github.com/coriolisdb/pgwire/pgproto"

	"github.com/stretchr/testify/require"
)

func queryRoundTrip(sql, tag string, txStatus byte) []pgmock.Step {
	return []pgmock.Step{
		pgmock.ExpectMessage(&pgproto.Query{String: sql}),
		pgmock.SendMessage(&pgproto.CommandComplete{CommandTag: []byte(tag)}),
		pgmock.SendMessage(&pgproto.ReadyForQuery{TxStatus: txStatus}),
	}
}

// TestNestedTransactionCommit drives a top-level Begin, a nested Begin
// (savepoint), committing the nested transaction, then the outer one,
// exercising §4.6's InTxn(n) -> InTxn(n+1) -> InTxn(n) -> Idle path.
func TestNestedTransactionCommit(t *testing.T) {
	steps := pgmock.AcceptUnauthenticatedConnRequestSteps()
	steps = append(steps, queryRoundTrip("begin", "BEGIN", 'T')...)
	steps = append(steps, queryRoundTrip("savepoint sp2", "SAVEPOINT", 'T')...)
	steps = append(steps, queryRoundTrip("release sp2", "RELEASE", 'T')...)
	steps = append(steps, queryRoundTrip("commit", "COMMIT", 'I')...)
	steps = append(steps, pgmock.ExpectMessage(&pgproto.Terminate{}))

	config := startMockServer(t, &pgmock.Script{Steps: steps})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := pgdrv.ConnectConfig(ctx, config)
	require.NoError(t, err)

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)

	nested, err := tx.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, nested.Commit(ctx))
	require.NoError(t, tx.Commit(ctx))

	require.NoError(t, conn.Close(ctx))
}

// TestTransactionRollback exercises a top-level Begin followed by Rollback,
// InTxn(1) -> Idle via ROLLBACK.
func TestTransactionRollback(t *testing.T) {
	steps := pgmock.AcceptUnauthenticatedConnRequestSteps()
	steps = append(steps, queryRoundTrip("begin", "BEGIN", 'T')...)
	steps = append(steps, queryRoundTrip("rollback", "ROLLBACK", 'I')...)
	steps = append(steps, pgmock.ExpectMessage(&pgproto.Terminate{}))

	config := startMockServer(t, &pgmock.Script{Steps: steps})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := pgdrv.ConnectConfig(ctx, config)
	require.NoError(t, err)

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	require.NoError(t, conn.Close(ctx))
}

// TestTransactionClosedGuard checks that a second Commit after the first
// returns ErrTxClosed without touching the wire again.
func TestTransactionClosedGuard(t *testing.T) {
	steps := pgmock.AcceptUnauthenticatedConnRequestSteps()
	steps = append(steps, queryRoundTrip("begin", "BEGIN", 'T')...)
	steps = append(steps, queryRoundTrip("commit", "COMMIT", 'I')...)
	steps = append(steps, pgmock.ExpectMessage(&pgproto.Terminate{}))

	config := startMockServer(t, &pgmock.Script{Steps: steps})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := pgdrv.ConnectConfig(ctx, config)
	require.NoError(t, err)

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	err = tx.Commit(ctx)
	require.ErrorIs(t, err, pgdrv.ErrTxClosed)

	require.NoError(t, conn.Close(ctx))
}
