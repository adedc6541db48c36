package pgdrv_test

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/coriolisdb/pgwire/internal/pgmock"
	"github.com/coriolisdb/pgwire/pgconn"
	"github.com/coriolisdb/pgwire/pgdrv"
	"github.com/coriolisdb/pgwire/pgproto"
	"github.com/coriolisdb/pgwire/pgtype"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startMockServer runs script against the first accepted connection on a
// fresh loopback listener and returns a *pgconn.Config dialing it.
func startMockServer(t *testing.T, script *pgmock.Script) *pgconn.Config {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	serverErrChan := make(chan error, 1)
	go func() {
		defer close(serverErrChan)

		conn, err := ln.Accept()
		if err != nil {
			serverErrChan <- err
			return
		}
		defer conn.Close()

		if err := conn.SetDeadline(time.Now().Add(2 * time.Second)); err != nil {
			serverErrChan <- err
			return
		}

		serverErrChan <- script.Run(pgmock.NewBackend(conn, conn))
	}()
	t.Cleanup(func() {
		if err := <-serverErrChan; err != nil {
			t.Errorf("mock server: %v", err)
		}
	})

	host, portStr, _ := strings.Cut(ln.Addr().String(), ":")
	port, err := strconv.ParseUint(portStr, 10, 16)
	require.NoError(t, err)

	return &pgconn.Config{Host: host, Port: uint16(port), Database: "postgres", User: "postgres"}
}

func selectFortyTwoScript() *pgmock.Script {
	script := &pgmock.Script{Steps: pgmock.AcceptUnauthenticatedConnRequestSteps()}
	script.Steps = append(script.Steps,
		pgmock.ExpectMessage(&pgproto.Query{String: "select 42"}),
		pgmock.SendMessage(&pgproto.RowDescription{Fields: []pgproto.FieldDescription{
			{Name: "?column?", DataTypeOID: 23, DataTypeSize: 4},
		}}),
		pgmock.SendMessage(&pgproto.DataRow{Values: [][]byte{[]byte("42")}}),
		pgmock.SendMessage(&pgproto.CommandComplete{CommandTag: []byte("SELECT 1")}),
		pgmock.SendMessage(&pgproto.ReadyForQuery{TxStatus: 'I'}),
		pgmock.ExpectMessage(&pgproto.Terminate{}),
	)
	return script
}

func TestConnQuery(t *testing.T) {
	config := startMockServer(t, selectFortyTwoScript())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := pgdrv.ConnectConfig(ctx, config)
	require.NoError(t, err)

	rows, err := conn.Query(ctx, "select 42")
	require.NoError(t, err)

	var got []int32
	for rows.Next() {
		var v int32
		require.NoError(t, rows.Scan(&v))
		got = append(got, v)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int32{42}, got)

	require.NoError(t, conn.Close(ctx))
}

// TestScanWrongTypeOIDMismatch covers the fast path in scanField: a
// caller-supplied pgtype.Value must be rejected against a column whose OID
// it doesn't accept, not handed raw bytes to decode regardless.
func TestScanWrongTypeOIDMismatch(t *testing.T) {
	script := &pgmock.Script{Steps: pgmock.AcceptUnauthenticatedConnRequestSteps()}
	script.Steps = append(script.Steps,
		pgmock.ExpectMessage(&pgproto.Query{String: "select 'hi'"}),
		pgmock.SendMessage(&pgproto.RowDescription{Fields: []pgproto.FieldDescription{
			{Name: "?column?", DataTypeOID: pgtype.TextOID, DataTypeSize: -1},
		}}),
		pgmock.SendMessage(&pgproto.DataRow{Values: [][]byte{[]byte("hi")}}),
		pgmock.SendMessage(&pgproto.CommandComplete{CommandTag: []byte("SELECT 1")}),
		pgmock.SendMessage(&pgproto.ReadyForQuery{TxStatus: 'I'}),
		pgmock.ExpectMessage(&pgproto.Terminate{}),
	)
	config := startMockServer(t, script)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := pgdrv.ConnectConfig(ctx, config)
	require.NoError(t, err)

	rows, err := conn.Query(ctx, "select 'hi'")
	require.NoError(t, err)
	require.True(t, rows.Next())

	var dest pgtype.Int4
	err = rows.Scan(&dest)
	var wrongType *pgtype.WrongTypeError
	require.ErrorAs(t, err, &wrongType)
	assert.Equal(t, uint32(pgtype.TextOID), wrongType.OID)

	for rows.Next() {
	}
	require.NoError(t, rows.Err())
	require.NoError(t, conn.Close(ctx))
}

func TestConnBusyGuard(t *testing.T) {
	config := startMockServer(t, selectFortyTwoScript())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := pgdrv.ConnectConfig(ctx, config)
	require.NoError(t, err)

	rows, err := conn.Query(ctx, "select 42")
	require.NoError(t, err)

	_, err = conn.Exec(ctx, "select 1")
	assert.ErrorIs(t, err, pgdrv.ErrBusy)

	for rows.Next() {
	}
	require.NoError(t, rows.Err())

	require.NoError(t, conn.Close(ctx))
}

func TestConnClosedGuard(t *testing.T) {
	config := startMockServer(t, &pgmock.Script{Steps: append(
		pgmock.AcceptUnauthenticatedConnRequestSteps(),
		pgmock.ExpectMessage(&pgproto.Terminate{}),
	)})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	conn, err := pgdrv.ConnectConfig(ctx, config)
	require.NoError(t, err)
	require.NoError(t, conn.Close(ctx))

	_, err = conn.Exec(ctx, "select 1")
	assert.ErrorIs(t, err, pgdrv.ErrClosed)
}
