package pgmock_test

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/coriolisdb/pgwire/internal/pgmock"
	"github.com/coriolisdb/pgwire/pgconn"
	"github.com/coriolisdb/pgwire/pgproto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	script := &pgmock.Script{
		Steps: pgmock.AcceptUnauthenticatedConnRequestSteps(),
	}
	script.Steps = append(script.Steps, pgmock.ExpectMessage(&pgproto.Query{String: "select 42"}))
	script.Steps = append(script.Steps, pgmock.SendMessage(&pgproto.RowDescription{
		Fields: []pgproto.FieldDescription{
			{
				Name:         "?column?",
				DataTypeOID:  23,
				DataTypeSize: 4,
				TypeModifier: 0xFFFFFFFF,
				Format:       0,
			},
		},
	}))
	script.Steps = append(script.Steps, pgmock.SendMessage(&pgproto.DataRow{
		Values: [][]byte{[]byte("42")},
	}))
	script.Steps = append(script.Steps, pgmock.SendMessage(&pgproto.CommandComplete{CommandTag: []byte("SELECT 1")}))
	script.Steps = append(script.Steps, pgmock.SendMessage(&pgproto.ReadyForQuery{TxStatus: 'I'}))
	script.Steps = append(script.Steps, pgmock.ExpectMessage(&pgproto.Terminate{}))

	ln, err := net.Listen("tcp", "127.0.0.1:")
	require.NoError(t, err)
	defer ln.Close()

	serverErrChan := make(chan error, 1)
	go func() {
		defer close(serverErrChan)

		conn, err := ln.Accept()
		if err != nil {
			serverErrChan <- err
			return
		}
		defer conn.Close()

		if err := conn.SetDeadline(time.Now().Add(time.Second)); err != nil {
			serverErrChan <- err
			return
		}

		if err := script.Run(pgmock.NewBackend(conn, conn)); err != nil {
			serverErrChan <- err
			return
		}
	}()

	host, portStr, _ := strings.Cut(ln.Addr().String(), ":")
	port, err := strconv.ParseUint(portStr, 10, 16)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	config := &pgconn.Config{Host: host, Port: uint16(port), Database: "postgres", User: "postgres"}
	pgConn, err := pgconn.Connect(ctx, config)
	require.NoError(t, err)

	rr := pgConn.SimpleQuery(ctx, "select 42")
	var rows [][]byte
	for rr.NextRow() {
		rows = append(rows, rr.Values()[0])
	}
	tag, err := rr.Close()
	assert.NoError(t, err)
	assert.Equal(t, "SELECT 1", tag.String())
	assert.Len(t, rows, 1)
	assert.Equal(t, "42", string(rows[0]))

	pgConn.Close(ctx)

	assert.NoError(t, <-serverErrChan)
}
