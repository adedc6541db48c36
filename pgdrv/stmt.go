package pgdrv

import (
	"context"

	"github.com/coriolisdb/pgwire/internal/stmtcache"
	"github.com/coriolisdb/pgwire/pgconn"
)

// Stmt is a handle to a statement already parsed and described on the
// wire. Re-running it skips the Parse/Describe round trip Conn.Exec and
// Conn.Query would otherwise repeat for the same SQL text.
type Stmt struct {
	conn *Conn
	sd   *stmtcache.StatementDescription
}

// ParamOIDs reports the parameter type OIDs the server inferred.
func (s *Stmt) ParamOIDs() []uint32 { return append([]uint32(nil), s.sd.ParamOIDs...) }

// Exec runs the statement to completion and returns its command tag.
func (s *Stmt) Exec(ctx context.Context, args ...any) (pgconn.CommandTag, error) {
	if err := s.conn.acquire(); err != nil {
		return nil, err
	}
	defer s.conn.release()

	rr, err := s.execLocked(ctx, args)
	if err != nil {
		return nil, err
	}
	for rr.NextRow() {
	}
	return rr.Close()
}

// Query runs the statement and returns a lazy row iterator.
func (s *Stmt) Query(ctx context.Context, args ...any) (*Rows, error) {
	if err := s.conn.acquire(); err != nil {
		return nil, err
	}

	rr, err := s.execLocked(ctx, args)
	if err != nil {
		s.conn.release()
		return nil, err
	}
	return &Rows{conn: s.conn, rr: rr, typeMap: s.conn.typeMap}, nil
}

func (s *Stmt) execLocked(ctx context.Context, args []any) (*pgconn.ResultReader, error) {
	paramValues, paramFormats, resultFormats, err := encodeParams(s.conn.typeMap, s.sd, args)
	if err != nil {
		return nil, err
	}
	return s.conn.pg.ExecParams(ctx, s.sd, paramValues, paramFormats, resultFormats), nil
}
