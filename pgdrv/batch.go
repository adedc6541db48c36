package pgdrv

import (
	"context"

	"github.com/coriolisdb/pgwire/pgconn"
)

// Batch collects queries to run behind one Sync; SPEC_FULL §4.4's
// Addition, grounded on the teacher's batch.go.
type Batch struct {
	conn  *Conn
	items []batchItem
}

type batchItem struct {
	sql  string
	args []any
}

// Queue appends one query to the batch. Queries run in the order queued.
func (b *Batch) Queue(sql string, args ...any) {
	b.items = append(b.items, batchItem{sql: sql, args: args})
}

// NewBatch returns an empty Batch bound to conn.
func (c *Conn) NewBatch() *Batch { return &Batch{conn: c} }

// SendBatch prepares and encodes every queued item, then sends them all
// behind a single Sync. The connection stays busy until BatchResults is
// closed.
func (c *Conn) SendBatch(ctx context.Context, b *Batch) (*BatchResults, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}

	pb := &pgconn.Batch{}
	for _, item := range b.items {
		sd, err := c.pg.Prepare(ctx, item.sql)
		if err != nil {
			c.release()
			return nil, err
		}
		paramValues, paramFormats, resultFormats, err := encodeParams(c.typeMap, sd, item.args)
		if err != nil {
			c.release()
			return nil, err
		}
		pb.Queue(item.sql, paramValues, paramFormats, resultFormats)
	}

	br := c.pg.SendBatch(ctx, pb)
	return &BatchResults{conn: c, br: br}, nil
}

// BatchResults hands out one Rows per queued item, in order.
type BatchResults struct {
	conn *Conn
	br   *pgconn.BatchResults
}

// NextResult returns the reader for the next queued item.
func (br *BatchResults) NextResult() *Rows {
	return &Rows{conn: br.conn, rr: br.br.NextResult(), typeMap: br.conn.typeMap, noRelease: true}
}

// Close drains any unread results and releases the connection.
func (br *BatchResults) Close() error {
	defer br.conn.release()
	return br.br.Close()
}
