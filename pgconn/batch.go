package pgconn

import (
	"context"

	"github.com/coriolisdb/pgwire/pgproto"
)

// BatchItem is one query queued onto a Batch: unnamed Parse+Bind+Execute,
// its Sync deferred until the whole batch is sent.
type BatchItem struct {
	SQL           string
	ParamValues   [][]byte
	ParamFormats  []int16
	ResultFormats []int16
}

// Batch collects queries to send behind a single Sync, grounded on the
// teacher's batch.go — a convenience over the extended query cycle, not a
// new protocol path.
type Batch struct {
	Items []BatchItem
}

func (b *Batch) Queue(sql string, paramValues [][]byte, paramFormats, resultFormats []int16) {
	b.Items = append(b.Items, BatchItem{
		SQL:           sql,
		ParamValues:   paramValues,
		ParamFormats:  paramFormats,
		ResultFormats: resultFormats,
	})
}

// BatchResults hands out one ResultReader per queued item, in order.
type BatchResults struct {
	conn      *PgConn
	remaining int
	err       error
}

// SendBatch writes every item's Parse/Bind/Execute in order, followed by
// one Sync, in a single Flush.
func (c *PgConn) SendBatch(ctx context.Context, b *Batch) *BatchResults {
	for _, item := range b.Items {
		if err := c.frontend.Send(&pgproto.Parse{Query: item.SQL}); err != nil {
			return &BatchResults{err: &IoError{Err: err}}
		}
		if err := c.frontend.Send(&pgproto.Bind{
			ParameterFormatCodes: item.ParamFormats,
			Parameters:           item.ParamValues,
			ResultFormatCodes:    item.ResultFormats,
		}); err != nil {
			return &BatchResults{err: &IoError{Err: err}}
		}
		if err := c.frontend.Send(&pgproto.Execute{}); err != nil {
			return &BatchResults{err: &IoError{Err: err}}
		}
	}
	if err := c.frontend.Send(&pgproto.Sync{}); err != nil {
		return &BatchResults{err: &IoError{Err: err}}
	}
	if err := c.frontend.Flush(); err != nil {
		return &BatchResults{err: &IoError{Err: err}}
	}
	return &BatchResults{conn: c, remaining: len(b.Items)}
}

// NextResult returns the reader for the next queued item. Callers must
// exhaust each reader (drive NextRow to false) before requesting the
// next, since all items share one connection and one wire stream.
func (br *BatchResults) NextResult() *ResultReader {
	if br.err != nil || br.remaining <= 0 {
		return &ResultReader{err: br.err, closed: true}
	}
	br.remaining--
	return &ResultReader{conn: br.conn, batchBoundary: true}
}

// Close discards any unread items and waits for the batch's trailing
// ReadyForQuery.
func (br *BatchResults) Close() error {
	if br.err != nil {
		return br.err
	}
	for br.remaining > 0 {
		rr := br.NextResult()
		for rr.NextRow() {
		}
		if rr.Err() != nil && br.err == nil {
			br.err = rr.Err()
		}
	}
	for {
		msg, err := br.conn.receive()
		if err != nil {
			return err
		}
		if rfq, ok := msg.(*pgproto.ReadyForQuery); ok {
			br.conn.txStatus = rfq.TxStatus
			return br.err
		}
	}
}
