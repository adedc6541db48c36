// Package stmtcache is a bounded, per-connection cache of prepared
// statement descriptions, keyed by SQL text.
package stmtcache

import (
	"hash/fnv"
	"strconv"

	"github.com/coriolisdb/pgwire/pgproto"
)

// StatementDescription is everything the session engine learns about a
// prepared statement from the server's Parse/Describe reply: its wire
// name, the SQL it was prepared from, the parameter type OIDs the server
// inferred, and the result column descriptors (nil for statements that
// return no rows).
type StatementDescription struct {
	Name      string
	SQL       string
	ParamOIDs []uint32
	Fields    []pgproto.FieldDescription
}

// StatementName returns a statement name derived from a stable hash of
// sql, so the same query text always maps to the same server-side name
// within a connection.
func StatementName(sql string) string {
	h := fnv.New64a()
	h.Write([]byte(sql))
	return "stmtcache_" + strconv.FormatUint(h.Sum64(), 10)
}

// Cache caches statement descriptions for one connection.
type Cache interface {
	// Get returns the statement description for sql, or nil if absent.
	Get(sql string) *StatementDescription

	// Put stores sd, keyed by sd.SQL. Put panics if sd.SQL is "". Put is a
	// no-op if sd.SQL is already present.
	Put(sd *StatementDescription)

	// Invalidate invalidates the statement description identified by sql.
	Invalidate(sql string)

	// InvalidateAll invalidates every statement description.
	InvalidateAll()

	// Len returns the number of cached statement descriptions.
	Len() int

	// Cap returns the maximum number of cached statement descriptions.
	Cap() int
}
