// Package pgconn is a low-level PostgreSQL driver: it owns the transport,
// the startup/authentication handshake, and the session engine that drives
// the simple and extended query sub-protocols. It operates one level above
// pgproto (which only knows how to frame and decode messages) and one level
// below pgdrv (which adds the public Conn/Tx/Rows façade and transaction
// controller).
package pgconn
