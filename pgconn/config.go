package pgconn

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"strings"
)

// DialFunc opens the transport a Config will authenticate over. When
// Config.DialFunc is nil, a net.Dialer's DialContext is used.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Config is the fully-resolved set of settings needed to establish one
// connection. dsn.Parse builds a Config from a connection string, the
// process environment, and .pgpass; callers that already know their
// settings may construct one directly.
type Config struct {
	Host     string // host, or path to a Unix domain socket directory
	Port     uint16
	Database string
	User     string
	Password string

	TLSConfig *tls.Config // nil disables TLS
	// TLSFallback allows the connection to continue in plaintext if the
	// server replies 'N' to the SSL request, matching sslmode=prefer.
	// Ignored if TLSConfig is nil.
	TLSFallback bool
	DialFunc    DialFunc

	// RuntimeParams are sent as startup options, e.g. search_path or
	// application_name.
	RuntimeParams map[string]string

	// StatementCacheCapacity bounds the per-connection prepared statement
	// LRU. Zero selects a built-in default.
	StatementCacheCapacity int

	// OnNotice, when set, receives every NoticeResponse the server sends
	// outside of an ErrorResponse. Nil discards notices.
	OnNotice func(*PgError)

	// OnNotification, when set, receives every LISTEN/NOTIFY payload as it
	// arrives rather than queuing it on the connection.
	OnNotification func(*Notification)
}

// NetworkAddress converts a PostgreSQL host and port into the network and
// address net.Dial expects. A host beginning with "/" names a Unix domain
// socket directory.
func NetworkAddress(host string, port uint16) (network, address string) {
	if strings.HasPrefix(host, "/") {
		return "unix", filepath.Join(host, ".s.PGSQL."+strconv.FormatUint(uint64(port), 10))
	}
	return "tcp", net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))
}

func (c *Config) dialer() DialFunc {
	if c.DialFunc != nil {
		return c.DialFunc
	}
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, network, address)
	}
}

func (c *Config) assignDefaults() error {
	if c.Host == "" {
		return fmt.Errorf("host must be specified")
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.User == "" {
		return fmt.Errorf("user must be specified")
	}
	if c.Database == "" {
		c.Database = c.User
	}
	return nil
}
