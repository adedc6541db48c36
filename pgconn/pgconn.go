package pgconn

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/coriolisdb/pgwire/internal/stmtcache"
	"github.com/coriolisdb/pgwire/pgproto"
)

const defaultStatementCacheCapacity = 512

// Notification is one LISTEN/NOTIFY payload.
type Notification struct {
	PID     uint32
	Channel string
	Payload string
}

// PgConn is one connection's session engine: it owns the transport, the
// pgproto.Frontend bound to it, and every piece of state the startup
// handshake and query cycles accumulate (transaction status, parameter
// statuses, the process id/secret key needed for cancellation).
type PgConn struct {
	conn     net.Conn
	frontend *pgproto.Frontend
	config   *Config

	pid, secretKey uint32
	txStatus       byte
	parameterStatuses map[string]string

	statementCache *stmtcache.LRUCache
	stmtCounter    int

	notifications []*Notification

	closeOnce sync.Once
	closeErr  error
}

// Connect dials, negotiates TLS if requested, and runs the startup and
// authentication handshake. It blocks until ReadyForQuery or a fatal
// error.
func Connect(ctx context.Context, config *Config) (*PgConn, error) {
	if err := config.assignDefaults(); err != nil {
		return nil, &ConnectError{Err: err}
	}

	network, address := NetworkAddress(config.Host, config.Port)
	netConn, err := config.dialer()(ctx, network, address)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}

	if config.TLSConfig != nil {
		tlsConn, err := startTLS(netConn, config.TLSConfig)
		switch {
		case err == nil:
			netConn = tlsConn
		case errors.Is(err, ErrTLSRefused) && config.TLSFallback:
			// sslmode=prefer: keep the plaintext connection already open.
		default:
			_ = netConn.Close()
			return nil, &ConnectError{Err: err}
		}
	}

	pgConn := &PgConn{
		conn:              netConn,
		frontend:          pgproto.NewFrontend(netConn, netConn),
		config:            config,
		parameterStatuses: make(map[string]string),
	}

	cacheCap := config.StatementCacheCapacity
	if cacheCap == 0 {
		cacheCap = defaultStatementCacheCapacity
	}
	pgConn.statementCache = stmtcache.NewLRUCache(cacheCap, pgConn.closeCachedStatement)

	startup := &pgproto.StartupMessage{
		ProtocolVersion: 196608, // 3.0
		Parameters: map[string]string{
			"user":     config.User,
			"database": config.Database,
		},
	}
	for k, v := range config.RuntimeParams {
		startup.Parameters[k] = v
	}

	if err := pgConn.frontend.Send(startup); err != nil {
		_ = netConn.Close()
		return nil, &ConnectError{Err: err}
	}
	if err := pgConn.frontend.Flush(); err != nil {
		_ = netConn.Close()
		return nil, &ConnectError{Err: err}
	}

	for {
		msg, err := pgConn.receive()
		if err != nil {
			_ = netConn.Close()
			return nil, &ConnectError{Err: err}
		}

		switch msg := msg.(type) {
		case *pgproto.Authentication:
			if err := pgConn.authenticate(msg); err != nil {
				_ = netConn.Close()
				return nil, &AuthError{Err: err}
			}
		case *pgproto.BackendKeyData:
			pgConn.pid = msg.ProcessID
			pgConn.secretKey = msg.SecretKey
		case *pgproto.ReadyForQuery:
			pgConn.txStatus = msg.TxStatus
			return pgConn, nil
		case *pgproto.ErrorResponse:
			_ = netConn.Close()
			return nil, &ConnectError{Err: ErrorResponseToPgError(msg)}
		default:
			_ = netConn.Close()
			return nil, &ConnectError{Err: fmt.Errorf("unexpected message during startup: %T", msg)}
		}
	}
}

// authenticate drives one AuthenticationRequest step to completion. OK
// ends the exchange without a reply; Cleartext and MD5 send a
// PasswordMessage; every other kind is out of scope (§4.7's addition) and
// fails with UnsupportedAuthentication.
func (c *PgConn) authenticate(auth *pgproto.Authentication) error {
	switch auth.Type {
	case pgproto.AuthTypeOk:
		return nil
	case pgproto.AuthTypeCleartext:
		return c.sendPassword(c.config.Password)
	case pgproto.AuthTypeMD5:
		digest := "md5" + hexMD5(hexMD5(c.config.Password+c.config.User)+string(auth.Salt[:]))
		return c.sendPassword(digest)
	default:
		return &UnsupportedAuthentication{AuthType: auth.Type}
	}
}

func (c *PgConn) sendPassword(password string) error {
	if err := c.frontend.Send(&pgproto.PasswordMessage{Password: password}); err != nil {
		return err
	}
	return c.frontend.Flush()
}

func hexMD5(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// receive reads exactly one message that is not a side channel the engine
// absorbs in-line: ParameterStatus updates c.parameterStatuses without
// ever reaching a caller (§9 Open Question 1), and NotificationResponse is
// queued (or handed to Config.OnNotification) rather than returned, and
// NoticeResponse is handed to Config.OnNotice (or dropped when it is nil).
// Every other backend message is returned as-is.
func (c *PgConn) receive() (pgproto.BackendMessage, error) {
	for {
		msg, err := c.frontend.Receive()
		if err != nil {
			return nil, &IoError{Err: err}
		}

		switch msg := msg.(type) {
		case *pgproto.ParameterStatus:
			c.parameterStatuses[msg.Name] = msg.Value
			continue
		case *pgproto.NotificationResponse:
			n := &Notification{PID: msg.PID, Channel: msg.Channel, Payload: msg.Payload}
			if c.config.OnNotification != nil {
				c.config.OnNotification(n)
			} else {
				c.notifications = append(c.notifications, n)
			}
			continue
		case *pgproto.NoticeResponse:
			if c.config.OnNotice != nil {
				c.config.OnNotice(noticeResponseToPgError(msg))
			}
			continue
		default:
			return msg, nil
		}
	}
}

// ParameterStatus returns the last value the server reported for a
// run-time parameter, e.g. "server_version" or "client_encoding".
func (c *PgConn) ParameterStatus(name string) string {
	return c.parameterStatuses[name]
}

// PID and SecretKey identify this backend for a CancelRequest issued on a
// separate connection.
func (c *PgConn) PID() uint32       { return c.pid }
func (c *PgConn) SecretKey() uint32 { return c.secretKey }

// TxStatus is the byte from the most recently observed ReadyForQuery: 'I'
// idle, 'T' in a transaction, 'E' in a failed transaction.
func (c *PgConn) TxStatus() byte { return c.txStatus }

// PopNotifications drains and returns every notification queued since the
// last call, in arrival order. Unused when Config.OnNotification is set.
func (c *PgConn) PopNotifications() []*Notification {
	n := c.notifications
	c.notifications = nil
	return n
}

// Frontend exposes the underlying message codec for collaborators that
// need it directly, such as pgtrace.
func (c *PgConn) Frontend() *pgproto.Frontend { return c.frontend }

// Close sends Terminate and closes the transport. It is safe to call more
// than once.
func (c *PgConn) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		_ = c.frontend.Send(&pgproto.Terminate{})
		_ = c.frontend.Flush()
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// Cancel opens a fresh connection to the same server and sends a
// CancelRequest carrying this connection's PID and secret key, per §5: it
// must never be issued on the connection's own transport.
func (c *PgConn) Cancel(ctx context.Context) error {
	network, address := NetworkAddress(c.config.Host, c.config.Port)
	cancelConn, err := c.config.dialer()(ctx, network, address)
	if err != nil {
		return &ConnectError{Err: err}
	}
	defer cancelConn.Close()

	buf, err := (&pgproto.CancelRequest{ProcessID: c.pid, SecretKey: c.secretKey}).Encode(nil)
	if err != nil {
		return err
	}
	_, err = cancelConn.Write(buf)
	return err
}
