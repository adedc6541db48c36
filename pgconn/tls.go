package pgconn

import (
	"crypto/tls"
	"errors"
	"net"

	"github.com/coriolisdb/pgwire/pgproto"
)

// ErrTLSRefused is returned when the server declines SSL negotiation ('N')
// but the Config requires TLS.
var ErrTLSRefused = errors.New("server refused TLS connection")

// startTLS sends the SSL request sentinel and, if the server agrees,
// wraps conn in a TLS client connection. Policy for what to do on a server
// 'N' reply lives in the caller (sslmode); startTLS's only job is the
// single-byte negotiation and the handshake itself.
func startTLS(conn net.Conn, tlsConfig *tls.Config) (net.Conn, error) {
	buf, err := (&pgproto.SSLRequest{}).Encode(nil)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Write(buf); err != nil {
		return nil, &IoError{Err: err}
	}

	var response [1]byte
	if _, err := conn.Read(response[:]); err != nil {
		return nil, &IoError{Err: err}
	}

	switch response[0] {
	case 'S':
		tlsConn := tls.Client(conn, tlsConfig)
		if err := tlsConn.Handshake(); err != nil {
			return nil, err
		}
		return tlsConn, nil
	case 'N':
		return nil, ErrTLSRefused
	default:
		return nil, errors.New("unexpected SSL negotiation response")
	}
}
