package dsn

import (
	"crypto/tls"
	"fmt"
)

// configTLS implements the sslmode subset SPEC_FULL §6 calls for:
// "disable" means no TLS at all; "verify-ca"/"verify-full" are accepted
// and folded into "require" (certificate verification policy belongs to
// the TLS config the caller can still layer on afterward, not to this
// parser); "prefer" and an unset sslmode negotiate TLS without certificate
// verification (Parse also sets TLSFallback for them, so a server's "N"
// reply falls back to plaintext); any other value is an error.
func configTLS(sslmode, host string) (*tls.Config, error) {
	switch sslmode {
	case "disable":
		return nil, nil
	case "", "prefer":
		return &tls.Config{InsecureSkipVerify: true, ServerName: host}, nil
	case "require", "verify-ca", "verify-full":
		return &tls.Config{ServerName: host}, nil
	default:
		return nil, fmt.Errorf("invalid sslmode %q", sslmode)
	}
}
