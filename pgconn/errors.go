package pgconn

import (
	"fmt"
	"strconv"

	"github.com/coriolisdb/pgwire/pgproto"
)

// SQLSTATE class prefixes frequently tested against in error handling.
// The full catalogue has dozens of five-character codes per class; the
// taxonomy in this driver classifies by the two-character class prefix
// rather than enumerating every individual code, since that is the
// granularity the driver's own error kinds (§7) actually branch on.
const (
	ClassSuccessfulCompletion    = "00"
	ClassWarning                 = "01"
	ClassConnectionException     = "08"
	ClassFeatureNotSupported     = "0A"
	ClassCardinalityViolation    = "21"
	ClassDataException           = "22"
	ClassIntegrityConstraint     = "23"
	ClassInvalidTransactionState = "25"
	ClassSyntaxOrAccessRule      = "42"
	ClassInsufficientResources   = "53"
	ClassOperatorIntervention    = "57"
	ClassSystemError             = "58"
)

// PgError is a server-originated error, decoded from an ErrorResponse
// message. Its field set is the full set the wire protocol carries, not
// just the subset a caller is likely to inspect.
type PgError struct {
	Severity            string
	SeverityUnlocalized string
	Code                string
	Message             string
	Detail              string
	Hint                string
	Position            int32
	InternalPosition    int32
	InternalQuery       string
	Where               string
	SchemaName          string
	TableName           string
	ColumnName          string
	DataTypeName        string
	ConstraintName      string
	File                string
	Line                int32
	Routine             string
}

func (e *PgError) Error() string {
	return e.Severity + ": " + e.Message + " (SQLSTATE " + e.Code + ")"
}

// Class returns the SQLSTATE's two-character class prefix, e.g. "22" for
// every data-exception code.
func (e *PgError) Class() string {
	if len(e.Code) < 2 {
		return e.Code
	}
	return e.Code[:2]
}

// ErrorResponseToPgError copies every field of an ErrorResponse into a
// PgError. It is also used for NoticeResponse, which is wire-identical.
func ErrorResponseToPgError(msg *pgproto.ErrorResponse) *PgError {
	return &PgError{
		Severity:            msg.Severity,
		SeverityUnlocalized: msg.SeverityUnlocalized,
		Code:                msg.Code,
		Message:             msg.Message,
		Detail:              msg.Detail,
		Hint:                msg.Hint,
		Position:            msg.Position,
		InternalPosition:    msg.InternalPosition,
		InternalQuery:       msg.InternalQuery,
		Where:               msg.Where,
		SchemaName:          msg.SchemaName,
		TableName:           msg.TableName,
		ColumnName:          msg.ColumnName,
		DataTypeName:        msg.DataTypeName,
		ConstraintName:      msg.ConstraintName,
		File:                msg.File,
		Line:                msg.Line,
		Routine:             msg.Routine,
	}
}

func noticeResponseToPgError(msg *pgproto.NoticeResponse) *PgError {
	return ErrorResponseToPgError((*pgproto.ErrorResponse)(msg))
}

// CommandTag is the textual tag CommandComplete carries, e.g. "INSERT 0 1"
// or "SELECT 3".
type CommandTag []byte

func (ct CommandTag) String() string {
	return string(ct)
}

// RowsAffected parses the trailing integer a DML command tag carries. It
// is 0 for tags that report no affected-row count, such as "SELECT".
func (ct CommandTag) RowsAffected() int64 {
	s := string(ct)
	lastSpace := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ' ' {
			lastSpace = i
			break
		}
	}
	if lastSpace == -1 {
		return 0
	}
	n, err := strconv.ParseInt(s[lastSpace+1:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Error kinds per the taxonomy: Connect and Auth are fatal before a
// session exists; Protocol and Io are fatal to an established connection;
// WrongParamCount and InvalidState are caller-correctable without
// affecting connection health.

type ConnectError struct{ Err error }

func (e *ConnectError) Error() string { return "connect failed: " + e.Err.Error() }
func (e *ConnectError) Unwrap() error { return e.Err }

type AuthError struct{ Err error }

func (e *AuthError) Error() string { return "authentication failed: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// UnsupportedAuthentication is returned when the server requests a
// challenge kind this driver does not implement, e.g. SCRAM-SHA-256
// (AuthTypeSASL) or GSS.
type UnsupportedAuthentication struct{ AuthType uint32 }

func (e *UnsupportedAuthentication) Error() string {
	return fmt.Sprintf("unsupported authentication type: %d", e.AuthType)
}

type IoError struct{ Err error }

func (e *IoError) Error() string { return "i/o error: " + e.Err.Error() }
func (e *IoError) Unwrap() error { return e.Err }

// WrongParamCountError is returned before any bytes are written to the
// transport when a caller's argument count does not match a prepared
// statement's declared parameter arity.
type WrongParamCountError struct {
	Expected int
	Actual   int
}

func (e *WrongParamCountError) Error() string {
	return fmt.Sprintf("expected %d parameters, got %d", e.Expected, e.Actual)
}

// InvalidStateError is returned for operations attempted on a closed
// connection, a consumed row, or during a failed transaction that forbids
// them.
type InvalidStateError struct{ Reason string }

func (e *InvalidStateError) Error() string { return "invalid state: " + e.Reason }
