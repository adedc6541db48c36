package pgproto

// ErrorResponse carries every field the server attaches to a failed
// command. Field codes follow the wire protocol's single-byte tags; this
// type decodes all of them rather than just the ones spec.md calls out,
// since the wire carries them and PgError (in package pgconn) surfaces them
// all.
type ErrorResponse struct {
	Severity         string
	SeverityUnlocalized string
	Code             string
	Message          string
	Detail           string
	Hint             string
	Position         int32
	InternalPosition int32
	InternalQuery    string
	Where            string
	SchemaName       string
	TableName        string
	ColumnName       string
	DataTypeName     string
	ConstraintName   string
	File             string
	Line             int32
	Routine          string

	UnknownFields map[byte]string
}

func (*ErrorResponse) Backend() {}

func (dst *ErrorResponse) Decode(src []byte) error {
	*dst = ErrorResponse{}

	rest := src
	for {
		if len(rest) == 0 {
			return newInvalidFormatErr("ErrorResponse", "missing terminator")
		}
		fieldType := rest[0]
		rest = rest[1:]
		if fieldType == 0 {
			return nil
		}

		var s string
		var ok bool
		rest, s, ok = getCString(rest)
		if !ok {
			return newInvalidFormatErr("ErrorResponse", "missing field terminator")
		}

		switch fieldType {
		case 'V':
			dst.SeverityUnlocalized = s
		case 'S':
			dst.Severity = s
		case 'C':
			dst.Code = s
		case 'M':
			dst.Message = s
		case 'D':
			dst.Detail = s
		case 'H':
			dst.Hint = s
		case 'P':
			dst.Position = decodeDecimalInt32(s)
		case 'p':
			dst.InternalPosition = decodeDecimalInt32(s)
		case 'q':
			dst.InternalQuery = s
		case 'W':
			dst.Where = s
		case 's':
			dst.SchemaName = s
		case 't':
			dst.TableName = s
		case 'c':
			dst.ColumnName = s
		case 'd':
			dst.DataTypeName = s
		case 'n':
			dst.ConstraintName = s
		case 'F':
			dst.File = s
		case 'L':
			dst.Line = decodeDecimalInt32(s)
		case 'R':
			dst.Routine = s
		default:
			if dst.UnknownFields == nil {
				dst.UnknownFields = make(map[byte]string)
			}
			dst.UnknownFields[fieldType] = s
		}
	}
}

func (src *ErrorResponse) Encode(dst []byte) ([]byte, error) {
	return src.encode(dst, 'E')
}

func (src *ErrorResponse) encode(dst []byte, tag byte) ([]byte, error) {
	dst, sp := beginMessage(dst, tag)

	writeField := func(code byte, value string) {
		if value == "" {
			return
		}
		dst = append(dst, code)
		dst = appendCString(dst, value)
	}

	writeField('V', src.SeverityUnlocalized)
	writeField('S', src.Severity)
	writeField('C', src.Code)
	writeField('M', src.Message)
	writeField('D', src.Detail)
	writeField('H', src.Hint)
	if src.Position != 0 {
		writeField('P', encodeDecimalInt32(src.Position))
	}
	if src.InternalPosition != 0 {
		writeField('p', encodeDecimalInt32(src.InternalPosition))
	}
	writeField('q', src.InternalQuery)
	writeField('W', src.Where)
	writeField('s', src.SchemaName)
	writeField('t', src.TableName)
	writeField('c', src.ColumnName)
	writeField('d', src.DataTypeName)
	writeField('n', src.ConstraintName)
	writeField('F', src.File)
	if src.Line != 0 {
		writeField('L', encodeDecimalInt32(src.Line))
	}
	writeField('R', src.Routine)
	for code, value := range src.UnknownFields {
		writeField(code, value)
	}

	dst = append(dst, 0)
	return finishMessage(dst, sp)
}

func decodeDecimalInt32(s string) int32 {
	var n int32
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int32(c-'0')
	}
	if neg {
		n = -n
	}
	return n
}

func encodeDecimalInt32(n int32) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// NoticeResponse carries the same field set as ErrorResponse but represents
// an advisory message, not a failure; the session hands it to the notice
// sink instead of reporting it as an error.
type NoticeResponse ErrorResponse

func (*NoticeResponse) Backend() {}

func (dst *NoticeResponse) Decode(src []byte) error {
	return (*ErrorResponse)(dst).Decode(src)
}

func (src *NoticeResponse) Encode(dst []byte) ([]byte, error) {
	return (*ErrorResponse)(src).encode(dst, 'N')
}
