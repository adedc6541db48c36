package pgtype

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Hstore carries a flat string-to-string map; a nil value pointer
// represents a NULL value for that key, which hstore permits.
type Hstore struct {
	Map    map[string]*string
	Status Status
}

func (dst *Hstore) Set(src any) error {
	switch value := src.(type) {
	case nil:
		*dst = Hstore{Status: Null}
	case map[string]*string:
		if value == nil {
			*dst = Hstore{Status: Null}
		} else {
			*dst = Hstore{Map: value, Status: Present}
		}
	case map[string]string:
		m := make(map[string]*string, len(value))
		for k, v := range value {
			v := v
			m[k] = &v
		}
		*dst = Hstore{Map: m, Status: Present}
	default:
		return fmt.Errorf("cannot convert %v to Hstore", src)
	}
	return nil
}

func (dst *Hstore) Accepts(oid uint32) bool { return oid == HstoreOID }

func (src Hstore) Get() any {
	if src.Status != Present {
		return nil
	}
	return src.Map
}

func (dst *Hstore) DecodeBinary(ci *Map, src []byte) error {
	if src == nil {
		*dst = Hstore{Status: Null}
		return nil
	}
	if len(src) < 4 {
		return fmt.Errorf("invalid length for hstore: %v", len(src))
	}
	count := int(int32(binary.BigEndian.Uint32(src)))
	rp := 4
	m := make(map[string]*string, count)
	for i := 0; i < count; i++ {
		if len(src[rp:]) < 4 {
			return fmt.Errorf("invalid hstore key length")
		}
		klen := int(int32(binary.BigEndian.Uint32(src[rp:])))
		rp += 4
		key := string(src[rp : rp+klen])
		rp += klen

		if len(src[rp:]) < 4 {
			return fmt.Errorf("invalid hstore value length")
		}
		vlen := int(int32(binary.BigEndian.Uint32(src[rp:])))
		rp += 4
		if vlen == -1 {
			m[key] = nil
			continue
		}
		val := string(src[rp : rp+vlen])
		rp += vlen
		m[key] = &val
	}
	*dst = Hstore{Map: m, Status: Present}
	return nil
}

func (dst *Hstore) DecodeText(ci *Map, src []byte) error {
	if src == nil {
		*dst = Hstore{Status: Null}
		return nil
	}
	m := make(map[string]*string)
	s := string(src)
	for _, pair := range splitHstorePairs(s) {
		k, v, hasVal := parseHstorePair(pair)
		if hasVal {
			m[k] = &v
		} else {
			m[k] = nil
		}
	}
	*dst = Hstore{Map: m, Status: Present}
	return nil
}

// splitHstorePairs splits on top-level ", " separators, ignoring those
// inside quoted strings.
func splitHstorePairs(s string) []string {
	var pairs []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			pairs = append(pairs, cur.String())
			cur.Reset()
			if i+1 < len(s) && s[i+1] == ' ' {
				i++
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		pairs = append(pairs, cur.String())
	}
	return pairs
}

func parseHstorePair(pair string) (key, value string, hasValue bool) {
	parts := strings.SplitN(pair, "=>", 2)
	key = unquoteHstoreToken(strings.TrimSpace(parts[0]))
	if len(parts) < 2 {
		return key, "", false
	}
	v := strings.TrimSpace(parts[1])
	if v == "NULL" {
		return key, "", false
	}
	return key, unquoteHstoreToken(v), true
}

func unquoteHstoreToken(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}

func (src Hstore) EncodeBinary(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(len(src.Map)))
	buf = append(buf, b[:]...)
	for k, v := range src.Map {
		var kb [4]byte
		binary.BigEndian.PutUint32(kb[:], uint32(len(k)))
		buf = append(buf, kb[:]...)
		buf = append(buf, k...)
		if v == nil {
			buf = append(buf, 0xff, 0xff, 0xff, 0xff)
			continue
		}
		var vb [4]byte
		binary.BigEndian.PutUint32(vb[:], uint32(len(*v)))
		buf = append(buf, vb[:]...)
		buf = append(buf, *v...)
	}
	return buf, nil
}

func (src Hstore) EncodeText(ci *Map, buf []byte) ([]byte, error) {
	if src.Status != Present {
		return nil, nil
	}
	first := true
	for k, v := range src.Map {
		if !first {
			buf = append(buf, ',', ' ')
		}
		first = false
		buf = append(buf, '"')
		buf = append(buf, strings.ReplaceAll(k, `"`, `\"`)...)
		buf = append(buf, '"', '=', '>')
		if v == nil {
			buf = append(buf, "NULL"...)
			continue
		}
		buf = append(buf, '"')
		buf = append(buf, strings.ReplaceAll(*v, `"`, `\"`)...)
		buf = append(buf, '"')
	}
	return buf, nil
}
