package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrMalformedURI is returned by decodeURI for truncated or invalid escapes.
var ErrMalformedURI = errors.New("URI malformed")

const (
	upperHex = "0123456789ABCDEF"
	// uriUnescaped are the bytes encodeURI leaves as they are.
	uriUnescaped = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
		"-_.!~*'()" + ";,/?:@&=+$#"
	// uriReserved are the characters decodeURI keeps escaped.
	uriReserved = ";,/?:@&=+$#"
)

// encodeURI percent-encodes s like the ECMAScript encodeURI function: every
// UTF-8 byte outside the unreserved and reserved URI sets is escaped.
func encodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(uriUnescaped, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

// decodeURI reverses encodeURI like the ECMAScript decodeURI function.
// Escapes that decode to a reserved character are kept verbatim.
func decodeURI(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}
		first, ok := unhexAt(s, i)
		if !ok {
			return "", ErrMalformedURI
		}
		if first < utf8.RuneSelf {
			if strings.IndexByte(uriReserved, first) >= 0 {
				b.WriteString(s[i : i+3])
			} else {
				b.WriteByte(first)
			}
			i += 3
			continue
		}

		n := utf8SequenceLength(first)
		if n == 0 {
			return "", ErrMalformedURI
		}
		seq := []byte{first}
		j := i + 3
		for k := 1; k < n; k++ {
			c, ok := unhexAt(s, j)
			if !ok || c&0xC0 != 0x80 {
				return "", ErrMalformedURI
			}
			seq = append(seq, c)
			j += 3
		}
		if !utf8.Valid(seq) {
			return "", ErrMalformedURI
		}
		b.Write(seq)
		i = j
	}
	return b.String(), nil
}

func unhexAt(s string, i int) (byte, bool) {
	if i+2 >= len(s) || s[i] != '%' {
		return 0, false
	}
	hi, ok1 := fromHex(s[i+1])
	lo, ok2 := fromHex(s[i+2])
	return hi<<4 | lo, ok1 && ok2
}

func fromHex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func utf8SequenceLength(first byte) int {
	switch {
	case first&0xE0 == 0xC0:
		return 2
	case first&0xF0 == 0xE0:
		return 3
	case first&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// marshalJSON encodes v without HTML escaping and without a trailing newline.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

var zeroXHex = regexp.MustCompile(`(?i)^(?:0x)*([a-f0-9]+)$`)

// noZeroX strips leading "0x" prefixes from a hex string. Input that is not
// hex is returned unchanged.
func noZeroX(s string) string {
	if m := zeroXHex.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// query builds a raw query string. Values are appended as given; callers
// encode them where needed.
type query struct {
	b strings.Builder
}

func (q *query) add(key, value string) {
	if q.b.Len() == 0 {
		q.b.WriteByte('?')
	} else {
		q.b.WriteByte('&')
	}
	q.b.WriteString(key)
	q.b.WriteByte('=')
	q.b.WriteString(value)
}

func (q *query) String() string {
	return q.b.String()
}
