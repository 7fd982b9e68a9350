package token

import "bytes"

// QuotedEnd scans a double-quoted token starting at d[i] (which must be
// '"') and returns the index just past the closing quote. Escape pairs
// are consumed as units, so `"\\"` terminates at the final quote and a
// backslash before a quote never leaks quote state. Returns (len(d),
// false) when no unescaped closing quote exists.
func QuotedEnd(d []byte, i int) (int, bool) {
	j := i + 1
	for j < len(d) {
		switch d[j] {
		case '\\':
			j += 2
		case '"':
			return j + 1, true
		case '\n':
			return j, false
		default:
			j++
		}
	}
	return len(d), false
}

// HasEscape reports whether a quoted body needs decoding.
func HasEscape(body []byte) bool {
	return bytes.IndexByte(body, '\\') >= 0
}

// Unescape appends the decoded form of a quoted body to dst and returns
// the extended slice. Recognized escapes are \n, \t, \\ and \"; an
// unknown escape passes the following byte through unchanged.
func Unescape(dst, body []byte) []byte {
	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			dst = append(dst, c)
			i++
			continue
		}
		i++
		switch body[i] {
		case 'n':
			dst = append(dst, '\n')
		case 't':
			dst = append(dst, '\t')
		case '\\':
			dst = append(dst, '\\')
		case '"':
			dst = append(dst, '"')
		default:
			dst = append(dst, body[i])
		}
		i++
	}
	return dst
}

// TripleQuote is the multi-line string delimiter.
var TripleQuote = []byte(`"""`)

// IsTripleQuote reports whether a triple quote opens at d[i:].
func IsTripleQuote(d []byte, i int) bool {
	return len(d)-i >= 3 && d[i] == '"' && d[i+1] == '"' && d[i+2] == '"'
}

// TripleEnd scans from an opening delimiter at d[i] and returns the index
// just past the closing delimiter. The body is raw: no escape processing.
// Returns (len(d), false) when unterminated; the body then extends to the
// end of input.
func TripleEnd(d []byte, i int) (int, bool) {
	j := bytes.Index(d[i+3:], TripleQuote)
	if j < 0 {
		return len(d), false
	}
	return i + 3 + j + 3, true
}

// TrimTripleBody applies the multi-line normalisation rule: one newline
// straight after the opening delimiter and one straight before the
// closing delimiter are dropped, CRLF-aware. Nothing inside is touched.
func TrimTripleBody(body []byte) []byte {
	if len(body) > 1 && body[0] == '\r' && body[1] == '\n' {
		body = body[2:]
	} else if len(body) > 0 && body[0] == '\n' {
		body = body[1:]
	}
	n := len(body)
	if n > 1 && body[n-2] == '\r' && body[n-1] == '\n' {
		body = body[:n-2]
	} else if n > 0 && body[n-1] == '\n' {
		body = body[:n-1]
	}
	return body
}
