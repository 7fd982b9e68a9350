package tml

import (
	"github.com/marciovmf/stdx-go/token"
)

// trimRange narrows [s, e) to the non-whitespace core of a line.
func trimRange(d []byte, s, e int) (int, int) {
	for s < e && token.IsSpace(d[s]) {
		s++
	}
	for e > s && token.IsSpace(d[e-1]) {
		e--
	}
	return s, e
}

// findSep returns the first ':' or '=' in [s, e) outside double
// quotes, or -1. Escape pairs inside quotes are consumed as units so
// an escaped quote cannot close the string.
func findSep(d []byte, s, e int) (byte, int) {
	inQuote := false
	i := s
	for i < e {
		c := d[i]
		if inQuote {
			switch c {
			case '\\':
				i += 2
				continue
			case '"':
				inQuote = false
			}
			i++
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case ':', '=':
			return c, i
		}
		i++
	}
	return 0, -1
}

// hasUnquotedComma reports whether [s, e) holds a ',' outside quotes,
// which is what turns a value into an array.
func hasUnquotedComma(d []byte, s, e int) bool {
	inQuote := false
	i := s
	for i < e {
		c := d[i]
		if inQuote {
			switch c {
			case '\\':
				i += 2
				continue
			case '"':
				inQuote = false
			}
			i++
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case ',':
			return true
		}
		i++
	}
	return false
}

// trimTok narrows an array element to its core: spaces, tabs and
// carriage returns are stripped from both ends.
func trimTok(d []byte, s, e int) (int, int) {
	for s < e && (d[s] == ' ' || d[s] == '\t' || d[s] == '\r') {
		s++
	}
	for e > s && (d[e-1] == ' ' || d[e-1] == '\t' || d[e-1] == '\r') {
		e--
	}
	return s, e
}
