package ini

import "github.com/marciovmf/stdx-go/token"

// lineShape is what one quote-aware scan of a key/value line yields:
// the first unquoted '=', the content end after inline-comment
// chomping, and the offset of an unclosed opening quote.
type lineShape struct {
	eq        int // absolute offset of the first unquoted '=', -1 if none
	end       int // absolute offset where content ends (comment or line end)
	openQuote int // absolute offset of an unterminated opening quote, -1 if balanced
}

// scanLine walks bytes [s,e) of d with a small quote state machine.
// Inside quotes escape pairs are consumed as units, so an escaped
// backslash before a closing quote cannot leak quote state and `\"`
// never toggles. Outside quotes, ';' and '#' start an inline comment.
func scanLine(d []byte, s, e int) lineShape {
	sh := lineShape{eq: -1, end: e, openQuote: -1}
	i := s
	for i < e {
		c := d[i]
		if sh.openQuote >= 0 {
			switch c {
			case '\\':
				i += 2
				continue
			case '"':
				sh.openQuote = -1
			}
			i++
			continue
		}
		switch c {
		case '"':
			sh.openQuote = i
		case '=':
			if sh.eq < 0 {
				sh.eq = i
			}
		case ';', '#':
			sh.end = i
			return sh
		}
		i++
	}
	return sh
}

// trimRange narrows [s,e) past ASCII whitespace on both ends.
func trimRange(d []byte, s, e int) (int, int) {
	for s < e && token.IsSpace(d[s]) {
		s++
	}
	for e > s && token.IsSpace(d[e-1]) {
		e--
	}
	return s, e
}

func indexByteRange(d []byte, s, e int, c byte) int {
	for i := s; i < e; i++ {
		if d[i] == c {
			return i
		}
	}
	return -1
}
