package md

import "bytes"

// inline renders one line of prose into out. The rules are ordered:
// backslash escapes, code spans, images, links, autolinks, strong+em,
// strong, emphasis, strikethrough, insert, then raw text with &, <
// and > entity-escaped. Dispatch is on the byte under the cursor, so
// an earlier rule consuming text hides later ones.
func inline(out, s []byte) []byte {
	i := 0
	for i < len(s) {
		c := s[i]
		switch c {
		case '\\':
			if i+1 < len(s) {
				out = appendEscapedByte(out, s[i+1])
				i += 2
				continue
			}
			out = append(out, '\\')
			i++
		case '`':
			n := 1
			if i+1 < len(s) && s[i+1] == '`' {
				n = 2
			}
			end := bytes.Index(s[i+n:], s[i:i+n])
			if end < 0 {
				out = append(out, s[i:i+n]...)
				i += n
				continue
			}
			out = append(out, "<code>"...)
			out = appendEscaped(out, s[i+n:i+n+end])
			out = append(out, "</code>"...)
			i += n + end + n
		case '!':
			if i+1 < len(s) && s[i+1] == '[' {
				if text, url, title, n, ok := parseLink(s[i+1:]); ok {
					out = append(out, `<img src="`...)
					out = appendAttr(out, url)
					out = append(out, `" alt="`...)
					out = appendAttr(out, text)
					out = append(out, '"')
					if title != nil {
						out = append(out, ` title="`...)
						out = appendAttr(out, title)
						out = append(out, '"')
					}
					out = append(out, '>')
					i += 1 + n
					continue
				}
			}
			out = append(out, '!')
			i++
		case '[':
			if text, url, title, n, ok := parseLink(s[i:]); ok {
				out = append(out, `<a href="`...)
				out = appendAttr(out, url)
				out = append(out, '"')
				if title != nil {
					out = append(out, ` title="`...)
					out = appendAttr(out, title)
					out = append(out, '"')
				}
				out = append(out, '>')
				out = inline(out, text)
				out = append(out, "</a>"...)
				i += n
				continue
			}
			out = append(out, '[')
			i++
		case '<':
			if bytes.HasPrefix(s[i+1:], []byte("http")) {
				if end := bytes.IndexByte(s[i+1:], '>'); end > 0 {
					url := s[i+1 : i+1+end]
					if bytes.IndexByte(url, ' ') < 0 {
						out = append(out, `<a href="`...)
						out = appendAttr(out, url)
						out = append(out, `">`...)
						out = appendEscaped(out, url)
						out = append(out, "</a>"...)
						i += end + 2
						continue
					}
				}
			}
			out = append(out, "&lt;"...)
			i++
		case '*', '_':
			n := 1
			for i+n < len(s) && s[i+n] == c && n < 3 {
				n++
			}
			matched := false
			for try := n; try >= 1; try-- {
				end := bytes.Index(s[i+try:], s[i:i+try])
				if end < 0 {
					continue
				}
				inner := s[i+try : i+try+end]
				switch try {
				case 3:
					out = append(out, "<strong><em>"...)
					out = inline(out, inner)
					out = append(out, "</em></strong>"...)
				case 2:
					out = append(out, "<strong>"...)
					out = inline(out, inner)
					out = append(out, "</strong>"...)
				case 1:
					out = append(out, "<em>"...)
					out = inline(out, inner)
					out = append(out, "</em>"...)
				}
				i += try + end + try
				matched = true
				break
			}
			if !matched {
				out = append(out, s[i:i+n]...)
				i += n
			}
		case '~':
			if i+1 < len(s) && s[i+1] == '~' {
				if end := bytes.Index(s[i+2:], []byte("~~")); end >= 0 {
					out = append(out, "<del>"...)
					out = inline(out, s[i+2:i+2+end])
					out = append(out, "</del>"...)
					i += 4 + end
					continue
				}
			}
			out = append(out, '~')
			i++
		case '^':
			if i+1 < len(s) && s[i+1] == '^' {
				if end := bytes.Index(s[i+2:], []byte("^^")); end >= 0 {
					out = append(out, "<ins>"...)
					out = inline(out, s[i+2:i+2+end])
					out = append(out, "</ins>"...)
					i += 4 + end
					continue
				}
			}
			out = append(out, '^')
			i++
		case '&':
			out = append(out, "&amp;"...)
			i++
		case '>':
			out = append(out, "&gt;"...)
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return out
}

// parseLink parses "[text](url)" or "[text](url \"title\")" from the
// opening bracket. Brackets nest in the text; the URL ends at the
// matching closing paren or at whitespace leading to a quoted title,
// with backslash-escaped bytes passed through into the URL. n is the
// total byte count consumed, title is nil when absent.
func parseLink(s []byte) (text, url, title []byte, n int, ok bool) {
	depth := 0
	j := 0
	te := -1
	for j < len(s) {
		switch s[j] {
		case '\\':
			j++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				te = j
			}
		}
		if te >= 0 {
			break
		}
		j++
	}
	if te < 0 || te+1 >= len(s) || s[te+1] != '(' {
		return nil, nil, nil, 0, false
	}
	text = s[1:te]

	url = []byte{}
	parens := 1
	j = te + 2
	for j < len(s) {
		c := s[j]
		switch {
		case c == '\\' && j+1 < len(s):
			url = append(url, s[j+1])
			j += 2
			continue
		case c == '(':
			parens++
		case c == ')':
			parens--
			if parens == 0 {
				return text, url, title, j + 1, true
			}
		case c == ' ' || c == '\t':
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j < len(s) && s[j] == '"' {
				j++
				ts := j
				for j < len(s) && s[j] != '"' {
					j++
				}
				if j >= len(s) {
					return nil, nil, nil, 0, false
				}
				title = s[ts:j]
				j++
				for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
					j++
				}
			}
			if j < len(s) && s[j] == ')' {
				return text, url, title, j + 1, true
			}
			return nil, nil, nil, 0, false
		}
		url = append(url, c)
		j++
	}
	return nil, nil, nil, 0, false
}
