package md

import "bytes"

// blockRenderer runs the line-oriented block pass over one text
// chunk. State carries across lines: the open paragraph, the open
// indented code block, the list stack and the blockquote depth. A
// blank line closes everything except an explicitly continued
// blockquote.
type blockRenderer struct {
	out    []byte
	quote  int
	lists  []bool // true = ordered
	inP    bool
	inCode bool
}

func renderBlocks(out, text []byte) []byte {
	r := blockRenderer{out: out}
	i := 0
	for i <= len(text) {
		e := i
		for e < len(text) && text[e] != '\n' {
			e++
		}
		r.line(text[i:e])
		if e >= len(text) {
			break
		}
		i = e + 1
	}
	r.flush()
	return r.out
}

// quoteDepth counts leading '>' markers. Each marker may be preceded
// by up to three spaces and followed by one space; four spaces stop
// the scan (that is indented code).
func quoteDepth(s []byte) (depth, rest int) {
	i := 0
	for {
		j := i
		sp := 0
		for j < len(s) && s[j] == ' ' && sp < 3 {
			j++
			sp++
		}
		if j >= len(s) || s[j] != '>' {
			return depth, i
		}
		j++
		if j < len(s) && s[j] == ' ' {
			j++
		}
		depth++
		i = j
	}
}

// listMarker reports a list marker at s[i:]: one of "-", "+", "*"
// followed by a space, or digits followed by a dot and a space. The
// returned offset is the first byte of the item content.
func listMarker(s []byte, i int) (ordered bool, content int, ok bool) {
	if i >= len(s) {
		return false, 0, false
	}
	switch s[i] {
	case '-', '+', '*':
		if i+1 < len(s) && s[i+1] == ' ' {
			j := i + 2
			for j < len(s) && s[j] == ' ' {
				j++
			}
			return false, j, true
		}
		return false, 0, false
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i || j+1 >= len(s) || s[j] != '.' || s[j+1] != ' ' {
		return false, 0, false
	}
	j += 2
	for j < len(s) && s[j] == ' ' {
		j++
	}
	return true, j, true
}

// atxHeader matches 1 to 5 leading hashes followed by a space. Six or
// more hashes is not a header.
func atxHeader(s []byte) (level, content int, ok bool) {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	if n < 1 || n > 5 || n >= len(s) || (s[n] != ' ' && s[n] != '\t') {
		return 0, 0, false
	}
	c := n
	for c < len(s) && (s[c] == ' ' || s[c] == '\t') {
		c++
	}
	return n, c, true
}

// isHR matches a line made of three or more of the same rule
// character.
func isHR(s []byte) bool {
	if len(s) < 3 {
		return false
	}
	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for _, b := range s {
		if b != c {
			return false
		}
	}
	return true
}

func (r *blockRenderer) line(s []byte) {
	depth, rest := quoteDepth(s)
	content := s[rest:]

	if len(bytes.TrimSpace(content)) == 0 {
		r.closeP()
		r.closeCode()
		r.closeLists(0)
		if depth == 0 {
			r.adjustQuotes(0)
		}
		return
	}

	if depth != r.quote {
		r.closeP()
		r.closeCode()
		r.closeLists(0)
		r.adjustQuotes(depth)
	}

	ind := 0
	tab := false
	j := 0
	for j < len(content) {
		if content[j] == ' ' {
			ind++
			j++
			continue
		}
		if content[j] == '\t' {
			tab = true
		}
		break
	}

	if !tab {
		if ordered, cs, ok := listMarker(content, j); ok {
			r.item(ind/2, ordered, content[cs:])
			return
		}
	}
	if tab || ind >= 4 {
		r.codeLine(content, j, tab)
		return
	}
	r.closeCode()

	body := bytes.TrimSpace(content)
	if lvl, cs, ok := atxHeader(body); ok {
		r.closeP()
		r.closeLists(0)
		r.out = append(r.out, '<', 'h', byte('0'+lvl), '>')
		r.out = inline(r.out, bytes.TrimRight(body[cs:], " \t"))
		r.out = append(r.out, '<', '/', 'h', byte('0'+lvl), '>', '\n')
		return
	}
	if isHR(body) {
		r.closeP()
		r.closeLists(0)
		r.out = append(r.out, "<hr>\n"...)
		return
	}

	r.closeLists(0)
	if !r.inP {
		r.out = append(r.out, "<p>"...)
		r.inP = true
	} else {
		r.out = append(r.out, '\n')
	}
	r.out = inline(r.out, body)
}

// codeLine feeds one line into an indented code block, stripping the
// four-space or single-tab indent.
func (r *blockRenderer) codeLine(content []byte, j int, tab bool) {
	r.closeP()
	r.closeLists(0)
	if !r.inCode {
		r.out = append(r.out, "<pre><code>"...)
		r.inCode = true
	}
	body := content[4:]
	if tab {
		body = content[j+1:]
	}
	r.out = appendEscaped(r.out, body)
	r.out = append(r.out, '\n')
}

func (r *blockRenderer) item(level int, ordered bool, content []byte) {
	r.closeP()
	r.closeCode()
	for len(r.lists) > level+1 {
		r.popList()
	}
	if len(r.lists) == level+1 && r.lists[level] != ordered {
		r.popList()
	}
	for len(r.lists) < level+1 {
		r.pushList(ordered)
	}
	r.out = append(r.out, "<li>"...)
	r.out = inline(r.out, bytes.TrimRight(content, " \t"))
	r.out = append(r.out, "</li>\n"...)
}

func (r *blockRenderer) pushList(ordered bool) {
	if ordered {
		r.out = append(r.out, "<ol>\n"...)
	} else {
		r.out = append(r.out, "<ul>\n"...)
	}
	r.lists = append(r.lists, ordered)
}

func (r *blockRenderer) popList() {
	n := len(r.lists) - 1
	if r.lists[n] {
		r.out = append(r.out, "</ol>\n"...)
	} else {
		r.out = append(r.out, "</ul>\n"...)
	}
	r.lists = r.lists[:n]
}

func (r *blockRenderer) closeLists(n int) {
	for len(r.lists) > n {
		r.popList()
	}
}

func (r *blockRenderer) closeP() {
	if r.inP {
		r.out = append(r.out, "</p>\n"...)
		r.inP = false
	}
}

func (r *blockRenderer) closeCode() {
	if r.inCode {
		r.out = append(r.out, "</code></pre>\n"...)
		r.inCode = false
	}
}

func (r *blockRenderer) adjustQuotes(depth int) {
	for r.quote > depth {
		r.out = append(r.out, "</blockquote>\n"...)
		r.quote--
	}
	for r.quote < depth {
		r.out = append(r.out, "<blockquote>\n"...)
		r.quote++
	}
}

func (r *blockRenderer) flush() {
	r.closeP()
	r.closeCode()
	r.closeLists(0)
	r.adjustQuotes(0)
}
