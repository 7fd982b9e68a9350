package main

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/marciovmf/stdx-go/format"
	"github.com/marciovmf/stdx-go/token"
)

// Legend indices, matching the capabilities advertised in Initialize.
const (
	tokComment uint32 = iota
	tokKeyword
	tokString
	tokNumber
	tokOperator
	tokProperty
)

const modDefinition uint32 = 1 << 0

type tokenInfo struct {
	line, char, length uint32
	typ                uint32
	mods               uint32
}

// lineScanner classifies one line at a time. Documents have no
// per-token positions, so highlighting re-lexes the text with the same
// line shapes the loaders use.
type lineScanner struct {
	toks []tokenInfo
	ln   uint32

	// triple is set while a triple-quoted body is open, cont while a
	// comma array is pulling in continuation lines.
	triple bool
	cont   bool
}

func (sc *lineScanner) emit(col, n int, typ, mods uint32) {
	if n <= 0 {
		return
	}
	sc.toks = append(sc.toks, tokenInfo{
		line:   sc.ln,
		char:   uint32(col),
		length: uint32(n),
		typ:    typ,
		mods:   mods,
	})
}

func scanTokens(content string, f format.Format) []tokenInfo {
	sc := &lineScanner{}
	for ln, line := range strings.Split(content, "\n") {
		sc.ln = uint32(ln)
		line = strings.TrimSuffix(line, "\r")
		if f == format.INIFormat {
			sc.iniLine(line)
		} else {
			sc.tmlLine(line)
		}
	}
	return sc.toks
}

func (sc *lineScanner) iniLine(line string) {
	d := []byte(line)
	ls, le := 0, len(d)
	for ls < le && token.IsSpace(d[ls]) {
		ls++
	}
	if ls == le {
		return
	}
	switch d[ls] {
	case ';', '#':
		sc.emit(ls, le-ls, tokComment, 0)
		return
	case '[':
		rb := ls + 1
		for rb < le && d[rb] != ']' {
			rb++
		}
		sc.emit(ls, 1, tokOperator, 0)
		ns, ne := trimCols(d, ls+1, rb)
		sc.emit(ns, ne-ns, tokProperty, modDefinition)
		if rb < le {
			sc.emit(rb, 1, tokOperator, 0)
		}
		return
	}
	// key = value, with ; or # starting an inline comment outside
	// quotes.
	eq, end := -1, le
	inQuote := false
	for i := ls; i < le; {
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
		case '=':
			if eq < 0 {
				eq = i
			}
		case ';', '#':
			end = i
			i = le
			continue
		}
		i++
	}
	if eq < 0 {
		if end < le {
			sc.emit(end, le-end, tokComment, 0)
		}
		return
	}
	ks, ke := trimCols(d, ls, eq)
	sc.emit(ks, ke-ks, tokProperty, 0)
	sc.emit(eq, 1, tokOperator, 0)
	vs, ve := trimCols(d, eq+1, end)
	sc.scalar(d, vs, ve, true)
	if end < le {
		sc.emit(end, le-end, tokComment, 0)
	}
}

func (sc *lineScanner) tmlLine(line string) {
	d := []byte(line)
	if sc.triple {
		if i := strings.Index(line, `"""`); i >= 0 {
			sc.emit(0, i+3, tokString, 0)
			sc.triple = false
			return
		}
		sc.emit(0, len(d), tokString, 0)
		return
	}
	ls, le := trimCols(d, 0, len(d))
	if ls == le {
		sc.cont = false
		return
	}
	if sc.cont {
		sc.elems(d, ls, le)
		sc.cont = d[le-1] == ','
		return
	}
	if d[ls] == '#' {
		sc.emit(ls, le-ls, tokComment, 0)
		return
	}
	sc.tmlContent(d, ls, le)
}

// tmlContent classifies [ls, le), recursing past bullet dashes the
// way the loader does.
func (sc *lineScanner) tmlContent(d []byte, ls, le int) {
	if d[ls] == '-' && (ls+1 >= le || d[ls+1] == ' ') {
		sc.emit(ls, 1, tokOperator, 0)
		rs := ls + 1
		for rs < le && d[rs] == ' ' {
			rs++
		}
		if rs < le {
			sc.tmlContent(d, rs, le)
		}
		return
	}
	sep, at := sepAt(d, ls, le)
	if at < 0 {
		return
	}
	rs, re := trimCols(d, at+1, le)
	if sep == ':' && rs == re {
		ns, ne := trimCols(d, ls, at)
		sc.emit(ns, ne-ns, tokProperty, modDefinition)
		sc.emit(at, 1, tokOperator, 0)
		return
	}
	ks, ke := trimCols(d, ls, at)
	sc.emit(ks, ke-ks, tokProperty, 0)
	sc.emit(at, 1, tokOperator, 0)
	if rs == re {
		return
	}
	if rs+3 <= re && d[rs] == '"' && d[rs+1] == '"' && d[rs+2] == '"' {
		if i := strings.Index(string(d[rs+3:re]), `"""`); i >= 0 {
			sc.emit(rs, i+6, tokString, 0)
			return
		}
		sc.emit(rs, re-rs, tokString, 0)
		sc.triple = true
		return
	}
	if hasComma(d, rs, re) {
		sc.elems(d, rs, re)
		sc.cont = d[re-1] == ','
		return
	}
	sc.scalar(d, rs, re, false)
}

// elems walks a comma list, classifying each element and marking the
// commas as operators.
func (sc *lineScanner) elems(d []byte, s, e int) {
	start := s
	inQuote := false
	for i := s; i <= e; i++ {
		if i < e {
			c := d[i]
			if inQuote {
				switch c {
				case '\\':
					i++
				case '"':
					inQuote = false
				}
				continue
			}
			if c == '"' {
				inQuote = true
				continue
			}
			if c != ',' {
				continue
			}
		}
		vs, ve := trimCols(d, start, i)
		sc.scalar(d, vs, ve, false)
		if i < e {
			sc.emit(i, 1, tokOperator, 0)
		}
		start = i + 1
	}
}

// scalar classifies one value. The relaxed flag admits the bracketed
// dialect's wider boolean literal set.
func (sc *lineScanner) scalar(d []byte, s, e int, relaxed bool) {
	if s >= e {
		return
	}
	v := d[s:e]
	if v[0] == '"' {
		sc.emit(s, e-s, tokString, 0)
		return
	}
	if string(v) == "true" || string(v) == "false" {
		sc.emit(s, e-s, tokKeyword, 0)
		return
	}
	if !token.FloatShaped(v) {
		if _, ok := token.ParseInt(v); ok {
			sc.emit(s, e-s, tokNumber, 0)
			return
		}
	}
	if _, ok := token.ParseFloat(v); ok {
		sc.emit(s, e-s, tokNumber, 0)
		return
	}
	if relaxed {
		if _, ok := token.ParseBool(v); ok {
			sc.emit(s, e-s, tokKeyword, 0)
			return
		}
	}
	sc.emit(s, e-s, tokString, 0)
}

func trimCols(d []byte, s, e int) (int, int) {
	for s < e && token.IsSpace(d[s]) {
		s++
	}
	for e > s && token.IsSpace(d[e-1]) {
		e--
	}
	return s, e
}

// sepAt mirrors the loader's separator search: first ':' or '='
// outside double quotes.
func sepAt(d []byte, s, e int) (byte, int) {
	inQuote := false
	for i := s; i < e; i++ {
		c := d[i]
		if inQuote {
			switch c {
			case '\\':
				i++
			case '"':
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case ':', '=':
			return c, i
		}
	}
	return 0, -1
}

func hasComma(d []byte, s, e int) bool {
	inQuote := false
	for i := s; i < e; i++ {
		c := d[i]
		if inQuote {
			switch c {
			case '\\':
				i++
			case '"':
				inQuote = false
			}
			continue
		}
		if c == ',' {
			return true
		}
	}
	return false
}

// deltaEncode packs tokens in the protocol's relative five-uint32
// layout. The scan already yields them in text order.
func deltaEncode(toks []tokenInfo) []uint32 {
	data := []uint32{}
	var prevLine, prevChar uint32
	for _, ti := range toks {
		deltaLine := ti.line - prevLine
		deltaChar := ti.char
		if deltaLine == 0 {
			deltaChar = ti.char - prevChar
		}
		data = append(data, deltaLine, deltaChar, ti.length, ti.typ, ti.mods)
		prevLine = ti.line
		prevChar = ti.char
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	return &protocol.SemanticTokens{
		Data: deltaEncode(scanTokens(doc.content, doc.format)),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	toks := scanTokens(doc.content, doc.format)
	inRange := toks[:0]
	for _, ti := range toks {
		if ti.line < params.Range.Start.Line || ti.line > params.Range.End.Line {
			continue
		}
		inRange = append(inRange, ti)
	}
	return &protocol.SemanticTokens{Data: deltaEncode(inRange)}, nil
}
