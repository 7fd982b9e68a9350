package tml

import (
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/token"
)

// scalar types a single value. Quoted text is a string with the
// quotes stripped, exactly true or false is a bool, then int, then
// float, then the raw bytes as a string.
func (p *parser) scalar(rs, re int) doc.Value {
	v := p.d[rs:re]
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return doc.FromBytes(v[1 : len(v)-1])
	}
	if string(v) == "true" {
		return doc.FromBool(true)
	}
	if string(v) == "false" {
		return doc.FromBool(false)
	}
	if !token.FloatShaped(v) {
		if n, ok := token.ParseInt(v); ok {
			return doc.FromInt64(n)
		}
	}
	if f, ok := token.ParseFloat(v); ok {
		return doc.FromFloat64(f)
	}
	return doc.FromBytes(v)
}

// arrTok is one classified array element. str always holds the raw
// view (quotes stripped) so a string-typed array can carry numeric
// elements verbatim.
type arrTok struct {
	kind doc.Kind
	i64  int64
	f64  float64
	str  []byte
}

type arrayBuilder struct {
	d        []byte
	toks     []arrTok
	canInt   bool
	forceStr bool
}

func (b *arrayBuilder) add(s, e int) {
	s, e = trimTok(b.d, s, e)
	v := b.d[s:e]
	if len(v) == 0 {
		return
	}
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		b.toks = append(b.toks, arrTok{kind: doc.StringKind, str: v[1 : len(v)-1]})
		b.forceStr = true
		return
	}
	if token.FloatShaped(v) {
		if f, ok := token.ParseFloat(v); ok {
			b.toks = append(b.toks, arrTok{kind: doc.FloatKind, f64: f, str: v})
			b.canInt = false
			return
		}
		b.toks = append(b.toks, arrTok{kind: doc.StringKind, str: v})
		b.forceStr = true
		return
	}
	if n, ok := token.ParseInt(v); ok {
		b.toks = append(b.toks, arrTok{kind: doc.IntKind, i64: n, str: v})
		return
	}
	// Digits that overflow int64 still land in the float pool.
	if f, ok := token.ParseFloat(v); ok {
		b.toks = append(b.toks, arrTok{kind: doc.FloatKind, f64: f, str: v})
		b.canInt = false
		return
	}
	b.toks = append(b.toks, arrTok{kind: doc.StringKind, str: v})
	b.forceStr = true
}

// array tokenizes the collected segments, resolves the element kind
// (string if any element is one, int only if all are, float
// otherwise) and emits one contiguous pool run. errOff positions a
// memory record if a pool is exhausted.
func (p *parser) array(segs [][2]int, errOff int) (doc.Value, error) {
	b := arrayBuilder{d: p.d, toks: p.toks[:0], canInt: true}
	for _, sg := range segs {
		i, e := sg[0], sg[1]
		start := i
		inQuote := false
		for i < e {
			c := p.d[i]
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
				b.add(start, i)
				start = i + 1
			}
			i++
		}
		b.add(start, e)
	}
	p.toks = b.toks

	elem := doc.IntKind
	switch {
	case b.forceStr:
		elem = doc.StringKind
	case !b.canInt:
		elem = doc.FloatKind
	}

	var start int32
	switch elem {
	case doc.IntKind:
		start = p.doc.I64Count()
		for _, t := range b.toks {
			if !p.doc.PoolInt64(t.i64) {
				return doc.Value{}, token.Record(token.Memory, p.pd, errOff)
			}
		}
	case doc.FloatKind:
		start = p.doc.F64Count()
		for _, t := range b.toks {
			f := t.f64
			if t.kind == doc.IntKind {
				f = float64(t.i64)
			}
			if !p.doc.PoolFloat64(f) {
				return doc.Value{}, token.Record(token.Memory, p.pd, errOff)
			}
		}
	case doc.StringKind:
		start = p.doc.StrCount()
		for _, t := range b.toks {
			if !p.doc.PoolStr(t.str) {
				return doc.Value{}, token.Record(token.Memory, p.pd, errOff)
			}
		}
	}
	return doc.FromArray(elem, start, int32(len(b.toks))), nil
}
