package tml

import (
	"bytes"

	"github.com/marciovmf/stdx-go/debug"
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/token"
)

// Load parses TML text into a document. The returned error, if any,
// is a *token.ErrorRecord carrying the code and 1-based position of
// the first problem. The document holds views into data; the buffer
// must stay alive and unchanged until Close.
func Load(data []byte, opts ...Option) (*doc.Document, error) {
	if len(data) == 0 {
		return nil, token.RecordAt(token.IO, 1, 1)
	}
	var o loadOpts
	for _, f := range opts {
		f(&o)
	}
	caps := prescan(data)
	if debug.Prescan() {
		debug.Logf("tml prescan: nodes=%d kvs=%d pool=%d\n",
			caps.Nodes, caps.KVs, caps.I64s)
	}
	p := &parser{
		d:      data,
		doc:    doc.NewDocument(data, doc.TML, caps.WithSlack()),
		pd:     token.NewPosDoc(data),
		strict: o.strictTriple,
	}
	p.pd.Scan()
	if _, ok := p.doc.NewNode(nil, -1); !ok {
		return nil, token.RecordAt(token.Memory, 1, 1)
	}
	if err := p.run(false); err != nil {
		return nil, err
	}
	if !p.doc.Seal() {
		return nil, token.RecordAt(token.Memory, 1, 1)
	}
	if err := p.run(true); err != nil {
		return nil, err
	}
	return p.doc, nil
}

type keyRef struct {
	hash uint32
	name []byte
}

// frame is one open section on the indent stack. The bottom frame has
// node -1: children created under it are roots, keys filed under it
// land in the global section.
type frame struct {
	depth int
	node  int32
	last  int32
	keys  []keyRef
}

type parser struct {
	d      []byte
	doc    *doc.Document
	pd     *token.PosDoc
	i      int
	unit   int
	strict bool

	// fill selects the second pass: node ids come from nextNode in
	// creation order instead of NewNode, and values are built.
	fill     bool
	nextNode int32
	stack    []frame
	rootKeys []keyRef
	toks     []arrTok
	segs     [][2]int
}

func (p *parser) run(fill bool) error {
	p.i = 0
	p.unit = 0
	p.fill = fill
	p.nextNode = 1
	p.rootKeys = p.rootKeys[:0]
	p.stack = append(p.stack[:0], frame{depth: -1, node: -1, last: -1})

	for {
		s, e, ok := p.nextLine()
		if !ok {
			return nil
		}

		firstTab := -1
		j := s
		for j < e && (p.d[j] == ' ' || p.d[j] == '\t') {
			if p.d[j] == '\t' && firstTab < 0 {
				firstTab = j
			}
			j++
		}
		ls, le := trimRange(p.d, j, e)
		if ls == le || p.d[ls] == '#' {
			continue
		}
		if firstTab >= 0 {
			return token.Record(token.IndentTab, p.pd, firstTab)
		}

		depth := 0
		if indent := j - s; indent > 0 {
			if p.unit == 0 {
				if indent != 2 && indent != 4 {
					return token.Record(token.IndentNotMultiple, p.pd, ls)
				}
				p.unit = indent
			}
			if indent%p.unit != 0 {
				return token.Record(token.IndentNotMultiple, p.pd, ls)
			}
			depth = indent / p.unit
		}

		for p.top().depth >= depth {
			p.stack = p.stack[:len(p.stack)-1]
		}
		if err := p.classify(depth, ls, le); err != nil {
			return err
		}
	}
}

// classify handles one line's content, already stripped of indent.
// The caller has popped the stack down to the line's parent. Bullets
// recurse: the remainder of a "- " line belongs to the fresh
// anonymous section, which is on top of the stack by then.
func (p *parser) classify(depth, ls, le int) error {
	if p.d[ls] == '-' && (ls+1 >= le || p.d[ls+1] == ' ') {
		id, err := p.addChild(nil, ls)
		if err != nil {
			return err
		}
		p.stack = append(p.stack, frame{depth: depth, node: id, last: -1})
		rs := ls + 1
		for rs < le && p.d[rs] == ' ' {
			rs++
		}
		if rs < le {
			return p.classify(depth, rs, le)
		}
		return nil
	}

	sep, at := findSep(p.d, ls, le)
	if at < 0 {
		return token.Record(token.Syntax, p.pd, ls)
	}

	rs, re := trimRange(p.d, at+1, le)
	if sep == ':' && rs == re {
		ns, ne := trimRange(p.d, ls, at)
		if ns == ne {
			return token.Record(token.Syntax, p.pd, ls)
		}
		name := p.d[ns:ne]
		if !p.fill {
			parent := p.doc.Root()
			if t := p.top(); t.node != -1 {
				parent = p.doc.At(t.node)
			}
			if parent.FindChild(name).Valid() {
				return token.Record(token.DuplicateSibling, p.pd, ns)
			}
		}
		id, err := p.addChild(name, ns)
		if err != nil {
			return err
		}
		p.stack = append(p.stack, frame{depth: depth, node: id, last: -1})
		return nil
	}

	return p.kv(ls, at, rs, re)
}

func (p *parser) kv(ls, at, rs, re int) error {
	ks, ke := trimRange(p.d, ls, at)
	if ks == ke {
		return token.Record(token.BadKey, p.pd, ls)
	}
	key := p.d[ks:ke]

	owner := p.top().node
	if owner == -1 {
		owner = 0
	}

	if !p.fill {
		keys := &p.rootKeys
		if t := p.top(); t.node != -1 {
			keys = &t.keys
		}
		h := token.Hash(key)
		for _, k := range *keys {
			if k.hash == h && bytes.Equal(k.name, key) {
				return token.Record(token.BadKey, p.pd, ks)
			}
		}
		*keys = append(*keys, keyRef{hash: h, name: key})
		p.doc.CountKV(owner)
	}

	// A triple-quoted body runs to the matching delimiter, crossing
	// line breaks. The rest of the closing line is discarded.
	if token.IsTripleQuote(p.d, rs) {
		end, closed := token.TripleEnd(p.d, rs)
		if !closed && p.strict && !p.fill {
			return token.Record(token.UntermString, p.pd, rs)
		}
		if p.fill {
			body := p.d[rs+3 : end]
			if closed {
				body = p.d[rs+3 : end-3]
			}
			p.doc.FillKV(owner, key, doc.FromBytes(token.TrimTripleBody(body)))
		}
		p.i = end
		p.discardLine()
		return nil
	}

	if hasUnquotedComma(p.d, rs, re) {
		segs := p.continuation(rs, re)
		if p.fill {
			v, err := p.array(segs, ks)
			if err != nil {
				return err
			}
			p.doc.FillKV(owner, key, v)
		}
		return nil
	}

	if p.fill {
		p.doc.FillKV(owner, key, p.scalar(rs, re))
	}
	return nil
}

// continuation collects the segments of an array value. A segment
// ending in a comma pulls in the next line; the first line that does
// not end in one, blank lines included, closes the array. Both passes
// consume the same lines.
func (p *parser) continuation(rs, re int) [][2]int {
	segs := append(p.segs[:0], [2]int{rs, re})
	for {
		s, e := segs[len(segs)-1][0], segs[len(segs)-1][1]
		if s == e || p.d[e-1] != ',' {
			break
		}
		ns, ne, ok := p.nextLine()
		if !ok {
			break
		}
		cs, ce := trimRange(p.d, ns, ne)
		if cs == ce {
			break
		}
		segs = append(segs, [2]int{cs, ce})
	}
	p.segs = segs
	return segs
}

func (p *parser) addChild(name []byte, off int) (int32, error) {
	if p.fill {
		id := p.nextNode
		p.nextNode++
		return id, nil
	}
	t := p.top()
	id, ok := p.doc.NewNode(name, t.node)
	if !ok {
		return -1, token.Record(token.Memory, p.pd, off)
	}
	if t.node != -1 {
		if t.last == -1 {
			p.doc.SetFirstChild(t.node, id)
		} else {
			p.doc.LinkSibling(t.last, id)
		}
	}
	t.last = id
	return id, nil
}

func (p *parser) top() *frame {
	return &p.stack[len(p.stack)-1]
}

func (p *parser) nextLine() (int, int, bool) {
	if p.i >= len(p.d) {
		return 0, 0, false
	}
	s := p.i
	e := s
	for e < len(p.d) && p.d[e] != '\n' && p.d[e] != '\r' {
		e++
	}
	p.i = e
	if p.i < len(p.d) {
		if p.d[p.i] == '\r' && p.i+1 < len(p.d) && p.d[p.i+1] == '\n' {
			p.i++
		}
		p.i++
	}
	return s, e, true
}

// discardLine advances past the current line's terminator without
// looking at its content.
func (p *parser) discardLine() {
	for p.i < len(p.d) {
		c := p.d[p.i]
		p.i++
		if c == '\n' {
			return
		}
		if c == '\r' {
			if p.i < len(p.d) && p.d[p.i] == '\n' {
				p.i++
			}
			return
		}
	}
}
