package ini

import (
	"github.com/marciovmf/stdx-go/debug"
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/token"
)

// Load parses INI text into a document. data is borrowed by the result
// and must stay live and unmodified until the document is closed. On
// failure the error is a *token.ErrorRecord and no partial document is
// surfaced.
func Load(data []byte) (*doc.Document, error) {
	if len(data) == 0 {
		return nil, token.RecordAt(token.IO, 1, 1)
	}
	caps := prescan(data)
	if debug.Prescan() {
		debug.Logf("ini prescan: nodes=%d kvs=%d scratch=%d\n",
			caps.Nodes, caps.KVs, caps.Scratch)
	}
	p := &parser{
		d:   data,
		doc: doc.NewDocument(data, doc.INI, caps.WithSlack()),
		pd:  token.NewPosDoc(data),
	}
	if err := p.structure(); err != nil {
		return nil, err
	}
	if !p.doc.Seal() {
		return nil, token.RecordAt(token.Memory, 1, 1)
	}
	if err := p.fill(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

type parser struct {
	d   []byte
	doc *doc.Document
	pd  *token.PosDoc
	i   int
}

// nextLine yields the next line as [s,e) excluding its terminator and
// ok=false at end of input. LF, CRLF and lone CR all terminate. Breaks
// are recorded into the position table on the first pass only.
func (p *parser) nextLine(record bool) (int, int, bool) {
	if p.i >= len(p.d) {
		return 0, 0, false
	}
	s := p.i
	for p.i < len(p.d) {
		switch p.d[p.i] {
		case '\n':
			e := p.i
			if record {
				p.pd.Newline(p.i)
			}
			p.i++
			return s, e, true
		case '\r':
			e := p.i
			if p.i+1 < len(p.d) && p.d[p.i+1] == '\n' {
				if record {
					p.pd.Newline(p.i + 1)
				}
				p.i += 2
			} else {
				if record {
					p.pd.Newline(p.i)
				}
				p.i++
			}
			return s, e, true
		}
		p.i++
	}
	return s, p.i, true
}

// structure is the first of the two parse passes: it creates sections,
// counts each section's entries, and reports every load error. The
// second pass can then fill contiguous KV runs without validating.
func (p *parser) structure() error {
	global, ok := p.doc.NewNode(nil, -1)
	if !ok {
		return token.RecordAt(token.Memory, 1, 1)
	}
	cur := global
	p.i = 0
	for {
		s, e, more := p.nextLine(true)
		if !more {
			break
		}
		ls, le := trimRange(p.d, s, e)
		if ls == le {
			continue
		}
		switch p.d[ls] {
		case ';', '#':
			continue
		case '[':
			rb := indexByteRange(p.d, ls+1, le, ']')
			if rb < 0 {
				return token.Record(token.ExpectRBracket, p.pd, le)
			}
			name := token.Trim(p.d[ls+1 : rb])
			if c := p.doc.Root().FindChild(name); c.Valid() {
				// re-opened section: entries append to it
				cur = c.Index()
				continue
			}
			n, ok := p.doc.NewNode(name, -1)
			if !ok {
				return token.Record(token.Memory, p.pd, ls)
			}
			cur = n
		default:
			sh := scanLine(p.d, ls, le)
			if sh.openQuote >= 0 {
				return token.Record(token.UntermString, p.pd, sh.openQuote)
			}
			if sh.eq < 0 {
				return token.Record(token.ExpectEquals, p.pd, sh.end)
			}
			p.doc.CountKV(cur)
		}
	}
	return nil
}

// fill replays the lines, attaching values to the runs laid out by
// Seal. Structure errors were all caught in the first pass.
func (p *parser) fill() error {
	cur := int32(0)
	p.i = 0
	for {
		s, e, more := p.nextLine(false)
		if !more {
			break
		}
		ls, le := trimRange(p.d, s, e)
		if ls == le {
			continue
		}
		switch p.d[ls] {
		case ';', '#':
			continue
		case '[':
			rb := indexByteRange(p.d, ls+1, le, ']')
			name := token.Trim(p.d[ls+1 : rb])
			cur = p.doc.Root().FindChild(name).Index()
		default:
			sh := scanLine(p.d, ls, le)
			key := token.Trim(p.d[ls:sh.eq])
			v, err := p.value(p.d[sh.eq+1 : sh.end])
			if err != nil {
				return err
			}
			p.doc.FillKV(cur, key, v)
		}
	}
	return nil
}

// value classifies an INI value. A quoted value is unwrapped and, when
// it carries escapes, decoded into the document's scratch region;
// otherwise the stored payload is the trimmed raw view into the input.
func (p *parser) value(raw []byte) (doc.Value, error) {
	v := token.Trim(raw)
	if len(v) >= 2 && v[0] == '"' {
		if end, ok := token.QuotedEnd(v, 0); ok {
			body := v[1 : end-1]
			if !token.HasEscape(body) {
				return doc.FromBytes(body), nil
			}
			dec, ok := p.doc.Unescape(body)
			if !ok {
				return doc.None(), token.RecordAt(token.Memory, 1, 1)
			}
			return doc.FromBytes(dec), nil
		}
	}
	return doc.FromBytes(v), nil
}
