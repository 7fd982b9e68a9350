package doc

import (
	"github.com/marciovmf/stdx-go/token"
)

// Dialect selects the lookup and getter semantics of the front-end that
// produced a document: flat section names with read-time conversions
// (INI) or dotted paths over load-typed values (TML).
type Dialect int

const (
	INI Dialect = iota
	TML
)

func (d Dialect) String() string {
	switch d {
	case INI:
		return "ini"
	case TML:
		return "tml"
	default:
		return "<err: bad dialect>"
	}
}

// node is a section. Links are indices into the document's node table,
// -1 when absent. kvStart/kvCount identify the section's contiguous run
// in the KV table.
type node struct {
	name        []byte
	nameHash    uint32
	parent      int32
	firstChild  int32
	nextSibling int32
	kvStart     int32
	kvCount     int32
}

type kv struct {
	key []byte
	val Value
}

// Capacity carries the prescan's upper bounds for every arena region.
// Overestimating is fine; underestimating surfaces as a memory error
// during load and is a front-end defect.
type Capacity struct {
	Nodes   int
	KVs     int
	I64s    int
	F64s    int
	Strs    int
	Scratch int
}

// WithSlack pads each pool with a small constant to absorb off-by-one
// edges in the prescan's counting.
func (c Capacity) WithSlack() Capacity {
	const slack = 8
	c.Nodes += slack
	c.KVs += slack
	c.I64s += slack
	c.F64s += slack
	c.Strs += slack
	c.Scratch += slack
	return c
}

// Document is the entire parsed representation: section tree, KV table,
// array pools and escape scratch, all preallocated to the prescan's
// capacities. It borrows src for the whole of its lifetime.
type Document struct {
	src     []byte
	dialect Dialect

	nodes   []node
	kvs     []kv
	i64s    []int64
	f64s    []float64
	strs    [][]byte
	scratch []byte

	firstRoot int32
	lastRoot  int32
	closed    bool
}

func NewDocument(src []byte, dialect Dialect, c Capacity) *Document {
	return &Document{
		src:       src,
		dialect:   dialect,
		nodes:     make([]node, 0, c.Nodes),
		kvs:       make([]kv, 0, c.KVs),
		i64s:      make([]int64, 0, c.I64s),
		f64s:      make([]float64, 0, c.F64s),
		strs:      make([][]byte, 0, c.Strs),
		scratch:   make([]byte, 0, c.Scratch),
		firstRoot: -1,
		lastRoot:  -1,
	}
}

func (d *Document) Dialect() Dialect {
	return d.dialect
}

// SectionCount returns the number of sections in the document,
// including the implicit global section and anonymous list entries.
func (d *Document) SectionCount() int {
	return len(d.nodes)
}

// Close releases the document. All cursors, values and views obtained
// from it become invalid. Closing twice is a no-op.
func (d *Document) Close() {
	d.src = nil
	d.nodes = nil
	d.kvs = nil
	d.i64s = nil
	d.f64s = nil
	d.strs = nil
	d.scratch = nil
	d.firstRoot = -1
	d.lastRoot = -1
	d.closed = true
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	return d.closed
}

// Builder surface, used by the front-ends only. The structure pass
// creates nodes and counts entries per node; Seal lays out the KV runs;
// the fill pass places entries and pool elements.

// NewNode appends a section named name under parent (-1 for a root) and
// returns its index. Root-chain linking is automatic; child links are
// the caller's job via SetFirstChild and LinkSibling. Returns ok=false
// when the node table is full.
func (d *Document) NewNode(name []byte, parent int32) (int32, bool) {
	if len(d.nodes) == cap(d.nodes) {
		return -1, false
	}
	idx := int32(len(d.nodes))
	d.nodes = append(d.nodes, node{
		name:        name,
		nameHash:    token.Hash(name),
		parent:      parent,
		firstChild:  -1,
		nextSibling: -1,
	})
	if parent == -1 {
		if d.firstRoot == -1 {
			d.firstRoot = idx
		} else {
			d.nodes[d.lastRoot].nextSibling = idx
		}
		d.lastRoot = idx
	}
	return idx, true
}

func (d *Document) SetFirstChild(parent, child int32) {
	d.nodes[parent].firstChild = child
}

func (d *Document) LinkSibling(prev, next int32) {
	d.nodes[prev].nextSibling = next
}

// CountKV bumps n's entry count during the structure pass.
func (d *Document) CountKV(n int32) {
	d.nodes[n].kvCount++
}

// Seal converts the per-node entry counts into contiguous, disjoint
// runs (prefix sums in node order) and zeroes the counts so FillKV can
// refill them. Returns false when the total exceeds the KV capacity.
func (d *Document) Seal() bool {
	total := 0
	for i := range d.nodes {
		n := &d.nodes[i]
		n.kvStart = int32(total)
		total += int(n.kvCount)
		n.kvCount = 0
	}
	if total > cap(d.kvs) {
		return false
	}
	d.kvs = d.kvs[:total]
	return true
}

// FillKV places the next entry of n's run during the fill pass. The
// fill pass must present entries in the same per-node order the
// structure pass counted them.
func (d *Document) FillKV(n int32, key []byte, v Value) {
	nd := &d.nodes[n]
	d.kvs[nd.kvStart+nd.kvCount] = kv{key: key, val: v}
	nd.kvCount++
}

// Pool appends. Each returns false when its pool is at capacity.

func (d *Document) PoolInt64(v int64) bool {
	if len(d.i64s) == cap(d.i64s) {
		return false
	}
	d.i64s = append(d.i64s, v)
	return true
}

func (d *Document) PoolFloat64(v float64) bool {
	if len(d.f64s) == cap(d.f64s) {
		return false
	}
	d.f64s = append(d.f64s, v)
	return true
}

func (d *Document) PoolStr(view []byte) bool {
	if len(d.strs) == cap(d.strs) {
		return false
	}
	d.strs = append(d.strs, view)
	return true
}

// Pool lengths, for computing array starts before emission.

func (d *Document) I64Count() int32 {
	return int32(len(d.i64s))
}

func (d *Document) F64Count() int32 {
	return int32(len(d.f64s))
}

func (d *Document) StrCount() int32 {
	return int32(len(d.strs))
}

// Unescape decodes a quoted body into the scratch region and returns
// the decoded view. Decoding never grows the input, so the body length
// bounds the need. Returns ok=false when scratch is exhausted.
func (d *Document) Unescape(body []byte) ([]byte, bool) {
	mark := len(d.scratch)
	if mark+len(body) > cap(d.scratch) {
		return nil, false
	}
	d.scratch = token.Unescape(d.scratch, body)
	out := d.scratch[mark:]
	return out[:len(out):len(out)], true
}

// Array pool views. Each returns the sub-slice a value references, or
// nil when the value is not an array of that element kind.

func (d *Document) ArrayInt64s(v Value) []int64 {
	if v.kind != ArrayKind || v.elem != IntKind {
		return nil
	}
	return d.i64s[v.start : v.start+v.count : v.start+v.count]
}

func (d *Document) ArrayFloat64s(v Value) []float64 {
	if v.kind != ArrayKind || v.elem != FloatKind {
		return nil
	}
	return d.f64s[v.start : v.start+v.count : v.start+v.count]
}

func (d *Document) ArrayStrings(v Value) [][]byte {
	if v.kind != ArrayKind || v.elem != StringKind {
		return nil
	}
	return d.strs[v.start : v.start+v.count : v.start+v.count]
}
