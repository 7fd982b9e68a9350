package doc

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/marciovmf/stdx-go/token"
)

// Cursor addresses one section of a document. The zero Cursor, and any
// cursor from a failed lookup, is invalid: navigation on it stays
// invalid and every getter returns its default. The root cursor stands
// for the whole forest of top-level sections.
type Cursor struct {
	d *Document
	n int32
}

func (d *Document) Root() Cursor {
	return Cursor{d: d, n: -1}
}

// At returns a cursor over the section with node index i, the root
// cursor for -1, and an invalid cursor out of range.
func (d *Document) At(i int32) Cursor {
	if i != -1 && (i < 0 || int(i) >= len(d.nodes)) {
		return Cursor{}
	}
	return Cursor{d: d, n: i}
}

func (c Cursor) Valid() bool {
	if c.d == nil || c.d.closed {
		return false
	}
	return c.n == -1 || (c.n >= 0 && int(c.n) < len(c.d.nodes))
}

func (c Cursor) IsRoot() bool {
	return c.d != nil && c.n == -1
}

// Index returns the section's node index for use with the builder
// surface, -1 for the root cursor and invalid cursors.
func (c Cursor) Index() int32 {
	if !c.Valid() {
		return -1
	}
	return c.n
}

// Document returns the document this cursor addresses.
func (c Cursor) Document() *Document {
	return c.d
}

// Name returns the section name as a borrowed view. It is empty for the
// root cursor, for anonymous list entries and for the implicit global
// section.
func (c Cursor) Name() []byte {
	if !c.Valid() || c.n == -1 {
		return nil
	}
	return c.d.nodes[c.n].name
}

func (c Cursor) Parent() Cursor {
	if !c.Valid() || c.n == -1 {
		return Cursor{}
	}
	return Cursor{d: c.d, n: c.d.nodes[c.n].parent}
}

func (c Cursor) first() int32 {
	if c.n == -1 {
		return c.d.firstRoot
	}
	return c.d.nodes[c.n].firstChild
}

func (c Cursor) ChildCount() int {
	if !c.Valid() {
		return 0
	}
	count := 0
	for i := c.first(); i != -1; i = c.d.nodes[i].nextSibling {
		count++
	}
	return count
}

// ChildAt returns the i'th direct child in source order.
func (c Cursor) ChildAt(i int) Cursor {
	if !c.Valid() || i < 0 {
		return Cursor{}
	}
	j := c.first()
	for j != -1 && i > 0 {
		j = c.d.nodes[j].nextSibling
		i--
	}
	if j == -1 {
		return Cursor{}
	}
	return Cursor{d: c.d, n: j}
}

// FindChild walks the sibling list comparing the name hash first, then
// the bytes. Linear in the number of siblings.
func (c Cursor) FindChild(name []byte) Cursor {
	if !c.Valid() {
		return Cursor{}
	}
	h := token.Hash(name)
	for j := c.first(); j != -1; j = c.d.nodes[j].nextSibling {
		nd := &c.d.nodes[j]
		if nd.nameHash != h {
			continue
		}
		if bytes.Equal(nd.name, name) {
			return Cursor{d: c.d, n: j}
		}
	}
	return Cursor{}
}

// Section resolves a path below c. An INI document treats the whole
// path as one flat section name (the empty path is the implicit global
// section). A TML document splits the path on '.', with an all-digit
// segment selecting the Nth direct child by position; the empty path
// stays at c, whose entry accessors already reach the global section.
// Note that the global section occupies root child 0, so Section("0")
// from the root selects it, not the first named section.
func (c Cursor) Section(path string) Cursor {
	if !c.Valid() {
		return Cursor{}
	}
	if c.d.dialect == INI {
		return c.FindChild([]byte(path))
	}
	cur := c
	if path == "" {
		return cur
	}
	for _, seg := range strings.Split(path, ".") {
		b := []byte(seg)
		if token.AllDigits(b) {
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return Cursor{}
			}
			cur = cur.ChildAt(idx)
		} else {
			cur = cur.FindChild(b)
		}
		if !cur.Valid() {
			return Cursor{}
		}
	}
	return cur
}

// entrySection resolves where a cursor's entries live. The root
// cursor's entries are those of the implicit global section, its
// nameless first child; both front-ends create that node before any
// other. A root over a forest whose first section is named has no
// entries of its own.
func (c Cursor) entrySection() Cursor {
	if c.n != -1 {
		return c
	}
	g := c.d.firstRoot
	if g == -1 || len(c.d.nodes[g].name) != 0 {
		return Cursor{}
	}
	return Cursor{d: c.d, n: g}
}

func (c Cursor) EntryCount() int {
	if !c.Valid() {
		return 0
	}
	e := c.entrySection()
	if e.d == nil {
		return 0
	}
	return int(e.d.nodes[e.n].kvCount)
}

// KeyAt returns the i'th entry key in source order, as a borrowed view.
func (c Cursor) KeyAt(i int) []byte {
	if !c.Valid() {
		return nil
	}
	e := c.entrySection()
	if e.d == nil || i < 0 || i >= int(e.d.nodes[e.n].kvCount) {
		return nil
	}
	nd := &e.d.nodes[e.n]
	return e.d.kvs[nd.kvStart+int32(i)].key
}

func (c Cursor) ValueAt(i int) Value {
	if !c.Valid() {
		return None()
	}
	e := c.entrySection()
	if e.d == nil || i < 0 || i >= int(e.d.nodes[e.n].kvCount) {
		return None()
	}
	nd := &e.d.nodes[e.n]
	return e.d.kvs[nd.kvStart+int32(i)].val
}

// Find scans the section's run for key and returns the LAST match,
// giving repeated keys override semantics.
func (c Cursor) Find(key []byte) (Value, bool) {
	if !c.Valid() {
		return None(), false
	}
	e := c.entrySection()
	if e.d == nil {
		return None(), false
	}
	nd := &e.d.nodes[e.n]
	v, ok := None(), false
	for i := int32(0); i < nd.kvCount; i++ {
		kv := &e.d.kvs[nd.kvStart+i]
		if bytes.Equal(kv.key, key) {
			v, ok = kv.val, true
		}
	}
	return v, ok
}

// Visit walks the subtree under c in source order, pre-order, calling
// fn for each section. A false return prunes that section's subtree.
func (c Cursor) Visit(fn func(Cursor) bool) {
	if !c.Valid() {
		return
	}
	if c.n != -1 && !fn(c) {
		return
	}
	for j := c.first(); j != -1; j = c.d.nodes[j].nextSibling {
		Cursor{d: c.d, n: j}.Visit(fn)
	}
}

// Path reconstructs a dotted path for c from the root: names for named
// sections, sibling positions for anonymous ones. The root path is "".
func (c Cursor) Path() string {
	if !c.Valid() || c.n == -1 {
		return ""
	}
	var segs []string
	for cur := c; cur.Valid() && cur.n != -1; cur = cur.Parent() {
		name := cur.d.nodes[cur.n].name
		if len(name) > 0 {
			segs = append(segs, string(name))
			continue
		}
		segs = append(segs, strconv.Itoa(cur.siblingIndex()))
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, ".")
}

func (c Cursor) siblingIndex() int {
	idx := 0
	for j := c.Parent().first(); j != -1; j = c.d.nodes[j].nextSibling {
		if j == c.n {
			return idx
		}
		idx++
	}
	return -1
}
