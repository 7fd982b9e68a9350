// Package merge combines parsed documents into new ones. Documents
// are immutable views over their input, so every operation here works
// by rendering the combined tree as indented-dialect text and loading
// that; the result owns nothing but its backing buffer.
package merge

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
	"github.com/marciovmf/stdx-go/format"
	"github.com/marciovmf/stdx-go/tml"
)

// ErrMerge wraps failures to combine documents.
var ErrMerge = errors.New("merge")

// Overlay lays the section at over on top of the one at base and
// loads the combination as a fresh indented-dialect document.
//
//   - entries keep base's order; a key present on both sides takes
//     over's value, keys only in over are appended
//   - named sections present on both sides combine recursively
//   - anonymous children are a list value: if over has any, they
//     replace base's wholesale
//
// Values from bracketed-dialect inputs are promoted to typed tokens
// on the way through, so overlaying two bracketed documents yields
// typed entries. Both cursors may be roots or any section pair.
func Overlay(base, over doc.Cursor) (*doc.Document, error) {
	if !base.Valid() || !over.Valid() {
		return nil, fmt.Errorf("%w: invalid cursor", ErrMerge)
	}
	var b bytes.Buffer
	if err := body(&b, base, over, 0); err != nil {
		return nil, err
	}
	return load(b.Bytes())
}

// load parses rendered text, keeping the buffer reachable through the
// document's own input reference.
func load(text []byte) (*doc.Document, error) {
	if len(text) == 0 {
		// a lone comment loads as an empty document
		text = []byte("#\n")
	}
	d, err := tml.Load(text)
	if err != nil {
		return nil, fmt.Errorf("%w: reload: %v", ErrMerge, err)
	}
	return d, nil
}

// entriesOf resolves where a cursor's entries live: a root's entries
// sit in its headless first child, the global section.
func entriesOf(c doc.Cursor) doc.Cursor {
	if c.Valid() && c.IsRoot() {
		return c.ChildAt(0)
	}
	return c
}

// childStart returns the index of the first real child section: a
// root's child 0 is the global section, already drained by entriesOf.
func childStart(c doc.Cursor) int {
	if c.Valid() && c.IsRoot() {
		return 1
	}
	return 0
}

func body(b *bytes.Buffer, base, over doc.Cursor, depth int) error {
	if err := entries(b, entriesOf(base), entriesOf(over), depth); err != nil {
		return err
	}
	return children(b, base, over, depth)
}

// entries writes the merged key/value lines of one section pair.
// Duplicate keys within a side collapse to their last value, keeping
// the fresh parse free of duplicate-key rejections.
func entries(b *bytes.Buffer, base, over doc.Cursor, depth int) error {
	pad := indent(depth)
	bn, on := 0, 0
	if base.Valid() {
		bn = base.EntryCount()
	}
	if over.Valid() {
		on = over.EntryCount()
	}
	for i := 0; i < bn; i++ {
		key := base.KeyAt(i)
		if keyBefore(base, key, i) {
			continue
		}
		if over.Valid() {
			if v, ok := over.Find(key); ok {
				if err := entry(b, pad, key, over.Document(), v); err != nil {
					return err
				}
				continue
			}
		}
		v, _ := base.Find(key)
		if err := entry(b, pad, key, base.Document(), v); err != nil {
			return err
		}
	}
	for i := 0; i < on; i++ {
		key := over.KeyAt(i)
		if keyBefore(over, key, i) {
			continue
		}
		if base.Valid() {
			if _, ok := base.Find(key); ok {
				continue
			}
		}
		v, _ := over.Find(key)
		if err := entry(b, pad, key, over.Document(), v); err != nil {
			return err
		}
	}
	return nil
}

func keyBefore(c doc.Cursor, key []byte, i int) bool {
	for j := 0; j < i; j++ {
		if bytes.Equal(c.KeyAt(j), key) {
			return true
		}
	}
	return false
}

func entry(b *bytes.Buffer, pad string, key []byte, d *doc.Document, v doc.Value) error {
	if err := encode.CheckKey(string(key)); err != nil {
		return fmt.Errorf("%w: %v", ErrMerge, err)
	}
	text, guard := encode.ValueText(d, v)
	b.WriteString(pad + string(key) + ": " + text + "\n")
	if guard {
		b.WriteString("\n")
	}
	return nil
}

func children(b *bytes.Buffer, base, over doc.Cursor, depth int) error {
	overAnon := false
	var on int
	if over.Valid() {
		on = over.ChildCount()
		for i := childStart(over); i < on; i++ {
			if len(over.ChildAt(i).Name()) == 0 {
				overAnon = true
				break
			}
		}
	}
	if base.Valid() {
		bn := base.ChildCount()
		for i := childStart(base); i < bn; i++ {
			ch := base.ChildAt(i)
			name := ch.Name()
			if len(name) == 0 {
				if overAnon {
					continue
				}
				if err := section(b, ch, depth); err != nil {
					return err
				}
				continue
			}
			if over.Valid() {
				if oc := over.FindChild(name); oc.Valid() {
					if err := header(b, name, depth); err != nil {
						return err
					}
					if err := body(b, ch, oc, depth+1); err != nil {
						return err
					}
					continue
				}
			}
			if err := section(b, ch, depth); err != nil {
				return err
			}
		}
	}
	for i := childStart(over); i < on; i++ {
		ch := over.ChildAt(i)
		name := ch.Name()
		if len(name) == 0 {
			if err := section(b, ch, depth); err != nil {
				return err
			}
			continue
		}
		if base.Valid() && base.FindChild(name).Valid() {
			continue
		}
		if err := section(b, ch, depth); err != nil {
			return err
		}
	}
	return nil
}

func header(b *bytes.Buffer, name []byte, depth int) error {
	if err := encode.CheckKey(string(name)); err != nil {
		return fmt.Errorf("%w: %v", ErrMerge, err)
	}
	b.WriteString(indent(depth) + string(name) + ":\n")
	return nil
}

// section renders one side's subtree untouched, header plus body.
func section(b *bytes.Buffer, c doc.Cursor, depth int) error {
	name := c.Name()
	if len(name) == 0 {
		b.WriteString(indent(depth) + "-\n")
	} else if err := header(b, name, depth); err != nil {
		return err
	}
	if err := encode.Encode(c, b,
		encode.EncodeFormat(format.TMLFormat),
		encode.Depth(depth+1),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return nil
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
