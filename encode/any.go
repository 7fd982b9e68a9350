package encode

import (
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/token"
)

// ToAny converts the subtree at c into maps, slices and scalars for
// the JSON and YAML marshallers. A section holding only anonymous
// children and no entries becomes a slice, which is how TML bullet
// lists come out; everything else becomes a map with entries first
// and anonymous children keyed by sibling index. Bracketed-dialect
// strings are promoted through the dialect's read-time conversions,
// so number- and bool-shaped values cross over typed.
func ToAny(c doc.Cursor) any {
	if !c.Valid() {
		return nil
	}
	if c.IsRoot() {
		m := map[string]any{}
		n := c.ChildCount()
		for i := 0; i < n; i++ {
			ch := c.ChildAt(i)
			if i == 0 && len(ch.Name()) == 0 {
				addEntries(m, ch)
				continue
			}
			m[sectionLabel(ch, i)] = ToAny(ch)
		}
		return m
	}

	en := c.EntryCount()
	n := c.ChildCount()
	anonOnly := en == 0 && n > 0
	for i := 0; i < n && anonOnly; i++ {
		if len(c.ChildAt(i).Name()) != 0 {
			anonOnly = false
		}
	}
	if anonOnly {
		arr := make([]any, 0, n)
		for i := 0; i < n; i++ {
			arr = append(arr, ToAny(c.ChildAt(i)))
		}
		return arr
	}

	m := make(map[string]any, en+n)
	addEntries(m, c)
	for i := 0; i < n; i++ {
		ch := c.ChildAt(i)
		m[sectionLabel(ch, i)] = ToAny(ch)
	}
	return m
}

func addEntries(m map[string]any, c doc.Cursor) {
	d := c.Document()
	n := c.EntryCount()
	for i := 0; i < n; i++ {
		m[string(c.KeyAt(i))] = ValueAny(d, c.ValueAt(i))
	}
}

// ValueAny converts one value into its plain Go form, applying the
// same bracketed-dialect promotion as ToAny.
func ValueAny(d *doc.Document, v doc.Value) any {
	switch v.Kind() {
	case doc.StringKind:
		if d != nil && d.Dialect() == doc.INI {
			t := token.Trim(v.Bytes())
			if n, ok := token.ParseIntBase(t); ok {
				return n
			}
			if f, ok := token.ParseFloat(t); ok {
				return f
			}
			if b, ok := token.ParseBool(t); ok {
				return b
			}
		}
		return string(v.Bytes())
	case doc.IntKind:
		n, _ := v.Int64()
		return n
	case doc.FloatKind:
		f, _ := v.Float64()
		return f
	case doc.BoolKind:
		b, _ := v.Bool()
		return b
	case doc.ArrayKind:
		switch v.Elem() {
		case doc.IntKind:
			return d.ArrayInt64s(v)
		case doc.FloatKind:
			return d.ArrayFloat64s(v)
		default:
			raw := d.ArrayStrings(v)
			ss := make([]string, len(raw))
			for i, b := range raw {
				ss[i] = string(b)
			}
			return ss
		}
	}
	return nil
}
