package diff

import (
	"bytes"
	"strconv"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/marciovmf/stdx-go/doc"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	}
	return "?"
}

// Edit is one difference between two documents.
type Edit struct {
	Op   Op
	Path string
	From string
	To   string
}

func (e Edit) String() string {
	switch e.Op {
	case Insert:
		return "+ " + e.Path + ": " + e.To
	case Delete:
		return "- " + e.Path + ": " + e.From
	default:
		return "~ " + e.Path + ": " + e.From + " -> " + e.To
	}
}

// leaf is one flattened entry: a section path plus key, and the
// value's canonical text.
type leaf struct {
	path string
	text string
}

// Documents diffs the subtrees at from and to, returning only the
// changed paths in source order. A delete and insert on the same path
// fold into a replace.
func Documents(from, to doc.Cursor) []Edit {
	fromLeaves := flatten(from)
	toLeaves := flatten(to)

	intern := map[string]rune{}
	fromRunes := mapLeavesTo(intern, fromLeaves)
	toRunes := mapLeavesTo(intern, toLeaves)

	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	var edits []Edit
	fi, ti := 0, 0
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffDelete:
			for range d.Text {
				l := fromLeaves[fi]
				edits = append(edits, Edit{Op: Delete, Path: l.path, From: l.text})
				fi++
			}
		case diffpatch.DiffInsert:
			for range d.Text {
				l := toLeaves[ti]
				edits = append(edits, Edit{Op: Insert, Path: l.path, To: l.text})
				ti++
			}
		case diffpatch.DiffEqual:
			fi += len([]rune(d.Text))
			ti += len([]rune(d.Text))
		}
	}
	return foldReplaces(edits)
}

// foldReplaces rewrites delete+insert pairs on one path as a single
// replace. Pairs are matched within each contiguous edit run.
func foldReplaces(edits []Edit) []Edit {
	out := edits[:0]
	for i := 0; i < len(edits); i++ {
		e := edits[i]
		if e.Op != Delete {
			out = append(out, e)
			continue
		}
		folded := false
		for j := i + 1; j < len(edits); j++ {
			o := &edits[j]
			if o.Op == Insert && o.Path == e.Path {
				out = append(out, Edit{Op: Replace, Path: e.Path, From: e.From, To: o.To})
				copy(edits[j:], edits[j+1:])
				edits = edits[:len(edits)-1]
				folded = true
				break
			}
		}
		if !folded {
			out = append(out, e)
		}
	}
	return out
}

// flatten walks the subtree in source order producing one leaf per
// entry, and a bare leaf for sections that hold nothing, so empty
// sections still show up in diffs.
func flatten(c doc.Cursor) []leaf {
	var leaves []leaf
	c.Visit(func(s doc.Cursor) bool {
		base := s.Path()
		if s.Index() == 0 && len(s.Name()) == 0 {
			// the global section's entries sit at the top level
			base = ""
		}
		n := s.EntryCount()
		for i := 0; i < n; i++ {
			leaves = append(leaves, leaf{
				path: joinPath(base, string(s.KeyAt(i))),
				text: valueText(s.Document(), s.ValueAt(i)),
			})
		}
		if n == 0 && s.ChildCount() == 0 {
			leaves = append(leaves, leaf{path: base})
		}
		return true
	})
	return leaves
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func mapLeavesTo(intern map[string]rune, leaves []leaf) []rune {
	rs := make([]rune, len(leaves))
	for i, l := range leaves {
		k := l.path + "\x00" + l.text
		r, ok := intern[k]
		if !ok {
			r = rune(len(intern))
			intern[k] = r
		}
		rs[i] = r
	}
	return rs
}

// valueText renders a value for comparison, matching the encode
// package's scalar forms.
func valueText(d *doc.Document, v doc.Value) string {
	switch v.Kind() {
	case doc.StringKind:
		return string(v.Bytes())
	case doc.IntKind:
		n, _ := v.Int64()
		return strconv.FormatInt(n, 10)
	case doc.FloatKind:
		f, _ := v.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case doc.BoolKind:
		b, _ := v.Bool()
		return strconv.FormatBool(b)
	case doc.ArrayKind:
		var b bytes.Buffer
		switch v.Elem() {
		case doc.IntKind:
			for i, n := range d.ArrayInt64s(v) {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(strconv.FormatInt(n, 10))
			}
		case doc.FloatKind:
			for i, f := range d.ArrayFloat64s(v) {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
			}
		default:
			for i, s := range d.ArrayStrings(v) {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(strconv.Quote(string(s)))
			}
		}
		return b.String()
	}
	return ""
}
