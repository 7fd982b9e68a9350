package encode

import (
	"io"

	"github.com/marciovmf/stdx-go/doc"
)

func encodeTML(c doc.Cursor, w io.Writer, es *EncState) error {
	if c.IsRoot() {
		n := c.ChildCount()
		for i := 0; i < n; i++ {
			ch := c.ChildAt(i)
			if i == 0 && len(ch.Name()) == 0 {
				// the global section's entries carry no header
				if err := tmlEntries(ch, w, es); err != nil {
					return err
				}
				continue
			}
			if err := tmlSection(ch, w, es); err != nil {
				return err
			}
		}
		return nil
	}
	if err := tmlEntries(c, w, es); err != nil {
		return err
	}
	return tmlChildren(c, w, es)
}

func tmlChildren(c doc.Cursor, w io.Writer, es *EncState) error {
	n := c.ChildCount()
	for i := 0; i < n; i++ {
		if err := tmlSection(c.ChildAt(i), w, es); err != nil {
			return err
		}
	}
	return nil
}

func tmlSection(c doc.Cursor, w io.Writer, es *EncState) error {
	pad := es.pad()
	var line string
	if name := c.Name(); len(name) == 0 {
		line = pad + applyColor(es, doc.NoneKind, MarkerColor, "-") + "\n"
	} else {
		line = pad + applyColor(es, doc.NoneKind, SectionColor, string(name)) +
			applyColor(es, doc.NoneKind, SepColor, ":") + "\n"
	}
	if err := writeString(w, line); err != nil {
		return err
	}
	es.depth++
	defer func() { es.depth-- }()
	if err := tmlEntries(c, w, es); err != nil {
		return err
	}
	return tmlChildren(c, w, es)
}

func tmlEntries(c doc.Cursor, w io.Writer, es *EncState) error {
	d := c.Document()
	pad := es.pad()
	n := c.EntryCount()
	for i := 0; i < n; i++ {
		v := c.ValueAt(i)
		prefix := pad + applyColor(es, v.Kind(), FieldColor, string(c.KeyAt(i))) +
			applyColor(es, v.Kind(), SepColor, ":") + " "
		text, guard := tmlValue(es, d, v)
		line := prefix + text + "\n"
		if guard {
			// keeps the trailing comma from swallowing the next line
			line += "\n"
		}
		if err := writeString(w, line); err != nil {
			return err
		}
	}
	return nil
}
