package encode

import (
	"io"
	"strconv"
	"strings"

	"github.com/marciovmf/stdx-go/doc"
)

func encodeINI(c doc.Cursor, w io.Writer, es *EncState) error {
	if c.IsRoot() {
		n := c.ChildCount()
		for i := 0; i < n; i++ {
			ch := c.ChildAt(i)
			if i == 0 && len(ch.Name()) == 0 {
				if err := iniEntries(ch, w, es); err != nil {
					return err
				}
				continue
			}
			if err := iniWalk(ch, sectionLabel(ch, i), w, es); err != nil {
				return err
			}
		}
		return nil
	}
	if err := iniEntries(c, w, es); err != nil {
		return err
	}
	n := c.ChildCount()
	for i := 0; i < n; i++ {
		ch := c.ChildAt(i)
		if err := iniWalk(ch, sectionLabel(ch, i), w, es); err != nil {
			return err
		}
	}
	return nil
}

func sectionLabel(c doc.Cursor, idx int) string {
	if name := c.Name(); len(name) != 0 {
		return string(name)
	}
	return strconv.Itoa(idx)
}

// iniWalk flattens nesting into dotted section names, matching the
// whole-name lookup INI documents use.
func iniWalk(c doc.Cursor, path string, w io.Writer, es *EncState) error {
	if c.EntryCount() > 0 || c.ChildCount() == 0 {
		header := applyColor(es, doc.NoneKind, SectionColor, "["+path+"]")
		if err := writeString(w, header+"\n"); err != nil {
			return err
		}
		if err := iniEntries(c, w, es); err != nil {
			return err
		}
	}
	n := c.ChildCount()
	for i := 0; i < n; i++ {
		ch := c.ChildAt(i)
		if err := iniWalk(ch, path+"."+sectionLabel(ch, i), w, es); err != nil {
			return err
		}
	}
	return nil
}

func iniEntries(c doc.Cursor, w io.Writer, es *EncState) error {
	d := c.Document()
	n := c.EntryCount()
	for i := 0; i < n; i++ {
		v := c.ValueAt(i)
		var text string
		switch v.Kind() {
		case doc.ArrayKind:
			// no continuation lines here, the comma list is the value
			text, _ = arrayText(es, d, v)
		case doc.StringKind:
			text = iniString(es, string(v.Bytes()))
		default:
			text = tmlScalar(es, v)
		}
		line := applyColor(es, v.Kind(), FieldColor, string(c.KeyAt(i))) +
			applyColor(es, v.Kind(), SepColor, " = ") + text + "\n"
		if err := writeString(w, line); err != nil {
			return err
		}
	}
	return nil
}

// iniString quotes and escapes values the scanner would otherwise cut
// at a comment marker or misread. Numeric-looking text stays bare:
// INI values are untyped until a getter converts them.
func iniString(es *EncState, s string) string {
	if !iniNeedsQuote(s) {
		return applyColor(es, doc.StringKind, ValueColor, s)
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('"')
	return applyColor(es, doc.StringKind, ValueColor, b.String())
}

func iniNeedsQuote(s string) bool {
	if len(s) == 0 {
		return true
	}
	if s[0] == ' ' || s[0] == '\t' || s[len(s)-1] == ' ' || s[len(s)-1] == '\t' {
		return true
	}
	return strings.ContainsAny(s, ";#\"\\\n\t\r")
}
