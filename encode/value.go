package encode

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/token"
)

// needsQuote reports whether a bare TML string would reload as
// something other than itself: empty, bool-shaped, number-shaped, or
// holding bytes the scanner treats as structure.
func needsQuote(s string) bool {
	if len(s) == 0 {
		return true
	}
	if s == "true" || s == "false" {
		return true
	}
	if s[0] == ' ' || s[0] == '\t' || s[len(s)-1] == ' ' || s[len(s)-1] == '\t' {
		return true
	}
	if s[0] == '"' || s[0] == '-' || s[0] == '#' {
		return true
	}
	if strings.ContainsAny(s, ",:=") {
		return true
	}
	if _, ok := token.ParseInt([]byte(s)); ok {
		return true
	}
	if _, ok := token.ParseFloat([]byte(s)); ok {
		return true
	}
	return false
}

// formatFloat keeps floats float-shaped on reload: a fractionless
// value gets a ".0".
func formatFloat(f float64) string {
	v := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(v, ".eE") {
		v += ".0"
	}
	return v
}

// ValueText renders v as TML source text: the value side of a
// "key: value" line. Strings holding newlines come back in
// triple-quoted block form, so the text may span lines.
//
// Values from a bracketed-dialect document are promoted: a stored
// string that the dialect's read-time conversions accept as an
// integer, float, or boolean is written bare, so it reloads typed.
//
// The second result reports that the text ends in a comma (empty and
// single-element arrays); the emitted line must then be followed by a
// blank line so the comma is not taken as an array continuation.
func ValueText(d *doc.Document, v doc.Value) (string, bool) {
	return tmlValue(&EncState{}, d, v)
}

func tmlValue(es *EncState, d *doc.Document, v doc.Value) (string, bool) {
	if v.Kind() == doc.ArrayKind {
		return arrayText(es, d, v)
	}
	if v.Kind() == doc.StringKind {
		b := v.Bytes()
		if bytes.IndexByte(b, '\n') >= 0 {
			// The loader trims one newline on each side of a
			// triple-quoted body, so both are written back.
			return `"""` + "\n" + string(b) + "\n" + `"""`, false
		}
		if d != nil && d.Dialect() == doc.INI {
			if t, ok := promoteINI(es, string(b)); ok {
				return t, false
			}
		}
	}
	return tmlScalar(es, v), false
}

// promoteINI maps a bracketed-dialect string onto a typed TML token
// using the same conversions the dialect's getters apply at read time.
// Numbers win over booleans, matching Int64 being the narrower check.
func promoteINI(es *EncState, s string) (string, bool) {
	t := strings.TrimSpace(s)
	if n, ok := token.ParseIntBase([]byte(t)); ok {
		return applyColor(es, doc.IntKind, ValueColor, strconv.FormatInt(n, 10)), true
	}
	if f, ok := token.ParseFloat([]byte(t)); ok {
		return applyColor(es, doc.FloatKind, ValueColor, formatFloat(f)), true
	}
	if b, ok := token.ParseBool([]byte(t)); ok {
		return applyColor(es, doc.BoolKind, ValueColor, strconv.FormatBool(b)), true
	}
	return "", false
}

func tmlScalar(es *EncState, v doc.Value) string {
	switch v.Kind() {
	case doc.StringKind:
		s := string(v.Bytes())
		if needsQuote(s) {
			s = `"` + s + `"`
		}
		return applyColor(es, doc.StringKind, ValueColor, s)
	case doc.IntKind:
		n, _ := v.Int64()
		return applyColor(es, doc.IntKind, ValueColor, strconv.FormatInt(n, 10))
	case doc.FloatKind:
		f, _ := v.Float64()
		return applyColor(es, doc.FloatKind, ValueColor, formatFloat(f))
	case doc.BoolKind:
		b, _ := v.Bool()
		return applyColor(es, doc.BoolKind, ValueColor, strconv.FormatBool(b))
	}
	return ""
}

// arrayText renders a pool-backed array as a comma list. String
// elements are always quoted so numeric-looking members survive the
// reload homogenisation. Empty and single-element arrays keep their
// trailing comma, which is what marks them as arrays on reload.
func arrayText(es *EncState, d *doc.Document, v doc.Value) (string, bool) {
	var parts []string
	switch v.Elem() {
	case doc.IntKind:
		for _, n := range d.ArrayInt64s(v) {
			parts = append(parts, strconv.FormatInt(n, 10))
		}
	case doc.FloatKind:
		for _, f := range d.ArrayFloat64s(v) {
			parts = append(parts, formatFloat(f))
		}
	default:
		for _, s := range d.ArrayStrings(v) {
			parts = append(parts, `"`+string(s)+`"`)
		}
	}
	switch len(parts) {
	case 0:
		return applyColor(es, doc.ArrayKind, ValueColor, ","), true
	case 1:
		return applyColor(es, doc.ArrayKind, ValueColor, parts[0]+","), true
	}
	return applyColor(es, doc.ArrayKind, ValueColor, strings.Join(parts, ", ")), false
}
