package encode

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/marciovmf/stdx-go/doc"
)

// EncodeAny renders a decoded any-tree, the shape json.Unmarshal and
// yaml.Unmarshal produce, as indented-dialect text that reloads into
// an equivalent document. It is the bridge from foreign formats back
// into the section/entry model.
//
// Shape rules:
//   - the top level must be a map; keys are emitted sorted
//   - a nil value drops its key, the merge-patch deletion idiom
//   - a slice of scalars becomes a comma list, a slice of maps a
//     bullet list; mixed or nested slices have no rendering and fail
//   - floats without a fractional part are written as integers, since
//     JSON does not keep the distinction anyway
func EncodeAny(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	m, ok := asMap(v)
	if !ok {
		return fmt.Errorf("%w: top level must be a map, have %T", ErrEncoding, v)
	}
	var b bytes.Buffer
	if err := anyFields(&b, m, es); err != nil {
		return err
	}
	_, err := w.Write(b.Bytes())
	return err
}

// asMap accepts map[string]any directly and converts any other
// string-keyed map kind through reflection.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		m[it.Key().String()] = it.Value().Interface()
	}
	return m, true
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	s := make([]any, rv.Len())
	for i := range s {
		s[i] = rv.Index(i).Interface()
	}
	return s, true
}

func anyFields(b *bytes.Buffer, m map[string]any, es *EncState) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := m[k]
		if v == nil {
			continue
		}
		if err := anyField(b, k, v, es); err != nil {
			return err
		}
	}
	return nil
}

func anyField(b *bytes.Buffer, k string, v any, es *EncState) error {
	if err := CheckKey(k); err != nil {
		return err
	}
	pad := es.pad()
	if m, ok := asMap(v); ok {
		b.WriteString(pad + applyColor(es, doc.NoneKind, SectionColor, k) +
			applyColor(es, doc.NoneKind, SepColor, ":") + "\n")
		es.depth++
		err := anyFields(b, m, es)
		es.depth--
		return err
	}
	if s, ok := asSlice(v); ok {
		return anyList(b, k, s, es)
	}
	text, guard, err := anyScalar(es, v)
	if err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrEncoding, k, err)
	}
	b.WriteString(pad + applyColor(es, doc.NoneKind, FieldColor, k) +
		applyColor(es, doc.NoneKind, SepColor, ":") + " " + text + "\n")
	if guard {
		b.WriteString("\n")
	}
	return nil
}

func anyList(b *bytes.Buffer, k string, s []any, es *EncState) error {
	pad := es.pad()
	maps := 0
	for _, e := range s {
		if _, ok := asMap(e); ok {
			maps++
		}
	}
	if maps > 0 {
		if maps != len(s) {
			return fmt.Errorf("%w: key %q: list mixes maps and scalars", ErrEncoding, k)
		}
		b.WriteString(pad + applyColor(es, doc.NoneKind, SectionColor, k) +
			applyColor(es, doc.NoneKind, SepColor, ":") + "\n")
		es.depth++
		defer func() { es.depth-- }()
		inner := es.pad()
		for _, e := range s {
			m, _ := asMap(e)
			b.WriteString(inner + applyColor(es, doc.NoneKind, MarkerColor, "-") + "\n")
			es.depth++
			err := anyFields(b, m, es)
			es.depth--
			if err != nil {
				return err
			}
		}
		return nil
	}
	parts := make([]string, 0, len(s))
	for _, e := range s {
		if _, ok := asSlice(e); ok {
			return fmt.Errorf("%w: key %q: nested lists have no rendering", ErrEncoding, k)
		}
		t, err := anyElem(e)
		if err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrEncoding, k, err)
		}
		parts = append(parts, t)
	}
	text := strings.Join(parts, ", ")
	guard := false
	if len(parts) <= 1 {
		// trailing comma marks short lists as arrays on reload
		text += ","
		guard = true
	}
	b.WriteString(pad + applyColor(es, doc.NoneKind, FieldColor, k) +
		applyColor(es, doc.NoneKind, SepColor, ":") + " " +
		applyColor(es, doc.NoneKind, ValueColor, text) + "\n")
	if guard {
		b.WriteString("\n")
	}
	return nil
}

// anyScalar renders a lone value. Multi-line strings take the
// triple-quoted block form.
func anyScalar(es *EncState, v any) (string, bool, error) {
	if s, ok := v.(string); ok && strings.IndexByte(s, '\n') >= 0 {
		return `"""` + "\n" + s + "\n" + `"""`, false, nil
	}
	if s, ok := v.(string); ok {
		if needsQuote(s) {
			if strings.IndexByte(s, '"') >= 0 {
				return "", false, fmt.Errorf("string %q mixes quotes into a quoted token", s)
			}
			s = `"` + s + `"`
		}
		return applyColor(es, doc.NoneKind, ValueColor, s), false, nil
	}
	t, err := numText(v)
	if err != nil {
		return "", false, err
	}
	return applyColor(es, doc.NoneKind, ValueColor, t), false, nil
}

// anyElem renders a comma-list element. Strings are always quoted so
// numeric-looking members survive the reload homogenisation.
func anyElem(v any) (string, error) {
	if s, ok := v.(string); ok {
		if strings.ContainsAny(s, "\"\n") {
			return "", fmt.Errorf("string %q cannot sit in a comma list", s)
		}
		return `"` + s + `"`, nil
	}
	return numText(v)
}

func numText(v any) (string, error) {
	switch n := v.(type) {
	case bool:
		return strconv.FormatBool(n), nil
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		if n > math.MaxInt64 {
			return "", fmt.Errorf("%d overflows the integer pool", n)
		}
		return strconv.FormatInt(int64(n), 10), nil
	case float32:
		return floatText(float64(n)), nil
	case float64:
		return floatText(n), nil
	}
	return "", fmt.Errorf("no rendering for %T", v)
}

// floatText writes fraction-free floats as integers. JSON erases the
// int/float distinction, so 8080 must come back an int, not 8080.0.
func floatText(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return formatFloat(f)
}

// CheckKey rejects key text the line scanner would misread: separator
// bytes, quote or comment openers, bullet prefixes, edge whitespace.
func CheckKey(k string) error {
	if len(k) == 0 {
		return fmt.Errorf("%w: empty key", ErrEncoding)
	}
	if k[0] == ' ' || k[0] == '\t' || k[len(k)-1] == ' ' || k[len(k)-1] == '\t' {
		return fmt.Errorf("%w: key %q has edge whitespace", ErrEncoding, k)
	}
	if k[0] == '#' || k[0] == '"' || k == "-" || strings.HasPrefix(k, "- ") {
		return fmt.Errorf("%w: key %q opens a non-entry line", ErrEncoding, k)
	}
	if strings.ContainsAny(k, ":=\"\n\r\t") {
		return fmt.Errorf("%w: key %q holds scanner bytes", ErrEncoding, k)
	}
	return nil
}
