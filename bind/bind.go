// Package bind maps document sections onto Go structs through
// reflection. Fields match entries and child sections by `stdx` tag,
// or case-insensitively by field name; keys absent from the document
// leave their fields untouched, so pre-set defaults survive. Values
// from bracketed-dialect documents go through that dialect's read-time
// string conversions.
package bind

import (
	"fmt"
	"reflect"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
	"github.com/marciovmf/stdx-go/token"
)

// TagName is the struct tag key consulted for field names. A tag of
// "-" skips the field.
const TagName = "stdx"

// To binds the section at c onto the struct v points to. c may be a
// root cursor, in which case top-level entries and sections bind.
func To(c doc.Cursor, v any) error {
	if !c.Valid() {
		return &UnmarshalError{Message: "invalid cursor"}
	}
	if v == nil {
		return &UnmarshalError{Message: "destination value cannot be nil"}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return &UnmarshalError{Message: "destination value must be a pointer"}
	}
	if rv.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	ev := rv.Elem()
	if ev.Kind() != reflect.Struct {
		return &UnmarshalError{
			Message: fmt.Sprintf("destination must point to a struct, have %s", ev.Kind()),
		}
	}
	return section(c, ev, "")
}

func section(c doc.Cursor, sv reflect.Value, path string) error {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			// embedded structs flatten onto the same section
			if err := section(c, sv.Field(i), path); err != nil {
				return err
			}
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup(TagName); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		if err := field(c, name, sv.Field(i), joinPath(path, name)); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func field(c doc.Cursor, name string, fv reflect.Value, path string) error {
	switch fv.Kind() {
	case reflect.Struct:
		ch := findChild(c, name)
		if !ch.Valid() {
			return nil
		}
		return section(ch, fv, path)
	case reflect.Pointer:
		if fv.Type().Elem().Kind() == reflect.Struct {
			ch := findChild(c, name)
			if !ch.Valid() {
				return nil
			}
			if fv.IsNil() {
				fv.Set(reflect.New(fv.Type().Elem()))
			}
			return section(ch, fv.Elem(), path)
		}
		v, ok := findEntry(c, name)
		if !ok {
			return nil
		}
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return scalar(c, v, fv.Elem(), path)
	case reflect.Map:
		ch := findChild(c, name)
		if !ch.Valid() {
			return nil
		}
		return mapField(ch, fv, path)
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Struct {
			ch := findChild(c, name)
			if !ch.Valid() {
				return nil
			}
			return structList(ch, fv, path)
		}
		v, ok := findEntry(c, name)
		if !ok {
			return nil
		}
		return sliceField(c, v, fv, path)
	default:
		v, ok := findEntry(c, name)
		if !ok {
			return nil
		}
		return scalar(c, v, fv, path)
	}
}

// entrySection resolves where a cursor's entries live: a root's
// entries sit in its headless first child, the global section.
func entrySection(c doc.Cursor) doc.Cursor {
	if c.IsRoot() {
		return c.ChildAt(0)
	}
	return c
}

// findEntry looks the key up byte-exact first, then falls back to a
// case-insensitive scan where the last occurrence wins, matching the
// exact lookup's duplicate rule.
func findEntry(c doc.Cursor, name string) (doc.Value, bool) {
	ec := entrySection(c)
	if !ec.Valid() {
		return doc.None(), false
	}
	if v, ok := ec.Find([]byte(name)); ok {
		return v, true
	}
	out := doc.None()
	found := false
	n := ec.EntryCount()
	for i := 0; i < n; i++ {
		if token.EqualFoldString(ec.KeyAt(i), name) {
			out = ec.ValueAt(i)
			found = true
		}
	}
	return out, found
}

// findChild resolves a child section byte-exact first, then by the
// first case-insensitive name match.
func findChild(c doc.Cursor, name string) doc.Cursor {
	if ch := c.FindChild([]byte(name)); ch.Valid() {
		return ch
	}
	n := c.ChildCount()
	for i := 0; i < n; i++ {
		ch := c.ChildAt(i)
		if nm := ch.Name(); len(nm) != 0 && token.EqualFoldString(nm, name) {
			return ch
		}
	}
	return doc.Cursor{}
}

func scalar(c doc.Cursor, v doc.Value, fv reflect.Value, path string) error {
	bracketed := c.Document().Dialect() == doc.INI
	switch fv.Kind() {
	case reflect.String:
		if v.Kind() == doc.StringKind {
			fv.SetString(string(v.Bytes()))
			return nil
		}
		return typeErr(path, "string", v)
	case reflect.Bool:
		if b, ok := v.Bool(); ok {
			fv.SetBool(b)
			return nil
		}
		if bracketed && v.Kind() == doc.StringKind {
			if b, ok := token.ParseBool(token.Trim(v.Bytes())); ok {
				fv.SetBool(b)
				return nil
			}
		}
		return typeErr(path, "bool", v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.Int64()
		if !ok && bracketed && v.Kind() == doc.StringKind {
			n, ok = token.ParseIntBase(token.Trim(v.Bytes()))
		}
		if !ok {
			return typeErr(path, "integer", v)
		}
		if fv.OverflowInt(n) {
			return overflowErr(path, n, fv.Type())
		}
		fv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.Int64()
		if !ok && bracketed && v.Kind() == doc.StringKind {
			n, ok = token.ParseIntBase(token.Trim(v.Bytes()))
		}
		if !ok {
			return typeErr(path, "integer", v)
		}
		if n < 0 || fv.OverflowUint(uint64(n)) {
			return overflowErr(path, n, fv.Type())
		}
		fv.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := v.Float64()
		if !ok {
			if n, iok := v.Int64(); iok {
				f, ok = float64(n), true
			}
		}
		if !ok && bracketed && v.Kind() == doc.StringKind {
			f, ok = token.ParseFloat(token.Trim(v.Bytes()))
		}
		if !ok {
			return typeErr(path, "float", v)
		}
		if fv.OverflowFloat(f) {
			return &UnmarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("value %v overflows %s", f, fv.Type()),
			}
		}
		fv.SetFloat(f)
		return nil
	}
	return &UnmarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("unsupported field type: %s", fv.Type()),
	}
}

func sliceField(c doc.Cursor, v doc.Value, fv reflect.Value, path string) error {
	if v.Kind() != doc.ArrayKind {
		return typeErr(path, "array", v)
	}
	d := c.Document()
	et := fv.Type().Elem()
	n := v.Len()
	out := reflect.MakeSlice(fv.Type(), n, n)
	switch v.Elem() {
	case doc.IntKind:
		for i, x := range d.ArrayInt64s(v) {
			ev := out.Index(i)
			switch et.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				if ev.OverflowInt(x) {
					return overflowErr(elemPath(path, i), x, et)
				}
				ev.SetInt(x)
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				if x < 0 || ev.OverflowUint(uint64(x)) {
					return overflowErr(elemPath(path, i), x, et)
				}
				ev.SetUint(uint64(x))
			case reflect.Float32, reflect.Float64:
				ev.SetFloat(float64(x))
			default:
				return &TypeError{FieldPath: path, Expected: et.String(), Actual: "int array"}
			}
		}
	case doc.FloatKind:
		for i, x := range d.ArrayFloat64s(v) {
			ev := out.Index(i)
			switch et.Kind() {
			case reflect.Float32, reflect.Float64:
				if ev.OverflowFloat(x) {
					return &UnmarshalError{
						FieldPath: elemPath(path, i),
						Message:   fmt.Sprintf("value %v overflows %s", x, et),
					}
				}
				ev.SetFloat(x)
			default:
				return &TypeError{FieldPath: path, Expected: et.String(), Actual: "float array"}
			}
		}
	case doc.StringKind:
		for i, x := range d.ArrayStrings(v) {
			if et.Kind() != reflect.String {
				return &TypeError{FieldPath: path, Expected: et.String(), Actual: "string array"}
			}
			out.Index(i).SetString(string(x))
		}
	}
	fv.Set(out)
	return nil
}

// structList binds a section's anonymous children, its list entries,
// onto a slice of structs.
func structList(c doc.Cursor, fv reflect.Value, path string) error {
	et := fv.Type().Elem()
	n := c.ChildCount()
	start := 0
	if c.IsRoot() {
		start = 1
	}
	out := reflect.MakeSlice(fv.Type(), 0, n)
	idx := 0
	for i := start; i < n; i++ {
		ch := c.ChildAt(i)
		if len(ch.Name()) != 0 {
			continue
		}
		ev := reflect.New(et).Elem()
		if err := section(ch, ev, elemPath(path, idx)); err != nil {
			return err
		}
		out = reflect.Append(out, ev)
		idx++
	}
	fv.Set(out)
	return nil
}

func mapField(c doc.Cursor, fv reflect.Value, path string) error {
	mt := fv.Type()
	if mt.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("unsupported map type: %s", mt),
		}
	}
	switch {
	case mt.Elem().Kind() == reflect.String:
		n := c.EntryCount()
		m := reflect.MakeMapWithSize(mt, n)
		for i := 0; i < n; i++ {
			v := c.ValueAt(i)
			if v.Kind() != doc.StringKind {
				return typeErr(joinPath(path, string(c.KeyAt(i))), "string", v)
			}
			m.SetMapIndex(reflect.ValueOf(string(c.KeyAt(i))), reflect.ValueOf(string(v.Bytes())))
		}
		fv.Set(m)
		return nil
	case mt.Elem().Kind() == reflect.Interface && mt.Elem().NumMethod() == 0:
		m, ok := encode.ToAny(c).(map[string]any)
		if !ok {
			return &TypeError{FieldPath: path, Expected: "section", Actual: "list"}
		}
		fv.Set(reflect.ValueOf(m))
		return nil
	}
	return &UnmarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("unsupported map type: %s", mt),
	}
}

func typeErr(path, want string, v doc.Value) error {
	return &TypeError{FieldPath: path, Expected: want, Actual: v.Kind().String()}
}

func overflowErr(path string, n int64, t reflect.Type) error {
	return &UnmarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("value %d overflows %s", n, t),
	}
}

func elemPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
