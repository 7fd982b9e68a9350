package doc

import (
	"github.com/marciovmf/stdx-go/token"
)

// Bool returns the entry's boolean, or def when the key is missing or
// the value cannot serve as one. INI converts the stored string against
// the case-insensitive literal set {true,false,yes,no,on,off,1,0}; TML
// only honors a load-typed bool.
func (c Cursor) Bool(key string, def bool) bool {
	v, ok := c.Find([]byte(key))
	if !ok {
		return def
	}
	if c.d.dialect == INI {
		if v.kind != StringKind {
			return def
		}
		b, ok := token.ParseBool(token.Trim(v.str))
		if !ok {
			return def
		}
		return b
	}
	b, ok := v.Bool()
	if !ok {
		return def
	}
	return b
}

// Int64 returns the entry's integer, or def. INI converts the stored
// string with C-style base detection (0x hex, leading 0 octal, else
// decimal); TML only honors a load-typed int.
func (c Cursor) Int64(key string, def int64) int64 {
	v, ok := c.Find([]byte(key))
	if !ok {
		return def
	}
	if c.d.dialect == INI {
		if v.kind != StringKind {
			return def
		}
		n, ok := token.ParseIntBase(token.Trim(v.str))
		if !ok {
			return def
		}
		return n
	}
	n, ok := v.Int64()
	if !ok {
		return def
	}
	return n
}

// Float64 returns the entry's float, or def. INI converts the stored
// string as locale-independent dotted decimal; TML only honors a
// load-typed float.
func (c Cursor) Float64(key string, def float64) float64 {
	v, ok := c.Find([]byte(key))
	if !ok {
		return def
	}
	if c.d.dialect == INI {
		if v.kind != StringKind {
			return def
		}
		f, ok := token.ParseFloat(token.Trim(v.str))
		if !ok {
			return def
		}
		return f
	}
	f, ok := v.Float64()
	if !ok {
		return def
	}
	return f
}

// Bytes returns the entry's string payload as a borrowed view, or def
// when the key is missing or the value is not a string.
func (c Cursor) Bytes(key string, def []byte) []byte {
	v, ok := c.Find([]byte(key))
	if !ok || v.kind != StringKind {
		return def
	}
	return v.str
}

// String is Bytes with an owned-string convenience signature.
func (c Cursor) String(key string, def string) string {
	v, ok := c.Find([]byte(key))
	if !ok || v.kind != StringKind {
		return def
	}
	return string(v.str)
}

// ArrayLen returns the element count of the entry's array, 0 when the
// key is missing or the value is not an array.
func (c Cursor) ArrayLen(key string) int {
	v, _ := c.Find([]byte(key))
	return v.Len()
}

// ElemKind returns the resolved pool kind of the entry's array:
// IntKind, FloatKind or StringKind, or NoneKind when not an array.
func (c Cursor) ElemKind(key string) Kind {
	v, _ := c.Find([]byte(key))
	return v.Elem()
}

// Int64s returns the array's pool sub-slice, or nil when the entry is
// not an int array. The slice is pool-owned: valid until Close.
func (c Cursor) Int64s(key string) []int64 {
	if !c.Valid() {
		return nil
	}
	v, ok := c.Find([]byte(key))
	if !ok {
		return nil
	}
	return c.d.ArrayInt64s(v)
}

// Float64s returns the array's pool sub-slice, or nil when the entry is
// not a float array.
func (c Cursor) Float64s(key string) []float64 {
	if !c.Valid() {
		return nil
	}
	v, ok := c.Find([]byte(key))
	if !ok {
		return nil
	}
	return c.d.ArrayFloat64s(v)
}

// Strings returns the array's pool sub-slice of borrowed views, or nil
// when the entry is not a string array.
func (c Cursor) Strings(key string) [][]byte {
	if !c.Valid() {
		return nil
	}
	v, ok := c.Find([]byte(key))
	if !ok {
		return nil
	}
	return c.d.ArrayStrings(v)
}
