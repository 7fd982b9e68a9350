package doc

// Value is the tagged union an entry holds: none, string, int, float,
// bool, or an array reference into one of the document's pools. The
// zero Value has NoneKind.
type Value struct {
	kind Kind
	elem Kind // array element kind
	b    bool
	i64  int64
	f64  float64
	str  []byte // view into input or scratch
	// pool run for arrays
	start int32
	count int32
}

func None() Value {
	return Value{kind: NoneKind}
}

// FromBytes makes a string value over a borrowed byte view.
func FromBytes(view []byte) Value {
	return Value{kind: StringKind, str: view}
}

func FromInt64(v int64) Value {
	return Value{kind: IntKind, i64: v}
}

func FromFloat64(v float64) Value {
	return Value{kind: FloatKind, f64: v}
}

func FromBool(v bool) Value {
	return Value{kind: BoolKind, b: v}
}

// FromArray makes an array value referencing count elements of the elem
// pool starting at start.
func FromArray(elem Kind, start, count int32) Value {
	return Value{kind: ArrayKind, elem: elem, start: start, count: count}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Bytes returns the string payload. Valid only for StringKind; other
// kinds return nil.
func (v Value) Bytes() []byte {
	if v.kind != StringKind {
		return nil
	}
	return v.str
}

func (v Value) Int64() (int64, bool) {
	return v.i64, v.kind == IntKind
}

func (v Value) Float64() (float64, bool) {
	return v.f64, v.kind == FloatKind
}

func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == BoolKind
}

// Elem returns the element kind of an array value, NoneKind otherwise.
func (v Value) Elem() Kind {
	if v.kind != ArrayKind {
		return NoneKind
	}
	return v.elem
}

// Len returns the element count of an array value, 0 otherwise.
func (v Value) Len() int {
	if v.kind != ArrayKind {
		return 0
	}
	return int(v.count)
}
