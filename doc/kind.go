package doc

import "fmt"

// Kind discriminates the Value union. IntKind, FloatKind and StringKind
// double as the element kinds of array pools.
type Kind uint8

const (
	NoneKind Kind = iota
	StringKind
	IntKind
	FloatKind
	BoolKind
	ArrayKind
)

var kindNames = map[Kind]string{
	NoneKind:   "none",
	StringKind: "string",
	IntKind:    "int",
	FloatKind:  "float",
	BoolKind:   "bool",
	ArrayKind:  "array",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("<err: %d is not a kind>", uint8(k))
	}
	return s
}

func (k Kind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%d is not a kind", uint8(k))
	}
	return []byte(s), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, v := range kindNames {
		if v == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("bad kind %q", string(d))
}

// Kinds returns all kinds in declaration order.
func Kinds() []Kind {
	return []Kind{NoneKind, StringKind, IntKind, FloatKind, BoolKind, ArrayKind}
}

// IsScalar reports whether k is a single-payload kind.
func (k Kind) IsScalar() bool {
	switch k {
	case StringKind, IntKind, FloatKind, BoolKind:
		return true
	}
	return false
}
