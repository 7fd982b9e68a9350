package token

import (
	"errors"
	"fmt"
)

// Code is the closed set of load failure codes.
type Code int

const (
	OK Code = iota
	IO
	Memory
	Syntax
	ExpectEquals
	ExpectRBracket
	UntermString
	IndentTab
	IndentNotMultiple
	DuplicateSibling
	BadKey
)

var codeNames = map[Code]string{
	OK:                "ok",
	IO:                "io",
	Memory:            "memory",
	Syntax:            "syntax",
	ExpectEquals:      "expect_equals",
	ExpectRBracket:    "expect_rbracket",
	UntermString:      "unterminated_string",
	IndentTab:         "indent_tab",
	IndentNotMultiple: "indent_not_multiple",
	DuplicateSibling:  "duplicate_sibling",
	BadKey:            "bad_key",
}

func (c Code) String() string {
	s, ok := codeNames[c]
	if !ok {
		return fmt.Sprintf("<err: %d is not a code>", int(c))
	}
	return s
}

func (c Code) MarshalText() ([]byte, error) {
	s, ok := codeNames[c]
	if !ok {
		return nil, fmt.Errorf("%d is not a code", int(c))
	}
	return []byte(s), nil
}

func (c *Code) UnmarshalText(d []byte) error {
	for k, v := range codeNames {
		if v == string(d) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("bad code %q", string(d))
}

var (
	ErrIO               = errors.New("unreadable input")
	ErrMemory           = errors.New("arena exhausted")
	ErrSyntax           = errors.New("unrecognized line")
	ErrExpectEquals     = errors.New("expected '='")
	ErrExpectRBracket   = errors.New("expected ']'")
	ErrUnterminated     = errors.New("unterminated string")
	ErrIndentTab        = errors.New("tab in indentation")
	ErrIndentUnit       = errors.New("indent is not a multiple of the unit")
	ErrDuplicateSibling = errors.New("duplicate sibling name")
	ErrBadKey           = errors.New("bad key")
)

var codeErrs = map[Code]error{
	IO:                ErrIO,
	Memory:            ErrMemory,
	Syntax:            ErrSyntax,
	ExpectEquals:      ErrExpectEquals,
	ExpectRBracket:    ErrExpectRBracket,
	UntermString:      ErrUnterminated,
	IndentTab:         ErrIndentTab,
	IndentNotMultiple: ErrIndentUnit,
	DuplicateSibling:  ErrDuplicateSibling,
	BadKey:            ErrBadKey,
}

// Sentinel returns the package-level error value for c, usable with
// errors.Is. OK has no sentinel and returns nil.
func (c Code) Sentinel() error {
	return codeErrs[c]
}

// ErrorRecord is the single report a failed load produces: a closed code,
// 1-based line and column, and a static message. It wraps the code's
// sentinel so errors.Is(err, token.ErrSyntax) and friends work.
type ErrorRecord struct {
	Code Code   `json:"code"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
	Msg  string `json:"msg"`
}

func (e *ErrorRecord) Error() string {
	return fmt.Sprintf("%s at line %d, col %d: %s", e.Code, e.Line, e.Col, e.Msg)
}

func (e *ErrorRecord) Unwrap() error {
	return e.Code.Sentinel()
}

// Record builds an ErrorRecord for code at offset off, resolving the
// position against pd. The message is the code's static sentinel text.
func Record(code Code, pd *PosDoc, off int) *ErrorRecord {
	line, col := 1, 1
	if pd != nil {
		line, col = pd.LineCol(off)
	}
	msg := ""
	if s := code.Sentinel(); s != nil {
		msg = s.Error()
	}
	return &ErrorRecord{Code: code, Line: line, Col: col, Msg: msg}
}

// RecordAt builds an ErrorRecord with an explicit 1-based line/column,
// for callers that track positions themselves.
func RecordAt(code Code, line, col int) *ErrorRecord {
	msg := ""
	if s := code.Sentinel(); s != nil {
		msg = s.Error()
	}
	return &ErrorRecord{Code: code, Line: line, Col: col, Msg: msg}
}
