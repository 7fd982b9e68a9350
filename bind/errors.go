package bind

import "fmt"

// UnmarshalError reports a structural problem while binding a document
// onto a Go value.
type UnmarshalError struct {
	FieldPath string // dotted path to the field, "server.limits.open"
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("bind error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("bind error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// TypeError reports a value whose kind cannot serve the field it was
// matched to.
type TypeError struct {
	FieldPath string
	Expected  string
	Actual    string
}

func (e *TypeError) Error() string {
	msg := fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	if e.FieldPath != "" {
		return fmt.Sprintf("type error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("type error: %s", msg)
}
