package merge

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
)

// MarshalJSON renders the subtree at c as compact JSON, the exchange
// form the patch operations work over.
func MarshalJSON(c doc.Cursor) ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: invalid cursor", ErrMerge)
	}
	d, err := json.Marshal(encode.ToAny(c))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return d, nil
}

// FromJSON decodes JSON and loads it as an indented-dialect document.
// The int/float and ordering caveats of EncodeAny apply.
func FromJSON(data []byte) (*doc.Document, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return FromAny(v)
}

// FromAny renders a decoded any-tree and loads it as a document.
func FromAny(v any) (*doc.Document, error) {
	var b bytes.Buffer
	if err := encode.EncodeAny(v, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return load(b.Bytes())
}

// ApplyPatch applies an RFC 6902 JSON patch to the subtree at c and
// loads the outcome as a new document.
func ApplyPatch(c doc.Cursor, patch []byte) (*doc.Document, error) {
	d, err := MarshalJSON(c)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: decode patch: %v", ErrMerge, err)
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("%w: apply patch: %v", ErrMerge, err)
	}
	return FromJSON(out)
}

// ApplyMergePatch applies an RFC 7386 merge patch to the subtree at c.
// Nulls in the patch delete their keys.
func ApplyMergePatch(c doc.Cursor, patch []byte) (*doc.Document, error) {
	d, err := MarshalJSON(c)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: merge patch: %v", ErrMerge, err)
	}
	return FromJSON(out)
}

// CreateMergePatch derives the RFC 7386 merge patch that turns the
// subtree at from into the one at to.
func CreateMergePatch(from, to doc.Cursor) ([]byte, error) {
	a, err := MarshalJSON(from)
	if err != nil {
		return nil, err
	}
	b, err := MarshalJSON(to)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("%w: create merge patch: %v", ErrMerge, err)
	}
	return p, nil
}
