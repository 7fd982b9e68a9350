package encode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/format"
)

// ErrEncoding wraps failures to render a document.
var ErrEncoding = errors.New("encode")

// Encode renders the subtree at c to w. Without an explicit
// EncodeFormat the document's own dialect is used.
func Encode(c doc.Cursor, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: invalid cursor", ErrEncoding)
	}
	if !es.formatSet {
		es.format = format.TMLFormat
		if c.Document().Dialect() == doc.INI {
			es.format = format.INIFormat
		}
	}
	switch es.format {
	case format.TMLFormat:
		return encodeTML(c, w, es)
	case format.INIFormat:
		return encodeINI(c, w, es)
	case format.JSONFormat:
		data, err := json.MarshalIndent(ToAny(c), "", strings.Repeat(" ", es.indent))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return writeString(w, string(data)+"\n")
	case format.YAMLFormat:
		data, err := yaml.Marshal(ToAny(c))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrEncoding, es.format)
	}
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func (es *EncState) pad() string {
	return strings.Repeat(strings.Repeat(" ", es.indent), es.depth)
}

func applyColor(es *EncState, k doc.Kind, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(k, attr, v)
}
