package encode

import (
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/format"
)

// EncState carries writer state through one Encode call.
type EncState struct {
	depth  int
	indent int

	format    format.Format
	formatSet bool

	Color func(doc.Kind, ColorAttr, string) string
}

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) {
		es.format = f
		es.formatSet = true
	}
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) (format.Format, bool) {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format, es.formatSet
}

// Indent sets the spaces per nesting level. TML reloads cleanly only
// with 2 or 4.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Depth sets the starting nesting level.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
