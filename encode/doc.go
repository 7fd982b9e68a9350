// Package encode renders documents back to text.
//
// # Usage
//
//	// Render a document in its own dialect
//	var buf bytes.Buffer
//	err := encode.Encode(d.Root(), &buf)
//
//	// Render as JSON
//	err = encode.Encode(d.Root(), &buf, encode.EncodeFormat(format.JSONFormat))
//
//	// Colorized output for terminals
//	err = encode.Encode(d.Root(), &buf, encode.EncodeColors(encode.NewColors()))
//
// The TML and INI writers walk the cursor tree directly and reload to
// an equivalent document; INI output flattens nesting into dotted
// section names. JSON and YAML go through an any-tree, so key order
// follows the marshaller, not the source.
//
// # Related Packages
//
//   - github.com/marciovmf/stdx-go/doc - document tree and cursors
//   - github.com/marciovmf/stdx-go/ini - INI loading
//   - github.com/marciovmf/stdx-go/tml - TML loading
package encode
