// Package stdx is the front door to the configuration toolkit: two
// text-config dialects parsed into one read-only section/entry
// document model, plus converters, merging, diffing, expression
// evaluation and a markdown renderer built on top of it.
//
// The bracketed dialect is the classic [section] key = value form
// with untyped values converted at read time. The indented dialect
// nests sections by indentation, types its values at load time, and
// carries comma arrays and bullet lists. Both parse in two passes
// over the input into a single pre-sized arena; documents borrow the
// caller's buffer and stay valid until Close.
package stdx

import (
	"github.com/marciovmf/stdx-go/confdir"
	"github.com/marciovmf/stdx-go/diff"
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/format"
	"github.com/marciovmf/stdx-go/ini"
	"github.com/marciovmf/stdx-go/md"
	"github.com/marciovmf/stdx-go/merge"
	"github.com/marciovmf/stdx-go/tml"
)

// LoadINI parses bracketed-dialect text. The document borrows data;
// keep the buffer alive and unchanged until Close.
func LoadINI(data []byte) (*doc.Document, error) {
	return ini.Load(data)
}

// LoadTML parses indented-dialect text.
func LoadTML(data []byte, opts ...tml.Option) (*doc.Document, error) {
	return tml.Load(data, opts...)
}

// Parse decodes data in the given format. JSON and YAML arrive
// through the any-tree bridge.
func Parse(data []byte, f format.Format) (*doc.Document, error) {
	return confdir.Parse(data, f)
}

// LoadFile loads one configuration file, picking the parser from the
// file name's suffix.
func LoadFile(path string) (*doc.Document, error) {
	return confdir.ReadFile(path)
}

// LoadDir folds a conf.d-style directory of fragments into one
// document, later fragments overriding earlier ones.
func LoadDir(dir string, opts ...confdir.Option) (*doc.Document, error) {
	return confdir.Load(dir, opts...)
}

// Merge lays the section at over on top of the one at base.
func Merge(base, over doc.Cursor) (*doc.Document, error) {
	return merge.Overlay(base, over)
}

// Diff lists the entry-level edits that turn the subtree at from into
// the one at to.
func Diff(from, to doc.Cursor) []diff.Edit {
	return diff.Documents(from, to)
}

// Markdown renders markdown source as HTML.
func Markdown(src []byte) []byte {
	return md.Render(src)
}

// MarkdownString is Markdown with string ends.
func MarkdownString(src string) string {
	return md.RenderString(src)
}
