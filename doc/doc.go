// Package doc holds the parsed representation shared by the ini and tml
// front-ends: one prescan-sized arena carrying the section tree, the
// key/value table and the typed array pools.
//
// # Overview
//
// A Document is created by a single load call in a front-end package,
// is immutable afterwards, and is released by a single Close. There is
// no per-node allocation: nodes, entries and pooled array elements live
// in contiguous slices whose capacities are computed by the front-end's
// prescan before parsing starts. String payloads are views into the
// caller's input buffer (or into the document's scratch region when
// escape decoding forced a copy), so the input must outlive the
// document and must not be mutated while it lives.
//
// # Structure
//
// Sections form a tree linked by parent, first-child and next-sibling
// indices (int32, -1 sentinel). Each section owns a contiguous run of
// entries in the shared KV table, identified by (start, count). Roots
// have parent -1; sibling order and entry order within a run are source
// order. Every named section carries a non-zero FNV-1a hash of its
// name; anonymous sections (TML bullets, the implicit global section)
// hash to zero.
//
// # Values
//
// A Value is a tagged union: none, string (a byte view), int (i64),
// float (f64), bool, or array. Arrays reference one of three
// homogeneous pools — int64, float64 or string-slice — by (element
// kind, start, count); array reads return direct pool sub-slices.
//
// # Navigation
//
//	root := d.Root()
//	web := root.Section("webserver")        // INI: flat name
//	obj := root.Section("level.objects.0")  // TML: dotted, digits index
//	port := web.Int64("port", 0)
//
// Cursors are values; an invalid cursor is returned for missing
// sections and yields defaults from every getter.
//
// # Thread Safety
//
// Documents are immutable after load and safe for concurrent readers.
// Close is not synchronized with readers; release a document only after
// all readers are done with it.
//
// # Related Packages
//
//   - github.com/marciovmf/stdx-go/ini - INI front-end
//   - github.com/marciovmf/stdx-go/tml - TML front-end
//   - github.com/marciovmf/stdx-go/encode - renders documents to text
//   - github.com/marciovmf/stdx-go/bind - binds documents onto structs
package doc
