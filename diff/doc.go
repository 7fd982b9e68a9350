// Package diff compares two documents entry by entry.
//
// Both subtrees are flattened into ordered path/value leaves, interned
// to runes, and run through diffmatchpatch. The result is an edit list
// naming inserted, deleted and replaced paths; unchanged leaves are
// omitted.
package diff
