// Package token holds the scanning substrate shared by the ini and tml
// front-ends: byte positions with line/column resolution, the load error
// record and its closed code set, whitespace trimming, ASCII folding,
// FNV-1a name hashing, quoted-string scanning and number classification.
//
// Everything here operates on sub-slices of the caller's input buffer;
// nothing in this package copies or owns document content.
package token
