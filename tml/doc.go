// Package tml loads TML configuration text into a document arena.
//
// TML is the indentation-structured dialect: nesting is expressed by
// leading spaces, section headers end in ':', and "- " bullets open
// anonymous child sections. Values are typed at load time (string,
// int, float, bool) and comma-separated values become homogeneous
// arrays backed by the document's typed pools.
//
//	d, err := tml.Load(data)
//	if err != nil {
//		return err
//	}
//	defer d.Close()
//	obj := d.Root().Section("level.objects.0")
//	pos := obj.Float64s("position")
//
// Loading makes two passes over the input. The first builds the
// section tree and reports every structural error; the second fills
// key/value runs and pools. Indentation uses spaces only, with the
// unit (2 or 4) fixed by the first indented line.
package tml
