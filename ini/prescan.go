package ini

import (
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/token"
)

// prescan sizes the arena with one cheap pass: candidate section
// headers, candidate key/value lines, and escape-decode scratch bytes.
// Counts are permissive upper bounds; the parse never exceeds them.
func prescan(d []byte) doc.Capacity {
	var c doc.Capacity
	c.Nodes = 1 // implicit global section
	s := 0
	for s < len(d) {
		e := s
		var first byte
		hasEq, hasBS := false, false
		for e < len(d) && d[e] != '\n' && d[e] != '\r' {
			b := d[e]
			if first == 0 && !token.IsSpace(b) {
				first = b
			}
			switch b {
			case '=':
				hasEq = true
			case '\\':
				hasBS = true
			}
			e++
		}
		switch first {
		case '[':
			c.Nodes++
		case ';', '#', 0:
		default:
			if hasEq {
				c.KVs++
			}
		}
		if hasBS {
			c.Scratch += e - s
		}
		if e < len(d) {
			if d[e] == '\r' && e+1 < len(d) && d[e+1] == '\n' {
				e++
			}
			e++
		}
		s = e
	}
	return c
}
