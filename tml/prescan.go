package tml

import (
	"github.com/marciovmf/stdx-go/doc"
)

// prescan sizes the arena with one permissive pass. Every line ending
// in ':' is a candidate section, every "- " marker a candidate
// anonymous section, and every line with a separator a candidate
// key/value. Commas bound the element pools: an array of n elements
// has n-1 commas, and its kind is unknown until parse time, so the
// same bound feeds all three pools. Overestimating is fine; the
// parser allocates once and never grows.
func prescan(d []byte) doc.Capacity {
	var c doc.Capacity
	c.Nodes = 1 // implicit global section
	commas := 0

	s := 0
	for s < len(d) {
		e := s
		for e < len(d) && d[e] != '\n' && d[e] != '\r' {
			e++
		}

		ls, le := trimRange(d, s, e)
		if ls < le && d[ls] != '#' {
			// Bullet markers, each one an anonymous section.
			j := ls
			for j < le && d[j] == '-' && (j+1 >= le || d[j+1] == ' ') {
				c.Nodes++
				j++
				for j < le && d[j] == ' ' {
					j++
				}
			}
			if d[le-1] == ':' {
				c.Nodes++
			}
			hasSep := false
			for i := j; i < le; i++ {
				switch d[i] {
				case ':', '=':
					hasSep = true
				case ',':
					commas++
				}
			}
			if hasSep {
				c.KVs++
			}
		}

		s = e
		if s < len(d) {
			if d[s] == '\r' && s+1 < len(d) && d[s+1] == '\n' {
				s++
			}
			s++
		}
	}

	n := commas + c.KVs
	c.I64s = n
	c.F64s = n
	c.Strs = n
	return c
}
