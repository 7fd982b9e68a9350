package token

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc resolves byte offsets to 1-based line/column pairs. The newline
// table n is filled in source order by the scanners via nl.
type PosDoc struct {
	d []byte
	n []int
}

func NewPosDoc(d []byte) *PosDoc {
	return &PosDoc{d: d}
}

// Bytes returns the underlying input buffer.
func (p *PosDoc) Bytes() []byte {
	return p.d
}

// nl records a line break at offset i. Offsets must arrive in
// increasing order; duplicates are ignored. A lone CR counts as a
// break, so both LF and CR bytes are accepted.
func (p *PosDoc) nl(i int) {
	if len(p.n) > 0 && p.n[len(p.n)-1] == i {
		return
	}
	if i >= len(p.d) || (p.d[i] != '\n' && p.d[i] != '\r') {
		panic("pos: offset is not a line break")
	}
	p.n = append(p.n, i)
}

// Scan fills the break table for the whole buffer, treating CRLF as a
// single break. Front-ends that iterate lines themselves use Newline.
func (p *PosDoc) Scan() {
	for i := 0; i < len(p.d); i++ {
		switch p.d[i] {
		case '\n':
			p.nl(i)
		case '\r':
			if i+1 < len(p.d) && p.d[i+1] == '\n' {
				p.nl(i + 1)
				i++
			} else {
				p.nl(i)
			}
		}
	}
}

// Newline records a line break seen at offset i by a front-end scanner.
func (p *PosDoc) Newline(i int) {
	p.nl(i)
}

// LineCol maps a byte offset to a 1-based (line, col) pair.
func (p *PosDoc) LineCol(off int) (int, int) {
	N := len(p.n)
	di := sort.Search(N, func(i int) bool {
		return p.n[i] >= off
	})
	if di == 0 {
		return 1, off + 1
	}
	return di + 1, off - p.n[di-1]
}

func (p *PosDoc) Pos(i int) *Pos {
	return &Pos{
		I: i,
		D: p,
	}
}

type Pos struct {
	I int
	D *PosDoc
}

func (p *Pos) LineCol() (int, int) {
	return p.D.LineCol(p.I)
}

func (p *Pos) Line() int {
	l, _ := p.LineCol()
	return l
}

func (p *Pos) Col() int {
	_, c := p.LineCol()
	return c
}

func (p Pos) String() string {
	var sample string
	if p.D != nil && len(p.D.d) > 0 {
		sample = string(p.D.d[max(0, p.I-5):min(p.I+5, len(p.D.d))])
	} else {
		sample = "?"
	}
	sample = strconv.Quote(sample)
	sample = sample[1 : len(sample)-1]
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.I, p.Line(), p.Col())
}
