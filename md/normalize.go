package md

import "bytes"

// NormalizeNewlines rewrites \r\n pairs and lone \r to \n. Input
// without carriage returns is returned as-is; later passes see only
// \n terminators either way.
func NormalizeNewlines(src []byte) []byte {
	if bytes.IndexByte(src, '\r') < 0 {
		return src
	}
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\r' {
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, c)
	}
	return out
}
