package md

import "bytes"

// chunk is one fence-pass output: either opaque code with its info
// string, or prose for the block renderer.
type chunk struct {
	code bool
	info []byte
	body []byte
}

// fenceProbe looks for a fence line in [s, e): after leading spaces
// and tabs, a run of at least three backticks or tildes. It returns
// the fence character, the run length and the offset past the run,
// or n == 0.
func fenceProbe(d []byte, s, e int) (ch byte, n, rest int) {
	for s < e && (d[s] == ' ' || d[s] == '\t') {
		s++
	}
	if s >= e || (d[s] != '`' && d[s] != '~') {
		return 0, 0, 0
	}
	ch = d[s]
	rest = s
	for rest < e && d[rest] == ch {
		rest++
	}
	if n = rest - s; n < 3 {
		return 0, 0, 0
	}
	return ch, n, rest
}

// splitFences cuts the input into alternating text and code chunks.
// A fence closes only on a line holding a run of the same character
// at least as long as the opener and nothing else; an unclosed fence
// extends to end of input. Empty text chunks are dropped so that
// back-to-back code blocks stay adjacent for the emit pass.
func splitFences(d []byte) []chunk {
	var chunks []chunk
	var openCh byte
	var openLen int
	var info []byte
	inCode := false
	textStart := 0
	bodyStart := 0

	i := 0
	for i <= len(d) {
		ls := i
		le := ls
		for le < len(d) && d[le] != '\n' {
			le++
		}
		next := le
		if next < len(d) {
			next++
		}

		ch, n, rest := fenceProbe(d, ls, le)
		if !inCode && n > 0 {
			if ls > textStart {
				chunks = append(chunks, chunk{body: d[textStart:ls]})
			}
			openCh, openLen = ch, n
			info = bytes.TrimSpace(d[rest:le])
			bodyStart = next
			inCode = true
		} else if inCode && n >= openLen && ch == openCh && len(bytes.TrimSpace(d[rest:le])) == 0 {
			chunks = append(chunks, chunk{code: true, info: info, body: d[bodyStart:ls]})
			textStart = next
			inCode = false
		}

		if le >= len(d) {
			break
		}
		i = next
	}

	if inCode {
		chunks = append(chunks, chunk{code: true, info: info, body: d[bodyStart:]})
	} else if textStart < len(d) {
		chunks = append(chunks, chunk{body: d[textStart:]})
	}
	return chunks
}
