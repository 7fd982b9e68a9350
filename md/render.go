package md

import "bytes"

// Render converts Markdown to HTML. The returned buffer is owned by
// the caller and shares nothing with src.
func Render(src []byte) []byte {
	src = NormalizeNewlines(src)
	chunks := splitFences(src)
	out := make([]byte, 0, len(src)+len(src)/4)

	i := 0
	for i < len(chunks) {
		c := chunks[i]
		if !c.code {
			out = renderBlocks(out, c.body)
			i++
			continue
		}

		// Adjacent code chunks with the same info string merge into
		// one block, joined by a single newline.
		body := c.body
		copied := false
		j := i + 1
		for j < len(chunks) && chunks[j].code && bytes.Equal(chunks[j].info, c.info) {
			if !copied {
				body = append([]byte(nil), body...)
				copied = true
			}
			if len(body) > 0 && body[len(body)-1] != '\n' {
				body = append(body, '\n')
			}
			body = append(body, chunks[j].body...)
			j++
		}
		out = emitCode(out, c.info, body)
		i = j
	}
	return out
}

// RenderString is Render for string in, string out.
func RenderString(src string) string {
	return string(Render([]byte(src)))
}

func emitCode(out, info, body []byte) []byte {
	out = append(out, "<pre><code"...)
	if len(info) > 0 {
		out = append(out, ` title="`...)
		out = appendAttr(out, info)
		out = append(out, '"')
	}
	out = append(out, '>')
	out = appendEscaped(out, body)
	out = append(out, "</code></pre>\n"...)
	return out
}
