package md

// appendEscaped copies s with &, < and > entity-escaped. Code spans,
// code blocks and prose all go through here.
func appendEscaped(out, s []byte) []byte {
	for _, c := range s {
		out = appendEscapedByte(out, c)
	}
	return out
}

func appendEscapedByte(out []byte, c byte) []byte {
	switch c {
	case '&':
		return append(out, "&amp;"...)
	case '<':
		return append(out, "&lt;"...)
	case '>':
		return append(out, "&gt;"...)
	}
	return append(out, c)
}

// appendAttr escapes s for an attribute value, which additionally
// needs double quotes encoded.
func appendAttr(out, s []byte) []byte {
	for _, c := range s {
		if c == '"' {
			out = append(out, "&quot;"...)
			continue
		}
		out = appendEscapedByte(out, c)
	}
	return out
}
