package token

// IsSpace reports ASCII whitespace: space, tab, CR, LF, FF, VT.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

// Trim returns the sub-slice of d with ASCII whitespace removed from both
// ends. Trimming is idempotent and never copies.
func Trim(d []byte) []byte {
	return TrimLeft(TrimRight(d))
}

func TrimLeft(d []byte) []byte {
	i := 0
	for i < len(d) && IsSpace(d[i]) {
		i++
	}
	return d[i:]
}

func TrimRight(d []byte) []byte {
	n := len(d)
	for n > 0 && IsSpace(d[n-1]) {
		n--
	}
	return d[:n]
}

// Fold lower-cases a single ASCII byte; non-letters pass through.
func Fold(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// EqualFold compares two byte slices with ASCII-only case folding.
// Non-ASCII bytes compare exactly, per the byte-comparison name contract.
func EqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if Fold(a[i]) != Fold(b[i]) {
			return false
		}
	}
	return true
}

// EqualFoldString is EqualFold against a string, avoiding a conversion.
func EqualFoldString(a []byte, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if Fold(a[i]) != Fold(b[i]) {
			return false
		}
	}
	return true
}
