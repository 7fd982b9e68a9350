package token

import "strconv"

// FloatShaped reports whether d contains a '.', 'e' or 'E', the marker
// that drops a token out of the int pool during array homogenisation.
func FloatShaped(d []byte) bool {
	for _, c := range d {
		switch c {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}

// ParseInt parses a strict base-10 signed integer: optional sign, one or
// more ASCII digits, nothing else.
func ParseInt(d []byte) (int64, bool) {
	i := 0
	if i < len(d) && (d[i] == '+' || d[i] == '-') {
		i++
	}
	if i == len(d) || asciiDigits(d[i:]) != len(d)-i {
		return 0, false
	}
	v, err := strconv.ParseInt(string(d), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseIntBase parses a signed integer with C-style base detection:
// 0x/0X prefix selects hex, a leading 0 selects octal, otherwise decimal.
func ParseIntBase(d []byte) (int64, bool) {
	i := 0
	neg := false
	if i < len(d) && (d[i] == '+' || d[i] == '-') {
		neg = d[i] == '-'
		i++
	}
	if i == len(d) {
		return 0, false
	}
	base := 10
	switch {
	case len(d)-i > 2 && d[i] == '0' && (d[i+1] == 'x' || d[i+1] == 'X'):
		base = 16
		i += 2
	case len(d)-i > 1 && d[i] == '0':
		base = 8
		i++
	}
	v, err := strconv.ParseUint(string(d[i:]), base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		return -int64(v), true
	}
	return int64(v), true
}

// ParseFloat parses a locale-independent dotted-decimal float with an
// optional exponent. Hex floats and underscores are rejected.
func ParseFloat(d []byte) (float64, bool) {
	for _, c := range d {
		switch {
		case asciiDigit(c):
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			return 0, false
		}
	}
	if len(d) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseBool matches d, case-insensitively, against the relaxed boolean
// literal set {true,false,yes,no,on,off,1,0}.
func ParseBool(d []byte) (bool, bool) {
	for _, s := range []string{"true", "yes", "on", "1"} {
		if EqualFoldString(d, s) {
			return true, true
		}
	}
	for _, s := range []string{"false", "no", "off", "0"} {
		if EqualFoldString(d, s) {
			return false, true
		}
	}
	return false, false
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

// AllDigits reports whether d is non-empty and entirely ASCII digits,
// the shape of a numeric path segment.
func AllDigits(d []byte) bool {
	return len(d) > 0 && asciiDigits(d) == len(d)
}
