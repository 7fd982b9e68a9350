package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marciovmf/stdx-go/doc"
)

// Expand interpolates ${expr} spans inside s, evaluating each
// expression against the cursor. "$$" escapes a literal dollar.
// Braces nest; an unterminated span is an error.
func Expand(c doc.Cursor, s string) (string, error) {
	if strings.IndexByte(s, '$') < 0 {
		return s, nil
	}
	var b strings.Builder
	for len(s) > 0 {
		i := strings.IndexByte(s, '$')
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i:]
		if len(s) >= 2 && s[1] == '$' {
			b.WriteByte('$')
			s = s[2:]
			continue
		}
		if len(s) < 2 || s[1] != '{' {
			b.WriteByte('$')
			s = s[1:]
			continue
		}
		j := 2
		depth := 1
		for j < len(s) && depth > 0 {
			switch s[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		if depth != 0 {
			return "", fmt.Errorf("unterminated ${ in %q", s)
		}
		res, err := Eval(c, s[2:j-1])
		if err != nil {
			return "", err
		}
		b.WriteString(toString(res))
		s = s[j:]
	}
	return b.String(), nil
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
