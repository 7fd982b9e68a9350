package eval

import (
	"strconv"
	"strings"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
)

// Env is the variable environment an expression runs in.
type Env map[string]any

// NewEnv builds an environment from the cursor: entries and sections
// become variables by name, anonymous sections by sibling index.
func NewEnv(c doc.Cursor) Env {
	env := Env{}
	if !c.Valid() {
		return env
	}
	switch m := encode.ToAny(c).(type) {
	case map[string]any:
		for k, v := range m {
			env[k] = v
		}
	case []any:
		for i, v := range m {
			env[strconv.Itoa(i)] = v
		}
	}
	return env
}

// resolvePath looks up a dotted path from c: first as a section, then
// as an entry of the section named by everything before the last dot.
func resolvePath(c doc.Cursor, path string) (any, bool) {
	if s := c.Section(path); s.Valid() {
		return encode.ToAny(s), true
	}
	dir, key := "", path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		dir, key = path[:i], path[i+1:]
	}
	s := c
	if dir != "" {
		if s = c.Section(dir); !s.Valid() {
			return nil, false
		}
	}
	if s.IsRoot() {
		// root entries live in the implicit global section
		s = s.ChildAt(0)
	}
	v, ok := s.Find([]byte(key))
	if !ok {
		return nil, false
	}
	return encode.ValueAny(s.Document(), v), true
}
