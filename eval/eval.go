package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"

	"github.com/marciovmf/stdx-go/debug"
	"github.com/marciovmf/stdx-go/doc"
)

// Eval compiles and runs src against the cursor's environment.
func Eval(c doc.Cursor, src string) (any, error) {
	if debug.Eval() {
		debug.Logf("eval %q at %s\n", src, c.Path())
	}
	prg, err := expr.Compile(src, exprOpts(c)...)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	res, err := expr.Run(prg, NewEnv(c))
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", src, err)
	}
	return res, nil
}

// Assert runs src and requires a boolean result.
func Assert(c doc.Cursor, src string) (bool, error) {
	prg, err := expr.Compile(src, append(exprOpts(c), expr.AsBool())...)
	if err != nil {
		return false, fmt.Errorf("compile %q: %w", src, err)
	}
	res, err := expr.Run(prg, NewEnv(c))
	if err != nil {
		return false, fmt.Errorf("run %q: %w", src, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("assert %q: returned %T, not bool", src, res)
	}
	return b, nil
}

func exprOpts(c doc.Cursor) []expr.Option {
	return []expr.Option{
		expr.Function("get", func(params ...any) (any, error) {
			path := params[0].(string)
			v, ok := resolvePath(c, path)
			if !ok {
				return nil, fmt.Errorf("no value at %q", path)
			}
			return v, nil
		},
			new(func(string) any)),
		expr.Function("has", func(params ...any) (any, error) {
			_, ok := resolvePath(c, params[0].(string))
			return ok, nil
		},
			new(func(string) bool)),
		expr.Function("whereami", func(params ...any) (any, error) {
			return c.Path(), nil
		},
			new(func() string)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
