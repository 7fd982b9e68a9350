package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/encode"
	"github.com/marciovmf/stdx-go/eval"
)

func evalCmd(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Assert && cfg.Expand {
		return fmt.Errorf("%w: -a and -x are mutually exclusive", cli.ErrUsage)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression argument", cli.ErrUsage)
	}
	src := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := evalArg(cfg, cc.Out, arg, src); err != nil {
			return err
		}
	}
	return nil
}

func evalArg(cfg *EvalConfig, w io.Writer, arg, src string) error {
	d, err := cfg.loadArg(arg)
	if err != nil {
		return err
	}
	defer d.Close()
	switch {
	case cfg.Assert:
		ok, err := eval.Assert(d.Root(), src)
		if err != nil {
			return fmt.Errorf("error evaluating %q on %s: %w", src, arg, err)
		}
		if !ok {
			fmt.Fprintf(w, "%s: assertion failed: %s\n", arg, src)
			return cli.ExitCodeErr(1)
		}
		return nil
	case cfg.Expand:
		out, err := eval.Expand(d.Root(), src)
		if err != nil {
			return fmt.Errorf("error expanding %q on %s: %w", src, arg, err)
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
	res, err := eval.Eval(d.Root(), src)
	if err != nil {
		return fmt.Errorf("error evaluating %q on %s: %w", src, arg, err)
	}
	return printResult(cfg.MainConfig, w, res)
}

func printResult(cfg *MainConfig, w io.Writer, res any) error {
	switch res.(type) {
	case map[string]any:
		return encode.EncodeAny(res, w, cfg.encOpts(w)...)
	case []any:
		data, err := json.Marshal(res)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case nil:
		return nil
	}
	_, err := fmt.Fprintln(w, toText(res))
	return err
}

func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return fmt.Sprintf("%t", t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	}
	return fmt.Sprintf("%v", v)
}
