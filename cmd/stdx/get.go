package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a dotted path argument", cli.ErrUsage)
	}
	path := args[0]
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := getArg(cfg, cc.Out, arg, path); err != nil {
			return err
		}
	}
	return nil
}

func getArg(cfg *GetConfig, w io.Writer, arg, path string) error {
	mCfg := cfg.MainConfig
	d, err := mCfg.loadArg(arg)
	if err != nil {
		return err
	}
	defer d.Close()
	if c := d.Root().Section(path); c.Valid() {
		return encode.Encode(c, w, mCfg.encOpts(w)...)
	}
	v, ok := find(d, path)
	if !ok {
		return fmt.Errorf("%q: no section or entry at %q", arg, path)
	}
	return printValue(w, d, v)
}

// find resolves path as <section>.<key>, the last dot splitting the
// two. A dotless path is a key in the global section.
func find(d *doc.Document, path string) (doc.Value, bool) {
	sec, key := "", path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		sec, key = path[:i], path[i+1:]
	}
	c := d.Root().Section(sec)
	if !c.Valid() {
		return doc.None(), false
	}
	if c.IsRoot() {
		c = c.ChildAt(0)
	}
	return c.Find([]byte(key))
}

func printValue(w io.Writer, d *doc.Document, v doc.Value) error {
	if v.Kind() == doc.StringKind {
		// raw bytes, no quoting, so values drop into shell pipelines
		if _, err := w.Write(v.Bytes()); err != nil {
			return err
		}
		_, err := w.Write([]byte("\n"))
		return err
	}
	text, _ := encode.ValueText(d, v)
	_, err := fmt.Fprintln(w, text)
	return err
}
