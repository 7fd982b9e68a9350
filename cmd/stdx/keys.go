package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := keysArg(cfg, cc.Out, arg); err != nil {
			return err
		}
	}
	return nil
}

func keysArg(cfg *KeysConfig, w io.Writer, arg string) error {
	d, err := cfg.loadArg(arg)
	if err != nil {
		return err
	}
	defer d.Close()
	c := d.Root().Section(cfg.Path)
	if !c.Valid() {
		return fmt.Errorf("%q: no section at %q", arg, cfg.Path)
	}
	entries := c
	start := 0
	if c.IsRoot() {
		entries = c.ChildAt(0)
		start = 1
	}
	for i := 0; i < entries.EntryCount(); i++ {
		if _, err := fmt.Fprintf(w, "%s\n", entries.KeyAt(i)); err != nil {
			return err
		}
	}
	for i := start; i < c.ChildCount(); i++ {
		name := c.ChildAt(i).Name()
		if len(name) == 0 {
			name = []byte("-")
		}
		if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
			return err
		}
	}
	return nil
}
