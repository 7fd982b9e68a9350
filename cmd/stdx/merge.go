package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
	"github.com/marciovmf/stdx-go/merge"
)

func mergeCmd(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires at least two arguments", cli.ErrUsage)
	}
	var acc *doc.Document
	for _, arg := range args {
		d, err := cfg.loadArg(arg)
		if err != nil {
			if acc != nil {
				acc.Close()
			}
			return err
		}
		if acc == nil {
			acc = d
			continue
		}
		next, err := merge.Overlay(acc.Root(), d.Root())
		acc.Close()
		d.Close()
		if err != nil {
			return fmt.Errorf("error merging %s: %w", arg, err)
		}
		acc = next
	}
	defer acc.Close()
	return encode.Encode(acc.Root(), cc.Out, cfg.encOpts(cc.Out)...)
}
