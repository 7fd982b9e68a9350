package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/encode"
	"github.com/marciovmf/stdx-go/merge"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file argument", cli.ErrUsage)
	}
	patch, err := readArg(args[0])
	if err != nil {
		return err
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := patchArg(cfg, cc.Out, arg, patch); err != nil {
			return err
		}
	}
	return nil
}

func patchArg(cfg *PatchConfig, w io.Writer, arg string, patch []byte) error {
	d, err := cfg.loadArg(arg)
	if err != nil {
		return err
	}
	defer d.Close()
	apply := merge.ApplyPatch
	if cfg.MergePatch {
		apply = merge.ApplyMergePatch
	}
	res, err := apply(d.Root(), patch)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", arg, err)
	}
	defer res.Close()
	return encode.Encode(res.Root(), w, cfg.encOpts(w)...)
}
