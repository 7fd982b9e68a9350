package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/diff"
	"github.com/marciovmf/stdx-go/merge"
)

func diffCmd(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	from, err := cfg.loadArg(args[0])
	if err != nil {
		return err
	}
	defer from.Close()
	to, err := cfg.loadArg(args[1])
	if err != nil {
		return err
	}
	defer to.Close()
	if cfg.Patch {
		patch, err := merge.CreateMergePatch(from.Root(), to.Root())
		if err != nil {
			return fmt.Errorf("error diffing %s and %s: %w", args[0], args[1], err)
		}
		_, err = fmt.Fprintf(cc.Out, "%s\n", patch)
		return err
	}
	edits := diff.Documents(from.Root(), to.Root())
	for _, e := range edits {
		if _, err := fmt.Fprintln(cc.Out, e); err != nil {
			return err
		}
	}
	if len(edits) > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
