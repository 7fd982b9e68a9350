package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/confdir"
	"github.com/marciovmf/stdx-go/encode"
)

func dirCmd(cfg *DirConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dir.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: dir requires one directory argument", cli.ErrUsage)
	}
	var opts []confdir.Option
	if cfg.Pattern != "" {
		opts = append(opts, confdir.Pattern(cfg.Pattern))
	}
	d, err := confdir.Load(args[0], opts...)
	if err != nil {
		return err
	}
	defer d.Close()
	return encode.Encode(d.Root(), cc.Out, cfg.encOpts(cc.Out)...)
}
