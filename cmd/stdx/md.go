package main

import (
	"io"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/md"
)

func mdCmd(cfg *MDConfig, cc *cli.Context, args []string) error {
	args, err := cfg.MD.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := mdArg(cc.Out, arg); err != nil {
			return err
		}
	}
	return nil
}

func mdArg(w io.Writer, arg string) error {
	data, err := readArg(arg)
	if err != nil {
		return err
	}
	_, err = w.Write(md.Render(data))
	return err
}
