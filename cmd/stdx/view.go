package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	return viewFiles(cfg, cc.Out, args)
}

func viewFiles(cfg *ViewConfig, w io.Writer, files []string) error {
	for i, file := range files {
		if i > 0 {
			if _, err := w.Write([]byte("\n")); err != nil {
				return err
			}
		}
		if err := viewFile(cfg, w, file); err != nil {
			return err
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, w io.Writer, file string) error {
	mCfg := cfg.MainConfig
	d, err := mCfg.loadArg(file)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := encode.Encode(d.Root(), w, mCfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding %s: %w", file, err)
	}
	return nil
}
