package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/marciovmf/stdx-go/token"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := 0
	for _, arg := range args {
		if !checkArg(cfg, cc.Out, arg) {
			failed++
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func checkArg(cfg *CheckConfig, w io.Writer, arg string) bool {
	d, err := cfg.loadArg(arg)
	if err == nil {
		d.Close()
		if !cfg.Quiet {
			fmt.Fprintf(w, "%s: ok\n", arg)
		}
		return true
	}
	rec := &token.ErrorRecord{}
	if !errors.As(err, &rec) {
		rec = &token.ErrorRecord{Code: token.IO, Line: 1, Col: 1, Msg: err.Error()}
	}
	if cfg.JSONOut {
		out := struct {
			File string `json:"file"`
			*token.ErrorRecord
		}{File: arg, ErrorRecord: rec}
		data, jerr := json.Marshal(&out)
		if jerr != nil {
			fmt.Fprintf(w, "%s: %v\n", arg, err)
			return false
		}
		fmt.Fprintf(w, "%s\n", data)
		return false
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s\n", arg, rec.Line, rec.Col, rec.Code, rec.Msg)
	return false
}
