package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"

	"github.com/marciovmf/stdx-go/confdir"
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
	"github.com/marciovmf/stdx-go/format"
	"github.com/marciovmf/stdx-go/tml"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	I bool `cli:"name=i aliases=ini desc='do i/o in the bracketed dialect'"`
	T bool `cli:"name=t aliases=tml desc='do i/o in the indented dialect'"`
	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Strict bool `cli:"name=strict desc='reject unterminated triple-quoted strings'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// inFormat picks the input format: the -I flag wins, then the dialect
// shorthands, then the file suffix, and lastly the indented dialect.
func (cfg *MainConfig) inFormat(arg string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	switch {
	case cfg.I:
		return format.INIFormat
	case cfg.T:
		return format.TMLFormat
	case cfg.J:
		return format.JSONFormat
	case cfg.Y:
		return format.YAMLFormat
	}
	if arg != "-" {
		if f, err := format.FromPath(arg); err == nil && f != format.MarkdownFormat {
			return f
		}
	}
	return format.TMLFormat
}

func (cfg *MainConfig) parse(data []byte, f format.Format) (*doc.Document, error) {
	if f == format.TMLFormat && cfg.Strict {
		return tml.Load(data, tml.StrictTripleQuote())
	}
	return confdir.Parse(data, f)
}

// loadArg reads one input argument, "-" for stdin, and parses it.
func (cfg *MainConfig) loadArg(arg string) (*doc.Document, error) {
	data, err := readArg(arg)
	if err != nil {
		return nil, err
	}
	d, err := cfg.parse(data, cfg.inFormat(arg))
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", arg, err)
	}
	return d, nil
}

func readArg(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", arg, err)
	}
	return d, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var res []encode.EncodeOption
	var f format.Format
	set := false
	switch {
	case cfg.I:
		f, set = format.INIFormat, true
	case cfg.T:
		f, set = format.TMLFormat, true
	case cfg.J:
		f, set = format.JSONFormat, true
	case cfg.Y:
		f, set = format.YAMLFormat, true
	}
	if cfg.OutFormat != nil {
		f, set = *cfg.OutFormat, true
	}
	if set {
		res = append(res, encode.EncodeFormat(f))
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	// an explicit -color=false must win over the tty check
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	if fl, ok := w.(*os.File); ok && isatty.IsTerminal(fl.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type KeysConfig struct {
	*MainConfig
	Path string `cli:"name=p aliases=path desc='list a section at this dotted path'"`

	Keys *cli.Command
}

type CheckConfig struct {
	*MainConfig
	JSONOut bool `cli:"name=e aliases=errjson desc='report errors as json records'"`
	Quiet   bool `cli:"name=q desc='suppress per-file ok lines'"`

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Patch bool `cli:"name=p aliases=patch desc='emit a json merge patch instead of edits'"`

	Diff *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Merge *cli.Command
}

type PatchConfig struct {
	*MainConfig
	MergePatch bool `cli:"name=m aliases=merge desc='treat the patch as an rfc 7386 merge patch'"`

	Patch *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Assert bool `cli:"name=a aliases=assert desc='fail unless the expression is true'"`
	Expand bool `cli:"name=x aliases=expand desc='expand ${expr} in a template argument'"`

	Eval *cli.Command
}

type MDConfig struct {
	*MainConfig
	MD *cli.Command
}

type DirConfig struct {
	*MainConfig
	Pattern string `cli:"name=g aliases=glob desc='only fragments matching this glob'"`

	Dir *cli.Command
}
