package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Format int

const (
	INIFormat Format = iota
	TMLFormat
	JSONFormat
	YAMLFormat
	MarkdownFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"i":        INIFormat,
		"ini":      INIFormat,
		"t":        TMLFormat,
		"tml":      TMLFormat,
		"j":        JSONFormat,
		"json":     JSONFormat,
		"y":        YAMLFormat,
		"yaml":     YAMLFormat,
		"m":        MarkdownFormat,
		"md":       MarkdownFormat,
		"markdown": MarkdownFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FromPath guesses the format from a file name suffix.
func FromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".cfg", ".conf":
		return INIFormat, nil
	case ".tml":
		return TMLFormat, nil
	case ".json":
		return JSONFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	case ".md", ".markdown":
		return MarkdownFormat, nil
	}
	return 0, fmt.Errorf("%w: no format for %q", ErrBadFormat, path)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case INIFormat:
		return []byte("ini"), nil
	case TMLFormat:
		return []byte("tml"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case MarkdownFormat:
		return []byte("markdown"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsINI() bool      { return f == INIFormat }
func (f Format) IsTML() bool      { return f == TMLFormat }
func (f Format) IsJSON() bool     { return f == JSONFormat }
func (f Format) IsYAML() bool     { return f == YAMLFormat }
func (f Format) IsMarkdown() bool { return f == MarkdownFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case INIFormat:
		return ".ini"
	case TMLFormat:
		return ".tml"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case MarkdownFormat:
		return ".md"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{INIFormat, TMLFormat, JSONFormat, YAMLFormat, MarkdownFormat}
}
