// Package confdir loads configuration files, and conf.d-style
// directories of them, into documents. Bracketed and indented dialects
// parse natively; JSON and YAML arrive through the any-tree bridge and
// follow its shape rules.
package confdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/marciovmf/stdx-go/debug"
	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/format"
	"github.com/marciovmf/stdx-go/ini"
	"github.com/marciovmf/stdx-go/merge"
	"github.com/marciovmf/stdx-go/tml"
)

// Parse decodes data in the given format.
func Parse(data []byte, f format.Format) (*doc.Document, error) {
	switch f {
	case format.INIFormat:
		return ini.Load(data)
	case format.TMLFormat:
		return tml.Load(data)
	case format.JSONFormat:
		return merge.FromJSON(data)
	case format.YAMLFormat:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return merge.FromAny(v)
	}
	return nil, fmt.Errorf("%w: cannot parse %s input", format.ErrBadFormat, f)
}

// ReadFile loads one configuration file, picking the parser from the
// file name's suffix.
func ReadFile(path string) (*doc.Document, error) {
	f, err := format.FromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	d, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return d, nil
}

type loader struct {
	pattern string
}

type Option func(*loader)

// Pattern restricts directory loading to fragment names matching a
// filepath.Match glob, "??-*.conf" say. The default takes every name
// with a recognized suffix.
func Pattern(glob string) Option {
	return func(l *loader) { l.pattern = glob }
}

// Load reads the configuration fragments under dir in lexical name
// order and folds them into one document, later fragments overriding
// earlier ones with Overlay semantics. Dotfiles, subdirectories, and
// names without a recognized suffix are skipped. A directory with no
// fragments is an error.
func Load(dir string, opts ...Option) (*doc.Document, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", dir, err)
	}
	var acc *doc.Document
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if f, err := format.FromPath(name); err != nil || f == format.MarkdownFormat {
			continue
		}
		if l.pattern != "" {
			ok, err := filepath.Match(l.pattern, name)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", l.pattern, err)
			}
			if !ok {
				continue
			}
		}
		if debug.Dir() {
			debug.Logf("confdir: fragment %s\n", name)
		}
		d, err := ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = d
			continue
		}
		next, err := merge.Overlay(acc.Root(), d.Root())
		if err != nil {
			return nil, fmt.Errorf("fragment %q: %w", name, err)
		}
		acc.Close()
		d.Close()
		acc = next
	}
	if acc == nil {
		return nil, fmt.Errorf("no configuration fragments in %q", dir)
	}
	return acc, nil
}
