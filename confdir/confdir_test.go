package confdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marciovmf/stdx-go/format"
)

func write(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name string
		f    format.Format
		in   string
	}{
		{"ini", format.INIFormat, "[server]\nport = 8080\n"},
		{"tml", format.TMLFormat, "server:\n  port: 8080\n"},
		{"json", format.JSONFormat, `{"server": {"port": 8080}}`},
		{"yaml", format.YAMLFormat, "server:\n  port: 8080\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse([]byte(tt.in), tt.f)
			if err != nil {
				t.Fatal(err)
			}
			defer d.Close()
			if got := d.Root().Section("server").Int64("port", 0); got != 8080 {
				t.Errorf("port = %d, want 8080", got)
			}
		})
	}
}

func TestParseMarkdownRejected(t *testing.T) {
	if _, err := Parse([]byte("# nope\n"), format.MarkdownFormat); err == nil {
		t.Fatal("markdown should not parse as configuration")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "app.ini", "[db]\nhost = localhost\n")
	d, err := ReadFile(filepath.Join(dir, "app.ini"))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if got := d.Root().Section("db").String("host", ""); got != "localhost" {
		t.Errorf("host = %q, want localhost", got)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.ini")); err == nil {
		t.Error("missing file should fail")
	}
	write(t, dir, "notes.txt", "whatever")
	if _, err := ReadFile(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("unknown suffix should fail")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "10-base.ini", "[server]\nport = 8080\nhost = local\n")
	write(t, dir, "20-site.tml", "server:\n  port: 9090\n")
	write(t, dir, "30-extra.yaml", "limits:\n  open: 32\n")
	write(t, dir, ".hidden.ini", "[x]\ny = 1\n")
	write(t, dir, "README.txt", "not config")

	d, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	root := d.Root()

	// the later fragment overrides the earlier one
	if got := root.Section("server").Int64("port", 0); got != 9090 {
		t.Errorf("port = %d, want 9090", got)
	}
	// untouched keys survive the overlay
	if got := root.Section("server").String("host", ""); got != "local" {
		t.Errorf("host = %q, want local", got)
	}
	if got := root.Section("limits").Int64("open", 0); got != 32 {
		t.Errorf("limits.open = %d, want 32", got)
	}
	if root.Section("x").Valid() {
		t.Error("dotfiles should be skipped")
	}
}

func TestLoadDirPattern(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "10-a.conf", "[s]\nk = a\n")
	write(t, dir, "skip-b.conf", "[s]\nk = b\n")

	d, err := Load(dir, Pattern("??-*.conf"))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if got := d.Root().Section("s").String("k", ""); got != "a" {
		t.Errorf("k = %q, want a (pattern should exclude skip-b)", got)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatal("empty directory should fail")
	}
}
