package encode

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/format"
	"github.com/marciovmf/stdx-go/ini"
	"github.com/marciovmf/stdx-go/tml"
)

func mustTML(t *testing.T, src string) *doc.Document {
	t.Helper()
	d, err := tml.Load([]byte(src))
	if err != nil {
		t.Fatalf("load %q: %v", src, err)
	}
	t.Cleanup(d.Close)
	return d
}

func mustINI(t *testing.T, src string) *doc.Document {
	t.Helper()
	d, err := ini.Load([]byte(src))
	if err != nil {
		t.Fatalf("load %q: %v", src, err)
	}
	t.Cleanup(d.Close)
	return d
}

func TestEncodeTML(t *testing.T) {
	in := "name: demo\nserver:\n  port: 8080\n  open: true\n  ratio: 0.5\n"
	d := mustTML(t, in)
	var b bytes.Buffer
	if err := Encode(d.Root(), &b); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, b.String()); diff != "" {
		t.Errorf("encode mismatch (-want +got):\n%s", diff)
	}
}

func TestTMLRoundTrip(t *testing.T) {
	srcs := []string{
		"a: 1\n",
		"s: \"quoted text\"\n",
		"f: 2.5\nb: false\n",
		"vals: 1, 2, 3\n",
		"floats: 1.0, 2.0\n",
		"strs: \"a\", \"2\", \"c\"\n",
		"one: 9,\n\n",
		"outer:\n  inner:\n    leaf: x\n",
		"items:\n  - name: a\n  - name: b\n",
		"desc: \"\"\"\nline one\nline two\n\"\"\"\n",
	}
	for _, src := range srcs {
		d := mustTML(t, src)
		var b bytes.Buffer
		if err := Encode(d.Root(), &b); err != nil {
			t.Fatalf("encode %q: %v", src, err)
		}
		back, err := tml.Load(b.Bytes())
		if err != nil {
			t.Fatalf("reload of %q output %q: %v", src, b.String(), err)
		}
		if diff := cmp.Diff(ToAny(d.Root()), ToAny(back.Root())); diff != "" {
			t.Errorf("round trip %q changed the document (-orig +reload):\n%s", src, diff)
		}
		back.Close()
	}
}

func TestEncodeINIDialect(t *testing.T) {
	in := "top = 1\n[server]\nport = 8080\nname = web\n"
	d := mustINI(t, in)
	var b bytes.Buffer
	if err := Encode(d.Root(), &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{"top = 1\n", "[server]\n", "port = 8080\n", "name = web\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// the output reloads to the same values
	back := mustINI(t, out)
	if got := back.Root().Section("server").Int64("port", 0); got != 8080 {
		t.Errorf("reloaded port = %d, want 8080", got)
	}
}

func TestEncodeINIQuoting(t *testing.T) {
	in := "k: \"has ; marker\"\n"
	d := mustTML(t, in)
	var b bytes.Buffer
	if err := Encode(d.Root(), &b, EncodeFormat(format.INIFormat)); err != nil {
		t.Fatal(err)
	}
	back := mustINI(t, b.String())
	if got := back.Root().Section("").String("k", ""); got != "has ; marker" {
		t.Errorf("reloaded k = %q, want %q", got, "has ; marker")
	}
}

func TestEncodeJSON(t *testing.T) {
	d := mustTML(t, "name: demo\nserver:\n  port: 8080\n")
	var b bytes.Buffer
	if err := Encode(d.Root(), &b, EncodeFormat(format.JSONFormat)); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(b.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, b.String())
	}
	if got["name"] != "demo" {
		t.Errorf("name = %v, want demo", got["name"])
	}
	server, ok := got["server"].(map[string]any)
	if !ok || server["port"] != float64(8080) {
		t.Errorf("server = %v, want port 8080", got["server"])
	}
}

func TestEncodeYAML(t *testing.T) {
	d := mustTML(t, "name: demo\nport: 8080\n")
	var b bytes.Buffer
	if err := Encode(d.Root(), &b, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "name: demo") || !strings.Contains(out, "port: 8080") {
		t.Errorf("yaml output = %q", out)
	}
}

func TestToAny(t *testing.T) {
	d := mustTML(t, "a: 1\nlist:\n  - x: 1\n  - x: 2\nnamed:\n  k: v\n")
	got := ToAny(d.Root())
	want := map[string]any{
		"a": int64(1),
		"list": []any{
			map[string]any{"x": int64(1)},
			map[string]any{"x": int64(2)},
		},
		"named": map[string]any{"k": "v"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
}

func TestToAnyPromotesINI(t *testing.T) {
	d := mustINI(t, "[s]\nport = 8080\nratio = 0.5\nflag = yes\nname = web\n")
	got := ToAny(d.Root().Section("s"))
	want := map[string]any{
		"port":  int64(8080),
		"ratio": 0.5,
		"flag":  true,
		"name":  "web",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
}

func TestValueText(t *testing.T) {
	d := mustTML(t, "i: 42\nf: 2.0\nb: true\ns: plain\nq: \"true\"\nm: \"\"\"\na\nb\n\"\"\"\n")
	g := d.Root().Section("")
	tests := []struct {
		key   string
		e     string
		guard bool
	}{
		{"i", "42", false},
		{"f", "2.0", false},
		{"b", "true", false},
		{"s", "plain", false},
		{"q", `"true"`, false}, // quoted so it does not reload as a bool
		{"m", "\"\"\"\na\nb\n\"\"\"", false},
	}
	for _, tt := range tests {
		v, ok := g.Find([]byte(tt.key))
		if !ok {
			t.Fatalf("key %q missing", tt.key)
		}
		got, guard := ValueText(d, v)
		if got != tt.e || guard != tt.guard {
			t.Errorf("ValueText(%s) = (%q, %v), want (%q, %v)",
				tt.key, got, guard, tt.e, tt.guard)
		}
	}
}

func TestEncodeAny(t *testing.T) {
	in := map[string]any{
		"name": "demo",
		"port": float64(8080), // json.Unmarshal shape
		"nested": map[string]any{
			"ratio": 0.5,
		},
		"list":    []any{map[string]any{"x": float64(1)}},
		"scalars": []any{float64(1), float64(2)},
		"drop":    nil,
	}
	var b bytes.Buffer
	if err := EncodeAny(in, &b); err != nil {
		t.Fatal(err)
	}
	d, err := tml.Load(b.Bytes())
	if err != nil {
		t.Fatalf("reload: %v\n%s", err, b.String())
	}
	defer d.Close()
	root := d.Root()
	g := root.Section("")
	if got := g.String("name", ""); got != "demo" {
		t.Errorf("name = %q, want demo", got)
	}
	// fraction-free floats come back as ints
	if got := g.Int64("port", 0); got != 8080 {
		t.Errorf("port = %d, want 8080", got)
	}
	if got := root.Section("nested").Float64("ratio", 0); got != 0.5 {
		t.Errorf("ratio = %v, want 0.5", got)
	}
	if got := root.Section("list").ChildCount(); got != 1 {
		t.Errorf("list children = %d, want 1", got)
	}
	if got := g.Int64s("scalars"); len(got) != 2 || got[0] != 1 {
		t.Errorf("scalars = %v, want [1 2]", got)
	}
	if _, ok := g.Find([]byte("drop")); ok {
		t.Error("nil values should drop their keys")
	}
}

func TestEncodeAnyRejects(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"top level scalar", 42},
		{"mixed list", map[string]any{"l": []any{map[string]any{}, float64(1)}}},
		{"nested list", map[string]any{"l": []any{[]any{float64(1)}}}},
		{"bad key", map[string]any{"a:b": float64(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			if err := EncodeAny(tt.in, &b); err == nil {
				t.Errorf("EncodeAny accepted %v:\n%s", tt.in, b.String())
			}
		})
	}
}

func TestColors(t *testing.T) {
	c := NewColors()
	got := c.Color(doc.IntKind, ValueColor, "42")
	if !strings.Contains(got, "42") {
		t.Errorf("colorized output lost the text: %q", got)
	}
	// unknown combinations fall back to identity
	plain := &Colors{Default: colorDefault, Map: map[Colorable]func(string, ...any) string{}}
	if got := plain.Color(doc.IntKind, ValueColor, "42"); got != "42" {
		t.Errorf("default color = %q, want 42", got)
	}
}

func TestCheckKey(t *testing.T) {
	good := []string{"name", "a_b", "x1", "with space inside"}
	for _, k := range good {
		if err := CheckKey(k); err != nil {
			t.Errorf("CheckKey(%q) = %v, want nil", k, err)
		}
	}
	bad := []string{"", " lead", "trail ", "a:b", "a=b", "#x", "\"x", "-", "- x", "a\tb"}
	for _, k := range bad {
		if err := CheckKey(k); err == nil {
			t.Errorf("CheckKey(%q) accepted", k)
		}
	}
}
