package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
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

func TestOverlay(t *testing.T) {
	base := mustTML(t, "a: 1\nserver:\n  port: 80\n  host: local\n")
	over := mustTML(t, "server:\n  port: 9090\n  tls: true\nextra:\n  k: v\n")

	out, err := Overlay(base.Root(), over.Root())
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	root := out.Root()

	// keys only in base survive
	if got := root.Section("").Int64("a", 0); got != 1 {
		t.Errorf("a = %d, want 1", got)
	}
	// over wins on conflicts
	if got := root.Section("server").Int64("port", 0); got != 9090 {
		t.Errorf("port = %d, want 9090", got)
	}
	// base-only keys inside a shared section survive
	if got := root.Section("server").String("host", ""); got != "local" {
		t.Errorf("host = %q, want local", got)
	}
	// over-only keys append
	if !root.Section("server").Bool("tls", false) {
		t.Error("tls = false, want true")
	}
	if got := root.Section("extra").String("k", ""); got != "v" {
		t.Errorf("extra.k = %q, want v", got)
	}
}

func TestOverlayAnonymousReplace(t *testing.T) {
	base := mustTML(t, "items:\n  - x: 1\n  - x: 2\n")
	over := mustTML(t, "items:\n  - x: 9\n")

	out, err := Overlay(base.Root(), over.Root())
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	items := out.Root().Section("items")
	if got := items.ChildCount(); got != 1 {
		t.Fatalf("items ChildCount = %d, want over's list to replace", got)
	}
	if got := items.ChildAt(0).Int64("x", 0); got != 9 {
		t.Errorf("items.0.x = %d, want 9", got)
	}
}

func TestOverlayPromotesINI(t *testing.T) {
	b, err := ini.Load([]byte("[server]\nport = 8080\nflag = yes\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	o, err := ini.Load([]byte("[server]\nname = web\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()

	out, err := Overlay(b.Root(), o.Root())
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	s := out.Root().Section("server")
	// untyped source values come through typed
	if got := s.Int64("port", 0); got != 8080 {
		t.Errorf("port = %d, want 8080", got)
	}
	if !s.Bool("flag", false) {
		t.Error("flag should promote to a true bool")
	}
	if got := s.String("name", ""); got != "web" {
		t.Errorf("name = %q, want web", got)
	}
}

func TestOverlayArrays(t *testing.T) {
	base := mustTML(t, "vals: 1, 2, 3\n")
	over := mustTML(t, "vals: 7, 8\n")

	out, err := Overlay(base.Root(), over.Root())
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	got := out.Root().Section("").Int64s("vals")
	want := []int64{7, 8}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("vals mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSONAndBack(t *testing.T) {
	d := mustTML(t, "name: demo\nserver:\n  port: 8080\n")
	data, err := MarshalJSON(d.Root())
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	defer back.Close()
	if got := back.Root().Section("").String("name", ""); got != "demo" {
		t.Errorf("name = %q, want demo", got)
	}
	if got := back.Root().Section("server").Int64("port", 0); got != 8080 {
		t.Errorf("port = %d, want 8080", got)
	}
}

func TestApplyPatch(t *testing.T) {
	d := mustTML(t, "name: demo\nport: 80\n")
	patch := []byte(`[
		{"op": "replace", "path": "/port", "value": 9090},
		{"op": "add", "path": "/host", "value": "web"}
	]`)
	out, err := ApplyPatch(d.Root(), patch)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	g := out.Root().Section("")
	if got := g.Int64("port", 0); got != 9090 {
		t.Errorf("port = %d, want 9090", got)
	}
	if got := g.String("host", ""); got != "web" {
		t.Errorf("host = %q, want web", got)
	}
	if got := g.String("name", ""); got != "demo" {
		t.Errorf("name = %q, want demo", got)
	}
}

func TestApplyMergePatch(t *testing.T) {
	d := mustTML(t, "name: demo\nserver:\n  port: 80\n  host: old\n")
	patch := []byte(`{"server": {"port": 9090, "host": null}}`)
	out, err := ApplyMergePatch(d.Root(), patch)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	s := out.Root().Section("server")
	if got := s.Int64("port", 0); got != 9090 {
		t.Errorf("port = %d, want 9090", got)
	}
	// null deletes the key
	if _, ok := s.Find([]byte("host")); ok {
		t.Error("host should be deleted by the null")
	}
}

func TestCreateMergePatch(t *testing.T) {
	from := mustTML(t, "a: 1\nb: 2\n")
	to := mustTML(t, "a: 1\nb: 3\n")
	p, err := CreateMergePatch(from.Root(), to.Root())
	if err != nil {
		t.Fatal(err)
	}
	out, err := ApplyMergePatch(from.Root(), p)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	g := out.Root().Section("")
	if got := g.Int64("b", 0); got != 3 {
		t.Errorf("b = %d, want 3", got)
	}
	if got := g.Int64("a", 0); got != 1 {
		t.Errorf("a = %d, want 1", got)
	}
}

func TestOverlayEncodeStable(t *testing.T) {
	// overlaying a document onto itself is an identity
	d := mustTML(t, "a: 1\nserver:\n  port: 80\nitems:\n  - x: 1\n")
	out, err := Overlay(d.Root(), d.Root())
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	if diff := cmp.Diff(encode.ToAny(d.Root()), encode.ToAny(out.Root())); diff != "" {
		t.Errorf("self-overlay changed the document (-orig +merged):\n%s", diff)
	}
}
