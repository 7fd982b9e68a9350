package bind

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/ini"
	"github.com/marciovmf/stdx-go/tml"
)

func loadTML(t *testing.T, src string) doc.Cursor {
	t.Helper()
	d, err := tml.Load([]byte(src))
	if err != nil {
		t.Fatalf("load %q: %v", src, err)
	}
	t.Cleanup(d.Close)
	return d.Root()
}

func TestToScalars(t *testing.T) {
	type Server struct {
		Host    string `stdx:"host"`
		Port    int
		Ratio   float64
		Verbose bool
		Ignored string `stdx:"-"`
		Absent  string
	}
	root := loadTML(t, "server:\n  host: web\n  port: 8080\n  ratio: 0.5\n  verbose: true\n  ignored: nope\n")

	s := Server{Ignored: "keep", Absent: "default"}
	var cfg struct {
		Server Server `stdx:"server"`
	}
	cfg.Server = s
	if err := To(root, &cfg); err != nil {
		t.Fatal(err)
	}
	want := Server{Host: "web", Port: 8080, Ratio: 0.5, Verbose: true, Ignored: "keep", Absent: "default"}
	if diff := cmp.Diff(want, cfg.Server); diff != "" {
		t.Errorf("bind mismatch (-want +got):\n%s", diff)
	}
}

func TestToCaseInsensitive(t *testing.T) {
	// no tag: the field name matches the key case-insensitively
	var cfg struct {
		Port int
	}
	root := loadTML(t, "port: 9090\n")
	if err := To(root, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
}

func TestToEmbedded(t *testing.T) {
	type Common struct {
		Name string
	}
	var cfg struct {
		Common
		Port int
	}
	root := loadTML(t, "name: demo\nport: 80\n")
	if err := To(root, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "demo" || cfg.Port != 80 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestToPointers(t *testing.T) {
	type Limits struct {
		Open int
	}
	var cfg struct {
		Limits *Limits
		Extra  *Limits
		Port   *int
	}
	root := loadTML(t, "limits:\n  open: 32\nport: 8080\n")
	if err := To(root, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Limits == nil || cfg.Limits.Open != 32 {
		t.Errorf("Limits = %+v, want open 32", cfg.Limits)
	}
	if cfg.Extra != nil {
		t.Error("absent section should leave the pointer nil")
	}
	if cfg.Port == nil || *cfg.Port != 8080 {
		t.Errorf("Port = %v, want 8080", cfg.Port)
	}
}

func TestToSlices(t *testing.T) {
	var cfg struct {
		Ints    []int
		Floats  []float64
		Names   []string
		Widened []float64 `stdx:"ints"`
	}
	root := loadTML(t, "ints: 1, 2, 3\nfloats: 1, 2.5\nnames: \"a\", \"b\"\n")
	if err := To(root, &cfg); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, cfg.Ints); diff != "" {
		t.Errorf("Ints (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2.5}, cfg.Floats); diff != "" {
		t.Errorf("Floats (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, cfg.Names); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	// int-pool arrays widen onto float fields
	if diff := cmp.Diff([]float64{1, 2, 3}, cfg.Widened); diff != "" {
		t.Errorf("Widened (-want +got):\n%s", diff)
	}
}

func TestToStructList(t *testing.T) {
	type Rule struct {
		Name string
		Max  int
	}
	var cfg struct {
		Rules []Rule
	}
	root := loadTML(t, "rules:\n  - name: a\n    max: 1\n  - name: b\n    max: 2\n")
	if err := To(root, &cfg); err != nil {
		t.Fatal(err)
	}
	want := []Rule{{Name: "a", Max: 1}, {Name: "b", Max: 2}}
	if diff := cmp.Diff(want, cfg.Rules); diff != "" {
		t.Errorf("Rules (-want +got):\n%s", diff)
	}
}

func TestToMaps(t *testing.T) {
	var cfg struct {
		Env  map[string]string
		Tree map[string]any
	}
	root := loadTML(t, "env:\n  user: alice\n  home: /tmp\ntree:\n  port: 8080\n  sub:\n    on: true\n")
	if err := To(root, &cfg); err != nil {
		t.Fatal(err)
	}
	wantEnv := map[string]string{"user": "alice", "home": "/tmp"}
	if diff := cmp.Diff(wantEnv, cfg.Env); diff != "" {
		t.Errorf("Env (-want +got):\n%s", diff)
	}
	wantTree := map[string]any{"port": int64(8080), "sub": map[string]any{"on": true}}
	if diff := cmp.Diff(wantTree, cfg.Tree); diff != "" {
		t.Errorf("Tree (-want +got):\n%s", diff)
	}
}

func TestToBracketedConversions(t *testing.T) {
	d, err := ini.Load([]byte("[server]\nport = 0x1F90\nflag = yes\nratio = 1.5\nhost = web\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	var cfg struct {
		Server struct {
			Port  int
			Flag  bool
			Ratio float64
			Host  string
		}
	}
	if err := To(d.Root(), &cfg); err != nil {
		t.Fatal(err)
	}
	s := cfg.Server
	if s.Port != 0x1F90 || !s.Flag || s.Ratio != 1.5 || s.Host != "web" {
		t.Errorf("server = %+v", s)
	}
}

func TestToErrors(t *testing.T) {
	root := loadTML(t, "port: 8080\nname: demo\nbig: 300\n")

	var notPtr struct{ Port int }
	if err := To(root, notPtr); err == nil {
		t.Error("non-pointer destination should fail")
	}
	if err := To(root, nil); err == nil {
		t.Error("nil destination should fail")
	}
	var np *struct{ Port int }
	if err := To(root, np); err == nil {
		t.Error("nil pointer destination should fail")
	}

	var wrong struct {
		Port string
	}
	err := To(root, &wrong)
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want a TypeError", err)
	}
	if te.FieldPath != "Port" || te.Expected != "string" {
		t.Errorf("TypeError = %+v", te)
	}

	var narrow struct {
		Big int8
	}
	err = To(root, &narrow)
	var ue *UnmarshalError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want an UnmarshalError", err)
	}
	if ue.FieldPath != "Big" {
		t.Errorf("FieldPath = %q, want Big", ue.FieldPath)
	}
}

func TestToNestedPath(t *testing.T) {
	// error paths carry the full dotted route to the field
	root := loadTML(t, "server:\n  limits:\n    open: many\n")
	var cfg struct {
		Server struct {
			Limits struct {
				Open int
			}
		}
	}
	err := To(root, &cfg)
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want a TypeError", err)
	}
	if te.FieldPath != "Server.Limits.Open" {
		t.Errorf("FieldPath = %q", te.FieldPath)
	}
}
