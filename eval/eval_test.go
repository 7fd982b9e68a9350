package eval

import (
	"testing"

	"github.com/marciovmf/stdx-go/tml"
)

const sample = "name: demo\nport: 8080\nratio: 0.5\nserver:\n  host: local\n  workers: 4\n"

func TestEval(t *testing.T) {
	d, err := tml.Load([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	root := d.Root()

	tests := []struct {
		src string
		e   any
	}{
		{"port", int64(8080)},
		{"port + 1", int64(8081)},
		{"name", "demo"},
		{"ratio * 2.0", 1.0},
		{"server.workers", int64(4)},
		{"server.host == 'local'", true},
	}
	for _, tt := range tests {
		got, err := Eval(root, tt.src)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tt.src, err)
		}
		if got != tt.e {
			t.Errorf("Eval(%q) = %v (%T), want %v (%T)", tt.src, got, got, tt.e, tt.e)
		}
	}
}

func TestEvalFunctions(t *testing.T) {
	d, err := tml.Load([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	root := d.Root()

	got, err := Eval(root, `get("server.host")`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "local" {
		t.Errorf("get(server.host) = %v, want local", got)
	}
	got, err = Eval(root, `has("server.host") && !has("server.nope")`)
	if err != nil {
		t.Fatal(err)
	}
	if got != true {
		t.Errorf("has checks = %v, want true", got)
	}
	if _, err := Eval(root, `get("server.nope")`); err == nil {
		t.Error("get on a missing path should fail")
	}

	server := root.Section("server")
	got, err = Eval(server, "whereami()")
	if err != nil {
		t.Fatal(err)
	}
	if got != "server" {
		t.Errorf("whereami = %v, want server", got)
	}
}

func TestAssert(t *testing.T) {
	d, err := tml.Load([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	root := d.Root()

	ok, err := Assert(root, "port > 1024 && port < 65536")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("assertion should hold")
	}
	ok, err = Assert(root, "port == 80")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("assertion should fail")
	}
	if _, err := Assert(root, "port"); err == nil {
		t.Error("non-boolean assert should error at compile")
	}
}

func TestExpand(t *testing.T) {
	d, err := tml.Load([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	root := d.Root()

	tests := []struct {
		in, e string
	}{
		{"plain text", "plain text"},
		{"port is ${port}", "port is 8080"},
		{"${name}-${port}", "demo-8080"},
		{"cost $$5", "cost $5"},
		{"lone $x passes", "lone $x passes"},
	}
	for _, tt := range tests {
		got, err := Expand(root, tt.in)
		if err != nil {
			t.Fatalf("Expand(%q): %v", tt.in, err)
		}
		if got != tt.e {
			t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.e)
		}
	}
	if _, err := Expand(root, "broken ${port"); err == nil {
		t.Error("unterminated span should fail")
	}
}
