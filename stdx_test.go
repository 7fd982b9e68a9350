package stdx

import (
	"strings"
	"testing"
)

func TestFrontDoor(t *testing.T) {
	id, err := LoadINI([]byte("[server]\nport = 8080\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer id.Close()
	if got := id.Root().Section("server").Int64("port", 0); got != 8080 {
		t.Errorf("ini port = %d, want 8080", got)
	}

	td, err := LoadTML([]byte("server:\n  port: 9090\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer td.Close()
	if got := td.Root().Section("server").Int64("port", 0); got != 9090 {
		t.Errorf("tml port = %d, want 9090", got)
	}

	merged, err := Merge(id.Root(), td.Root())
	if err != nil {
		t.Fatal(err)
	}
	defer merged.Close()
	if got := merged.Root().Section("server").Int64("port", 0); got != 9090 {
		t.Errorf("merged port = %d, want 9090", got)
	}

	if edits := Diff(id.Root(), td.Root()); len(edits) != 1 {
		t.Errorf("edits = %v, want one port replace", edits)
	}

	if got := MarkdownString("# Title\n"); !strings.Contains(got, "<h1>Title</h1>") {
		t.Errorf("markdown = %q", got)
	}
}
