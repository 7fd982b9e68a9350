package diff

import (
	"testing"

	"github.com/marciovmf/stdx-go/tml"
)

func TestDocuments(t *testing.T) {
	from, err := tml.Load([]byte("a: 1\nb: 2\nserver:\n  port: 80\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer from.Close()
	to, err := tml.Load([]byte("a: 1\nb: 3\nserver:\n  port: 80\n  host: web\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer to.Close()

	edits := Documents(from.Root(), to.Root())
	want := []Edit{
		{Op: Replace, Path: "b", From: "2", To: "3"},
		{Op: Insert, Path: "server.host", To: "web"},
	}
	if len(edits) != len(want) {
		t.Fatalf("edits = %v, want %v", edits, want)
	}
	for i := range want {
		if edits[i] != want[i] {
			t.Errorf("edits[%d] = %+v, want %+v", i, edits[i], want[i])
		}
	}
}

func TestDocumentsEqual(t *testing.T) {
	a, err := tml.Load([]byte("x: 1\ny:\n  z: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := tml.Load([]byte("x: 1\ny:\n  z: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if edits := Documents(a.Root(), b.Root()); len(edits) != 0 {
		t.Errorf("identical documents diff = %v, want none", edits)
	}
}

func TestDocumentsDelete(t *testing.T) {
	from, err := tml.Load([]byte("keep: 1\ngone: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer from.Close()
	to, err := tml.Load([]byte("keep: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer to.Close()

	edits := Documents(from.Root(), to.Root())
	if len(edits) != 1 {
		t.Fatalf("edits = %v, want one delete", edits)
	}
	e := edits[0]
	if e.Op != Delete || e.Path != "gone" || e.From != "2" {
		t.Errorf("edit = %+v, want delete of gone", e)
	}
}

func TestArrayChange(t *testing.T) {
	from, err := tml.Load([]byte("vals: 1, 2, 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer from.Close()
	to, err := tml.Load([]byte("vals: 1, 2, 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	defer to.Close()

	edits := Documents(from.Root(), to.Root())
	if len(edits) != 1 || edits[0].Op != Replace || edits[0].Path != "vals" {
		t.Fatalf("edits = %v, want one replace of vals", edits)
	}
	if edits[0].From != "1, 2, 3" || edits[0].To != "1, 2, 4" {
		t.Errorf("edit = %+v", edits[0])
	}
}

func TestEditString(t *testing.T) {
	tests := []struct {
		e Edit
		s string
	}{
		{Edit{Op: Insert, Path: "a", To: "1"}, "+ a: 1"},
		{Edit{Op: Delete, Path: "b", From: "2"}, "- b: 2"},
		{Edit{Op: Replace, Path: "c", From: "2", To: "3"}, "~ c: 2 -> 3"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.s {
			t.Errorf("String() = %q, want %q", got, tt.s)
		}
	}
}
