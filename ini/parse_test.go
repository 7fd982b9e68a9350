package ini

import (
	"errors"
	"testing"

	"github.com/marciovmf/stdx-go/token"
)

type loadTest struct {
	name string
	in   string
	code token.Code
	line int
	col  int
}

func TestLoadErrors(t *testing.T) {
	tests := []loadTest{
		{
			name: "empty input",
			in:   "",
			code: token.IO, line: 1, col: 1,
		},
		{
			name: "missing rbracket",
			in:   "[webserver\n",
			code: token.ExpectRBracket, line: 1, col: 11,
		},
		{
			name: "missing rbracket later line",
			in:   "[ok]\nport = 1\n[bad\n",
			code: token.ExpectRBracket, line: 3, col: 5,
		},
		{
			name: "no equals",
			in:   "[s]\njust some text\n",
			code: token.ExpectEquals, line: 2, col: 15,
		},
		{
			name: "unterminated quote",
			in:   "key = \"abc\n",
			code: token.UntermString, line: 1, col: 7,
		},
		{
			name: "escaped backslash does not reopen quote",
			in:   "key = \"a\\\\\" ; done\nnext = \"open\n",
			code: token.UntermString, line: 2, col: 8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load([]byte(tt.in))
			if err == nil {
				d.Close()
				t.Fatalf("Load(%q) succeeded, want %v", tt.in, tt.code)
			}
			var rec *token.ErrorRecord
			if !errors.As(err, &rec) {
				t.Fatalf("Load(%q) error is %T, want *token.ErrorRecord", tt.in, err)
			}
			if rec.Code != tt.code || rec.Line != tt.line || rec.Col != tt.col {
				t.Errorf("Load(%q) = %v at (%d, %d), want %v at (%d, %d)",
					tt.in, rec.Code, rec.Line, rec.Col, tt.code, tt.line, tt.col)
			}
		})
	}
}

func TestLoadFlat(t *testing.T) {
	in := "[webserver]\nport = 8080\ndocroot = \"./site\"\nlist_dirs = yes\n"
	d, err := Load([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	// implicit global section plus [webserver]
	if n := d.SectionCount(); n != 2 {
		t.Fatalf("SectionCount = %d, want 2", n)
	}
	web := d.Root().Section("webserver")
	if !web.Valid() {
		t.Fatal("webserver section not found")
	}
	if got := web.Int64("port", 0); got != 8080 {
		t.Errorf("port = %d, want 8080", got)
	}
	if got := web.String("docroot", ""); got != "./site" {
		t.Errorf("docroot = %q, want %q", got, "./site")
	}
	if got := web.Bool("list_dirs", false); !got {
		t.Error("list_dirs = false, want true")
	}
}

func TestGlobalSection(t *testing.T) {
	in := "top = 1\n[named]\nother = 2\n"
	d, err := Load([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	global := d.Root().Section("")
	if !global.Valid() {
		t.Fatal("global section not found")
	}
	if got := global.Int64("top", 0); got != 1 {
		t.Errorf("top = %d, want 1", got)
	}
	if got := d.Root().Section("named").Int64("other", 0); got != 2 {
		t.Errorf("other = %d, want 2", got)
	}
}

func TestQuotedValues(t *testing.T) {
	tests := []struct {
		name string
		in   string
		key  string
		e    string
	}{
		{
			name: "comment markers inside quotes survive",
			in:   "key = \"a;b#c\"   ; trailing\n",
			key:  "key", e: "a;b#c",
		},
		{
			name: "escapes decode",
			in:   `key = "line1\nline2\t\"q\" c:\\tmp"` + "\n",
			key:  "key", e: "line1\nline2\t\"q\" c:\\tmp",
		},
		{
			name: "unknown escape passes through",
			in:   `key = "a\qb"` + "\n",
			key:  "key", e: "aqb",
		},
		{
			name: "unquoted trims whitespace",
			in:   "key =   spaced out  \n",
			key:  "key", e: "spaced out",
		},
		{
			name: "inline comment chomps unquoted value",
			in:   "key = value # comment\n",
			key:  "key", e: "value",
		},
		{
			name: "empty value",
			in:   "key =\n",
			key:  "key", e: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			defer d.Close()
			got := d.Root().Section("").String(tt.key, "<missing>")
			if got != tt.e {
				t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.e)
			}
		})
	}
}

func TestComments(t *testing.T) {
	in := "; full line\n# also full line\n  ; indented\nkey = 1\n"
	d, err := Load([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	global := d.Root().Section("")
	if n := global.EntryCount(); n != 1 {
		t.Fatalf("EntryCount = %d, want 1", n)
	}
}

func TestRepeatedKeyLastWins(t *testing.T) {
	in := "[s]\nkey = first\nkey = second\n"
	d, err := Load([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	s := d.Root().Section("s")
	if got := s.String("key", ""); got != "second" {
		t.Errorf("key = %q, want %q", got, "second")
	}
	// both definitions stay visible to iteration
	if n := s.EntryCount(); n != 2 {
		t.Errorf("EntryCount = %d, want 2", n)
	}
}

func TestReopenedSection(t *testing.T) {
	in := "[a]\nx = 1\n[b]\ny = 2\n[a]\nz = 3\n"
	d, err := Load([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if n := d.SectionCount(); n != 3 {
		t.Fatalf("SectionCount = %d, want 3", n)
	}
	a := d.Root().Section("a")
	if n := a.EntryCount(); n != 2 {
		t.Fatalf("a EntryCount = %d, want 2", n)
	}
	if got := a.Int64("x", 0); got != 1 {
		t.Errorf("a.x = %d, want 1", got)
	}
	if got := a.Int64("z", 0); got != 3 {
		t.Errorf("a.z = %d, want 3", got)
	}
	// source order: key from the first opening comes first
	if got := string(a.KeyAt(0)); got != "x" {
		t.Errorf("KeyAt(0) = %q, want x", got)
	}
	if got := string(a.KeyAt(1)); got != "z" {
		t.Errorf("KeyAt(1) = %q, want z", got)
	}
}

func TestTypedGetters(t *testing.T) {
	in := "[n]\ndec = 42\nneg = -7\nhex = 0x1F\noct = 010\nf = 2.5\nexp = 1e3\n" +
		"t1 = on\nt2 = Yes\nf1 = Off\nbad = zzz\n"
	d, err := Load([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	n := d.Root().Section("n")

	intTests := []struct {
		key string
		e   int64
	}{
		{"dec", 42}, {"neg", -7}, {"hex", 31}, {"oct", 8},
	}
	for _, tt := range intTests {
		if got := n.Int64(tt.key, -999); got != tt.e {
			t.Errorf("Int64(%q) = %d, want %d", tt.key, got, tt.e)
		}
	}
	if got := n.Float64("f", 0); got != 2.5 {
		t.Errorf("Float64(f) = %v, want 2.5", got)
	}
	if got := n.Float64("exp", 0); got != 1000 {
		t.Errorf("Float64(exp) = %v, want 1000", got)
	}
	if !n.Bool("t1", false) || !n.Bool("t2", false) {
		t.Error("on/Yes should read true")
	}
	if n.Bool("f1", true) {
		t.Error("Off should read false")
	}

	// conversion failures fall back to the default
	if got := n.Int64("bad", 17); got != 17 {
		t.Errorf("Int64(bad) = %d, want default 17", got)
	}
	if got := n.Int64("missing", 17); got != 17 {
		t.Errorf("Int64(missing) = %d, want default 17", got)
	}
	if got := n.Bool("bad", true); !got {
		t.Error("Bool(bad) should fall back to default")
	}
}

func TestCRLFInput(t *testing.T) {
	in := "[s]\r\nkey = v\r\nnum = 3\r\n"
	d, err := Load([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	s := d.Root().Section("s")
	if got := s.String("key", ""); got != "v" {
		t.Errorf("key = %q, want v", got)
	}
	if got := s.Int64("num", 0); got != 3 {
		t.Errorf("num = %d, want 3", got)
	}
}

func TestValueIsInputView(t *testing.T) {
	in := []byte("[s]\nkey = payload\n")
	d, err := Load(in)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	got := d.Root().Section("s").Bytes("key", nil)
	if string(got) != "payload" {
		t.Fatalf("key = %q", got)
	}
	if &got[0] != &in[10] {
		t.Error("value is not a view into the input buffer")
	}
}

func TestSectionNameTrim(t *testing.T) {
	in := "[  padded name  ]\nk = 1\n"
	d, err := Load([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	s := d.Root().Section("padded name")
	if !s.Valid() {
		t.Fatal("trimmed section name not found")
	}
	if got := string(s.Name()); got != "padded name" {
		t.Errorf("Name = %q, want %q", got, "padded name")
	}
}
