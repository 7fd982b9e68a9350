package tml

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/marciovmf/stdx-go/encode"
	"github.com/marciovmf/stdx-go/token"
)

// TestCorpus runs the testdata archive: every case either re-encodes to
// its golden text, with the golden a fixed point of the cycle, or fails
// with the named code.
func TestCorpus(t *testing.T) {
	ar, err := txtar.ParseFile(filepath.Join("testdata", "corpus.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	files := make(map[string][]byte, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = f.Data
	}
	for name, data := range files {
		base, ok := strings.CutSuffix(name, ".tml")
		if !ok {
			continue
		}
		t.Run(base, func(t *testing.T) {
			if wantCode, ok := files[base+".err"]; ok {
				_, err := Load(data)
				var rec *token.ErrorRecord
				if !errors.As(err, &rec) {
					t.Fatalf("Load err = %v, want an ErrorRecord", err)
				}
				if got, want := rec.Code.String(), strings.TrimSpace(string(wantCode)); got != want {
					t.Errorf("code = %s, want %s", got, want)
				}
				return
			}
			golden, ok := files[base+".golden"]
			if !ok {
				t.Fatalf("case %s has neither .golden nor .err", base)
			}
			d, err := Load(data)
			if err != nil {
				t.Fatal(err)
			}
			defer d.Close()
			var b bytes.Buffer
			if err := encode.Encode(d.Root(), &b); err != nil {
				t.Fatal(err)
			}
			if b.String() != string(golden) {
				t.Fatalf("encoded:\n%s\nwant:\n%s", b.String(), golden)
			}
			d2, err := Load(b.Bytes())
			if err != nil {
				t.Fatalf("golden text does not reload: %v", err)
			}
			defer d2.Close()
			var b2 bytes.Buffer
			if err := encode.Encode(d2.Root(), &b2); err != nil {
				t.Fatal(err)
			}
			if b2.String() != b.String() {
				t.Errorf("golden is not a fixed point:\n%s\nreloaded to:\n%s", b.String(), b2.String())
			}
		})
	}
}
