package main

import (
	"bytes"
	"context"

	"go.lsp.dev/protocol"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/encode"
	"github.com/marciovmf/stdx-go/format"
	"github.com/marciovmf/stdx-go/ini"
	"github.com/marciovmf/stdx-go/tml"
)

// Formatting reloads the document and re-encodes it in its own
// dialect, replacing the whole text with the canonical rendering.
func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	d := s.docs.get(string(params.TextDocument.URI))
	if d == nil || d.rec != nil {
		// broken documents keep their text untouched
		return nil, nil
	}
	var (
		parsed *doc.Document
		err    error
	)
	if d.format == format.INIFormat {
		parsed, err = ini.Load([]byte(d.content))
	} else {
		parsed, err = tml.Load([]byte(d.content))
	}
	if err != nil {
		return nil, nil
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := encode.Encode(parsed.Root(), &buf, encode.EncodeFormat(d.format)); err != nil {
		return nil, nil
	}
	formatted := buf.String()
	if formatted == d.content {
		return []protocol.TextEdit{}, nil
	}

	lines := bytes.Count([]byte(d.content), []byte("\n"))
	if len(d.content) > 0 && d.content[len(d.content)-1] != '\n' {
		lines++
	}
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      uint32(lines),
					Character: 0,
				},
			},
			NewText: formatted,
		},
	}, nil
}
