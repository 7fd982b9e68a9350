package main

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/marciovmf/stdx-go/doc"
	"github.com/marciovmf/stdx-go/format"
	"github.com/marciovmf/stdx-go/ini"
	"github.com/marciovmf/stdx-go/tml"
	"github.com/marciovmf/stdx-go/token"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	format  format.Format
	// rec is the first load error, nil when the content parses.
	rec *token.ErrorRecord
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	f := formatOf(uri)
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
		format:  f,
		rec:     loadRecord(content, f),
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// formatOf keys off the uri suffix. Everything that is not bracketed
// config is treated as the indented dialect.
func formatOf(uri string) format.Format {
	if f, err := format.FromPath(uri); err == nil && f == format.INIFormat {
		return format.INIFormat
	}
	return format.TMLFormat
}

// loadRecord parses content and returns the structured error record,
// or nil when the content is well formed. The parsed document itself
// is released right away, the server only tracks validity.
func loadRecord(content string, f format.Format) *token.ErrorRecord {
	var (
		d   *doc.Document
		err error
	)
	if f == format.INIFormat {
		d, err = ini.Load([]byte(content))
	} else {
		d, err = tml.Load([]byte(content))
	}
	if err == nil {
		d.Close()
		return nil
	}
	rec := &token.ErrorRecord{}
	if !errors.As(err, &rec) {
		rec = &token.ErrorRecord{Code: token.Syntax, Line: 1, Col: 1, Msg: err.Error()}
	}
	return rec
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diagnostics := validate(doc)
	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

// validate maps the stored error record to protocol diagnostics. The
// record's line and column are 1-based, the protocol's are 0-based.
func validate(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.rec == nil {
		return diagnostics
	}
	line := uint32(0)
	if doc.rec.Line > 0 {
		line = uint32(doc.rec.Line - 1)
	}
	col := uint32(0)
	if doc.rec.Col > 0 {
		col = uint32(doc.rec.Col - 1)
	}
	diagnostics = append(diagnostics, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: protocol.DiagnosticSeverityError,
		Code:     doc.rec.Code.String(),
		Message:  doc.rec.Msg,
		Source:   "stdx",
	})
	return diagnostics
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}
	content := doc.content
	for _, change := range params.ContentChanges {
		rangeVal := change.Range
		if rangeVal.Start.Line == 0 && rangeVal.Start.Character == 0 &&
			rangeVal.End.Line == 0 && rangeVal.End.Character == 0 && change.RangeLength == 0 {
			// a zero range is a full document replacement
			content = change.Text
			continue
		}
		startOffset := lineColToOffset(content, int(rangeVal.Start.Line), int(rangeVal.Start.Character))
		endOffset := lineColToOffset(content, int(rangeVal.End.Line), int(rangeVal.End.Character))
		if startOffset <= len(content) && endOffset <= len(content) && startOffset <= endOffset {
			content = content[:startOffset] + change.Text + content[endOffset:]
		}
	}
	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// lineColToOffset resolves a 0-based line and utf-16-ish column to a
// byte offset. Columns are counted in runes, which matches editors for
// everything outside the astral planes.
func lineColToOffset(content string, line, col int) int {
	off := 0
	for line > 0 {
		i := strings.IndexByte(content[off:], '\n')
		if i < 0 {
			return len(content)
		}
		off += i + 1
		line--
	}
	for i, r := range content[off:] {
		if col == 0 {
			return off + i
		}
		col--
		if r == '\n' {
			return off + i
		}
	}
	return len(content)
}
