// Package lsp serves parse diagnostics and formatting over the Language
// Server Protocol.
package lsp

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/parsec/format"
	"github.com/dhamidi/parsec/grammar"
	"github.com/dhamidi/parsec/parsec"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "parsec"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	docs    *store
	log     commonlog.Logger
}

func New(version string) *Server {
	ls := &Server{
		version: version,
		docs:    newStore(),
		log:     commonlog.GetLogger("parsec.lsp"),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentFormatting: ls.textDocumentFormatting,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) RunTCP(address string) error {
	return ls.server.RunTCP(address)
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentFormattingProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.log.Info("client initialized")
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	ls.log.Infof("shutting down with %d open documents", len(ls.docs.uris()))
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	ls.docs.put(doc.URI, doc.Text, doc.Version)
	ls.publish(ctx, doc.URI)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	doc, _ := ls.docs.get(uri)
	text := doc.text
	for _, change := range params.ContentChanges {
		text = applyChange(text, change)
	}
	ls.docs.put(uri, text, params.TextDocument.Version)
	ls.publish(ctx, uri)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	ls.docs.remove(uri)
	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	if params.Text != nil {
		doc, _ := ls.docs.get(uri)
		ls.docs.put(uri, *params.Text, doc.version)
	}
	ls.publish(ctx, uri)
	return nil
}

func (ls *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc, ok := ls.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return Format(doc.text, params.Options), nil
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri) {
	doc, ok := ls.docs.get(uri)
	if !ok {
		return
	}
	diagnostics := Diagnose(doc.text)
	ls.log.Debugf("%s: %d diagnostics", uri, len(diagnostics))

	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	}
	if doc.version >= 0 {
		version := protocol.UInteger(doc.version)
		params.Version = &version
	}
	ctx.Notify(string(protocol.ServerTextDocumentPublishDiagnostics), params)
}

// Diagnose parses text and reports at most one error, covering the
// character where the parse stopped. A rejected character is reported after
// it has been consumed, so those errors cover the character before the
// stop. A document that parses yields an empty list.
func Diagnose(text string) []protocol.Diagnostic {
	_, err := grammar.Parse(text)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	var perr *parsec.ParseError
	if !errors.As(err, &perr) {
		return []protocol.Diagnostic{newDiagnostic(protocol.Range{}, err.Error())}
	}
	start := perr.Position.Offset
	if start > 0 && len(perr.Expected) > 0 && strings.HasPrefix(perr.Expected[0], "unexpect ") {
		start--
	}
	end := start
	if end < len(text) {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	r := protocol.Range{Start: position(text, start), End: position(text, end)}
	return []protocol.Diagnostic{newDiagnostic(r, strings.Join(perr.Expected, "; "))}
}

func newDiagnostic(r protocol.Range, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// Format returns one edit replacing the whole document with its pretty
// rendering, or no edits when the document does not parse.
func Format(text string, opts protocol.FormattingOptions) []protocol.TextEdit {
	v, err := grammar.Parse(text)
	if err != nil {
		return nil
	}
	enc := format.NewTextEncoder(nil)
	enc.SetIndent(indentFor(opts))
	pretty, err := enc.Marshal(v)
	if err != nil {
		return nil
	}
	return []protocol.TextEdit{{Range: wholeRange(text), NewText: string(pretty)}}
}

func indentFor(opts protocol.FormattingOptions) string {
	if spaces, ok := opts[protocol.FormattingOptionInsertSpaces].(bool); ok && !spaces {
		return "\t"
	}
	size := 2
	switch n := opts[protocol.FormattingOptionTabSize].(type) {
	case float64:
		size = int(n)
	case int:
		size = n
	case protocol.Integer:
		size = int(n)
	case protocol.UInteger:
		size = int(n)
	}
	if size < 1 {
		size = 2
	}
	return strings.Repeat(" ", size)
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
