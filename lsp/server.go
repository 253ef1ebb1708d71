// Package lsp serves parse diagnostics for a compiled grammar over the
// Language Server Protocol.
package lsp

import (
	"errors"
	"sync"

	"github.com/dhamidi/pcx/grammar"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "pcx"

var log = commonlog.GetLogger("pcx.lsp")

// Server checks every open document against a grammar and publishes one
// diagnostic per document at the point where parsing failed.
type Server struct {
	grammar *grammar.Grammar
	handler protocol.Handler
	server  *server.Server
	version string

	// Handlers may run on separate goroutines; a compiled grammar must
	// not be used concurrently.
	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

func NewServer(g *grammar.Grammar, version string) *Server {
	ls := &Server{
		grammar: g,
		version: version,
		docs:    make(map[protocol.DocumentUri]string),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
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

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("checking documents against production %s", ls.grammar.Start())
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()

	publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}

	ls.mu.Lock()
	text, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()
	if ok {
		ls.update(ctx, params.TextDocument.URI, text)
	}
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	diagnostics := ls.Diagnose(text)
	ls.mu.Unlock()

	log.Debugf("%s: %d diagnostic(s)", uri, len(diagnostics))
	publish(ctx, uri, diagnostics)
}

// Diagnose parses text and converts a syntax error into a diagnostic. It
// returns an empty slice when text parses.
func (ls *Server) Diagnose(text string) []protocol.Diagnostic {
	src := []rune(text)
	_, err := ls.grammar.Parse(src)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	var se *grammar.SyntaxError
	if !errors.As(err, &se) {
		return []protocol.Diagnostic{newDiagnostic(protocol.Range{}, err.Error())}
	}

	// The reported position is just past the examined item, so the range
	// covers that item.
	end := se.Err.Position
	start := end
	if start > 0 {
		start--
	}
	r := protocol.Range{
		Start: toProtocolPosition(src, int(start)),
		End:   toProtocolPosition(src, int(end)),
	}
	return []protocol.Diagnostic{newDiagnostic(r, "expected "+se.Expected)}
}

func newDiagnostic(r protocol.Range, message string) protocol.Diagnostic {
	var severity protocol.DiagnosticSeverity = protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    r,
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
