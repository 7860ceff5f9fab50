package lsp

import (
	"context"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/matzehuels/cargoassist/pkg/completion"
	"github.com/matzehuels/cargoassist/pkg/errors"
	"github.com/matzehuels/cargoassist/pkg/manifest"
)

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: TriggerCharacters,
	}

	if params.ClientInfo != nil {
		s.logger.Info("client connected", "name", params.ClientInfo.Name)
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(*glsp.Context, *protocol.InitializedParams) error {
	s.logger.Debug("server initialized")
	return nil
}

func (s *Server) shutdown(*glsp.Context) error {
	s.logger.Info("server shutting down")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	if !isManifest(uri) {
		return nil
	}
	s.setText(uri, params.TextDocument.Text)
	s.logger.Debug("opened", "uri", uri)
	return nil
}

func (s *Server) textDocumentDidChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	text, ok := s.text(uri)
	if !ok {
		return nil
	}

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			text = applyEdit(text, *c.Range, c.Text)
		}
	}
	s.setText(uri, text)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
	s.engine.Workspace().Forget(uri)
	s.logger.Debug("closed", "uri", uri)
	return nil
}

func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI
	text, ok := s.text(uri)
	if !ok {
		return protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
	}

	list := s.engine.Complete(context.Background(), completion.Request{
		Key:      uri,
		Document: manifest.NewTextDocument(text),
		Position: manifest.Position{
			Line:      int(params.Position.Line),
			Character: int(params.Position.Character),
		},
	})
	return toProtocolList(list), nil
}

func (s *Server) text(uri protocol.DocumentUri) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[uri]
	return text, ok
}

func (s *Server) setText(uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = text
}

// isManifest reports whether uri names a Cargo.toml.
func isManifest(uri protocol.DocumentUri) bool {
	path := strings.TrimPrefix(uri, "file://")
	return errors.ValidateManifestFilename(path) == nil
}

// applyEdit replaces the text in r with newText. Characters are treated as
// byte offsets; positions past the end of a line or document are clamped.
func applyEdit(text string, r protocol.Range, newText string) string {
	start := offset(text, r.Start)
	end := offset(text, r.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + newText + text[end:]
}

func offset(text string, pos protocol.Position) int {
	off := 0
	for line := uint32(0); line < pos.Line; line++ {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return len(text)
		}
		off += i + 1
	}
	lineEnd := len(text)
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		lineEnd = off + i
	}
	return min(off+int(pos.Character), lineEnd)
}
