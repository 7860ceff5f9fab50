// Package lsp serves Cargo.toml completions over the Language Server Protocol.
//
// The server keeps the text of every open manifest, answers
// textDocument/completion through a [completion.Engine], and forgets a
// document's structure when the editor closes it. Transport and JSON-RPC
// framing come from glsp; its own logging goes through commonlog.
package lsp

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/matzehuels/cargoassist/pkg/completion"
)

// Name is the server name reported to clients.
const Name = "cargoassist"

// TriggerCharacters open the completion popup without an explicit request.
var TriggerCharacters = []string{`"`, "=", "[", ".", " ", ","}

// Server is the language server state.
type Server struct {
	engine  *completion.Engine
	logger  *log.Logger
	version string
	handler protocol.Handler

	mu   sync.RWMutex
	docs map[protocol.DocumentUri]string
}

// New creates a language server answering with engine.
func New(engine *completion.Engine, logger *log.Logger, version string) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		engine:  engine,
		logger:  logger,
		version: version,
		docs:    make(map[protocol.DocumentUri]string),
	}
	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentCompletion: s.textDocumentCompletion,
	}
	return s
}

func (s *Server) glsp(debug bool) *server.Server {
	return server.NewServer(&s.handler, Name, debug)
}

// RunStdio serves a single client over stdin and stdout until it disconnects.
func (s *Server) RunStdio(debug bool) error {
	return s.glsp(debug).RunStdio()
}

// RunTCP serves clients connecting to address.
func (s *Server) RunTCP(address string, debug bool) error {
	return s.glsp(debug).RunTCP(address)
}
