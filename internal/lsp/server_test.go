package lsp

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/matzehuels/cargoassist/pkg/completion"
	"github.com/matzehuels/cargoassist/pkg/integrations/crates"
)

const testURI = "file:///work/demo/Cargo.toml"

type stubSource struct{}

func (stubSource) Index(_ context.Context, name string) (*crates.Index, error) {
	return &crates.Index{Versions: []crates.Version{
		{Num: "1.0.1", Crate: name, Features: map[string][]string{"derive": nil, "std": nil}},
		{Num: "1.0.0", Crate: name},
	}}, nil
}

func (stubSource) Search(_ context.Context, query string) (*crates.Search, error) {
	return &crates.Search{Crates: []crates.SearchResult{
		{Name: query + "de", Description: "framework", NewestVersion: "1.0.1"},
	}}, nil
}

func newTestServer() *Server {
	return New(completion.NewEngine(stubSource{}, nil, nil), nil, "test")
}

func open(t *testing.T, s *Server, uri, text string) {
	t.Helper()
	err := s.textDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "toml", Version: 1, Text: text},
	})
	if err != nil {
		t.Fatalf("didOpen error = %v", err)
	}
}

func complete(t *testing.T, s *Server, uri string, line, char uint32) protocol.CompletionList {
	t.Helper()
	params := &protocol.CompletionParams{}
	params.TextDocument.URI = uri
	params.Position = protocol.Position{Line: line, Character: char}

	res, err := s.textDocumentCompletion(&glsp.Context{}, params)
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	return res.(protocol.CompletionList)
}

func itemLabels(list protocol.CompletionList) []string {
	out := []string{}
	for _, it := range list.Items {
		out = append(out, it.Label)
	}
	return out
}

func TestInitialize(t *testing.T) {
	s := newTestServer()
	res, err := s.initialize(&glsp.Context{}, &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("initialize error = %v", err)
	}
	result := res.(protocol.InitializeResult)

	if result.Capabilities.CompletionProvider == nil {
		t.Fatal("completion provider not advertised")
	}
	if diff := cmp.Diff(TriggerCharacters, result.Capabilities.CompletionProvider.TriggerCharacters); diff != "" {
		t.Errorf("trigger characters mismatch (-want +got):\n%s", diff)
	}
	if result.ServerInfo == nil || result.ServerInfo.Name != Name || *result.ServerInfo.Version != "test" {
		t.Errorf("server info = %+v", result.ServerInfo)
	}
}

func TestCompletionFlow(t *testing.T) {
	s := newTestServer()
	open(t, s, testURI, "[dependencies]\nserde = \"\"")

	got := complete(t, s, testURI, 1, 9)
	if diff := cmp.Diff([]string{"1.0.1", "1.0.0"}, itemLabels(got)); diff != "" {
		t.Errorf("version labels mismatch (-want +got):\n%s", diff)
	}
	if got.Items[0].Kind == nil || *got.Items[0].Kind != protocol.CompletionItemKindValue {
		t.Errorf("version item kind = %v", got.Items[0].Kind)
	}

	err := s.textDocumentDidChange(&glsp.Context{}, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{Version: 2},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "[dependencies.serde]\nversion = \"1\"\nfeatures = []"},
		},
	})
	if err != nil {
		t.Fatalf("didChange error = %v", err)
	}
	// The change above carried no URI, so the open document is untouched.
	if got := complete(t, s, testURI, 1, 9); len(got.Items) != 2 {
		t.Fatalf("unexpected items after foreign change: %v", itemLabels(got))
	}

	change := &protocol.DidChangeTextDocumentParams{
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "[dependencies.serde]\nversion = \"1\"\nfeatures = []"},
		},
	}
	change.TextDocument.URI = testURI
	if err := s.textDocumentDidChange(&glsp.Context{}, change); err != nil {
		t.Fatalf("didChange error = %v", err)
	}

	got = complete(t, s, testURI, 2, 12)
	if diff := cmp.Diff([]string{"derive", "std"}, itemLabels(got)); diff != "" {
		t.Errorf("feature labels mismatch (-want +got):\n%s", diff)
	}
	if *got.Items[0].InsertText != `"derive"` {
		t.Errorf("feature insert text = %q", *got.Items[0].InsertText)
	}
}

func TestHeaderCompletionAddsVersionLine(t *testing.T) {
	s := newTestServer()
	open(t, s, testURI, "[dependencies.ser]")

	got := complete(t, s, testURI, 0, 17)
	if !got.IsIncomplete || len(got.Items) != 1 {
		t.Fatalf("completion = %+v", got)
	}
	item := got.Items[0]
	want := []protocol.TextEdit{{
		Range:   protocol.Range{Start: protocol.Position{Line: 0, Character: 18}, End: protocol.Position{Line: 0, Character: 18}},
		NewText: "\nversion = \"1.0.1\"",
	}}
	if diff := cmp.Diff(want, item.AdditionalTextEdits); diff != "" {
		t.Errorf("additional edits mismatch (-want +got):\n%s", diff)
	}
	if item.Documentation != "framework" {
		t.Errorf("documentation = %v", item.Documentation)
	}
}

func TestIgnoresOtherFiles(t *testing.T) {
	s := newTestServer()
	open(t, s, "file:///work/pyproject.toml", "[dependencies]\nserde = \"\"")

	if got := complete(t, s, "file:///work/pyproject.toml", 1, 9); len(got.Items) != 0 {
		t.Errorf("non-manifest completion = %v", itemLabels(got))
	}
}

func TestDidCloseForgetsDocument(t *testing.T) {
	s := newTestServer()
	open(t, s, testURI, "[dependencies]\nserde = \"\"")
	complete(t, s, testURI, 1, 9)

	err := s.textDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	if err != nil {
		t.Fatalf("didClose error = %v", err)
	}
	if _, ok := s.text(testURI); ok {
		t.Error("document text should be dropped")
	}
	if keys := s.engine.Workspace().Keys(); len(keys) != 0 {
		t.Errorf("workspace keys after close = %v", keys)
	}
}

func TestApplyEdit(t *testing.T) {
	text := "[dependencies]\nser\n"
	tests := []struct {
		name    string
		r       protocol.Range
		newText string
		want    string
	}{
		{
			name:    "insert",
			r:       protocol.Range{Start: protocol.Position{Line: 1, Character: 3}, End: protocol.Position{Line: 1, Character: 3}},
			newText: "de",
			want:    "[dependencies]\nserde\n",
		},
		{
			name:    "replace across lines",
			r:       protocol.Range{Start: protocol.Position{Line: 0, Character: 13}, End: protocol.Position{Line: 1, Character: 0}},
			newText: ".x]\n",
			want:    "[dependencies.x]\nser\n",
		},
		{
			name:    "past end clamps",
			r:       protocol.Range{Start: protocol.Position{Line: 9, Character: 0}, End: protocol.Position{Line: 9, Character: 4}},
			newText: "[package]",
			want:    "[dependencies]\nser\n[package]",
		},
		{
			name:    "character past line end",
			r:       protocol.Range{Start: protocol.Position{Line: 1, Character: 50}, End: protocol.Position{Line: 1, Character: 50}},
			newText: "de",
			want:    "[dependencies]\nserde\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyEdit(text, tt.r, tt.newText); got != tt.want {
				t.Errorf("applyEdit() = %q, want %q", got, tt.want)
			}
		})
	}
}
