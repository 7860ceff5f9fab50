package completion

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargoassist/pkg/errors"
	"github.com/matzehuels/cargoassist/pkg/integrations/crates"
	"github.com/matzehuels/cargoassist/pkg/manifest"
	"github.com/matzehuels/cargoassist/pkg/observability"
)

// Source provides registry data. [cratedata.Service] implements it.
type Source interface {
	Index(ctx context.Context, name string) (*crates.Index, error)
	Search(ctx context.Context, query string) (*crates.Search, error)
}

// Request is one completion request.
type Request struct {
	// Key identifies the document (a URI or path) for structure memoization.
	// An empty key scans the document without memoizing.
	Key      string
	Document manifest.Document
	Position manifest.Position
}

// Engine answers completion requests. It is safe for concurrent use.
type Engine struct {
	source    Source
	workspace *manifest.Workspace
	logger    *log.Logger
}

// NewEngine creates an Engine. A nil workspace gets a private one; a nil
// logger discards output.
func NewEngine(source Source, workspace *manifest.Workspace, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if workspace == nil {
		workspace = manifest.NewWorkspace(logger)
	}
	return &Engine{source: source, workspace: workspace, logger: logger}
}

// Workspace returns the structure memo used by the engine.
func (e *Engine) Workspace() *manifest.Workspace { return e.workspace }

// Structure returns the scanned structure of the request's document.
func (e *Engine) Structure(req Request) *manifest.Structure {
	if req.Key == "" {
		return manifest.Scan(req.Document)
	}
	return e.workspace.Structure(req.Key, req.Document)
}

// Resolve classifies the cursor of req.
func (e *Engine) Resolve(req Request) Context {
	return Resolve(e.Structure(req), req.Document, req.Position)
}

// Complete resolves and answers req. It always returns a list; failures
// yield an empty one and are logged.
func (e *Engine) Complete(ctx context.Context, req Request) List {
	list, _ := e.CompleteContext(ctx, req)
	return list
}

// CompleteContext is Complete that also returns the resolved context.
func (e *Engine) CompleteContext(ctx context.Context, req Request) (List, Context) {
	hooks := observability.Completion()
	hooks.OnCompletionStart(ctx, req.Key)
	start := time.Now()

	c := e.Resolve(req)
	list, err := e.Build(ctx, c)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.ErrCodeFetchFailure:
			e.logger.Warn("completion failed", "kind", c.Kind(), "error", err)
		default:
			e.logger.Debug("no completions", "kind", c.Kind(), "error", err)
		}
		list = List{Incomplete: list.Incomplete}
	}
	if list.Items == nil {
		list.Items = []Item{}
	}

	hooks.OnCompletionComplete(ctx, c.Kind(), len(list.Items), time.Since(start), err)
	e.logger.Debug("completion", "key", req.Key, "line", req.Position.Line,
		"char", req.Position.Character, "kind", c.Kind(), "items", len(list.Items))
	return list, c
}

// Build fetches the data a context needs and builds its list. Errors are
// PARSE_AMBIGUOUS for None contexts with a reason, VERSION_NOT_FOUND when a
// feature array names an unknown version, and FETCH_FAILURE or
// INVALID_PACKAGE from the source.
func (e *Engine) Build(ctx context.Context, c Context) (List, error) {
	switch c := c.(type) {
	case BareNameEntry:
		if c.Partial == "" {
			return List{Incomplete: true}, nil
		}
		return e.searchList(ctx, c.Partial, c)

	case MultilineHeader:
		return e.searchList(ctx, c.Name, c)

	case InlineVersionString:
		return e.versionList(ctx, c.Name)

	case MultilineVersion:
		return e.versionList(ctx, c.Name)

	case InlineFeatureArray:
		return e.featureList(ctx, c.Name, c.Version)

	case MultilineFeatureArray:
		return e.featureList(ctx, c.Name, c.Version)

	case None:
		if c.Reason != "" {
			return List{}, errors.New(errors.ErrCodeParseAmbiguous, "%s", c.Reason)
		}
	}
	return List{}, nil
}

func (e *Engine) searchList(ctx context.Context, query string, c Context) (List, error) {
	list := List{Incomplete: true}
	res, err := e.source.Search(ctx, query)
	if err != nil {
		return list, err
	}
	list.Items = CrateItems(res, c)
	return list, nil
}

func (e *Engine) versionList(ctx context.Context, name string) (List, error) {
	idx, err := e.source.Index(ctx, name)
	if err != nil {
		return List{}, err
	}
	return List{Items: VersionItems(idx)}, nil
}

func (e *Engine) featureList(ctx context.Context, name, version string) (List, error) {
	idx, err := e.source.Index(ctx, name)
	if err != nil {
		return List{}, err
	}
	v, err := MatchVersion(idx, version)
	if err != nil {
		return List{}, errors.Wrap(errors.ErrCodeVersionNotFound, err, "features of %s", name)
	}
	return List{Items: FeatureItems(v)}, nil
}
