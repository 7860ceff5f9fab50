package manifest

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ManifestName is the file name cargo looks for.
const ManifestName = "Cargo.toml"

// DefaultWorkspaceCapacity is the number of manifests a [Workspace] keeps
// before evicting the least recently used one.
const DefaultWorkspaceCapacity = 256

// Workspace memoizes the structure of each open manifest, keyed by path or
// URI. A structure is rebuilt only when the document text differs from the
// text it was built from. It also tracks the workspace head: the most recent
// manifest seen with a [workspace] table.
//
// The memo is bounded; evicting the head clears it. A Workspace is safe for
// concurrent use.
type Workspace struct {
	mu      sync.RWMutex
	entries *lru.Cache[string, entry]
	head    string
	logger  *log.Logger
}

type entry struct {
	text      string
	structure *Structure
}

// NewWorkspace returns an empty workspace with [DefaultWorkspaceCapacity].
// A nil logger discards output.
func NewWorkspace(logger *log.Logger) *Workspace {
	return NewWorkspaceSize(logger, DefaultWorkspaceCapacity)
}

// NewWorkspaceSize returns an empty workspace holding at most capacity
// manifests. Non-positive capacities select the default.
func NewWorkspaceSize(logger *log.Logger, capacity int) *Workspace {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if capacity <= 0 {
		capacity = DefaultWorkspaceCapacity
	}
	w := &Workspace{logger: logger}
	// Add and Remove run under w.mu, so the callback may touch head directly.
	w.entries, _ = lru.NewWithEvict[string, entry](capacity, func(key string, _ entry) {
		if w.head == key {
			w.head = ""
		}
	})
	return w
}

// Structure returns the memoized structure for key, scanning doc when the
// key is new or its text has changed.
func (w *Workspace) Structure(key string, doc Document) *Structure {
	text := doc.Text()

	w.mu.RLock()
	e, ok := w.entries.Get(key)
	w.mu.RUnlock()
	if ok && e.text == text {
		return e.structure
	}

	s := Scan(doc)
	w.logger.Debug("scanned manifest", "key", key, "lines", doc.LineCount(),
		"multiline", len(s.Multiline), "workspace", s.Workspace)

	w.mu.Lock()
	defer w.mu.Unlock()
	if evicted := w.entries.Add(key, entry{text: text, structure: s}); evicted {
		w.logger.Debug("workspace memo full, evicted oldest manifest")
	}
	switch {
	case s.Workspace:
		w.head = key
	case w.head == key:
		w.head = ""
	}
	return s
}

// Load reads and scans the manifest at path.
func (w *Workspace) Load(path string) (*Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.Structure(path, NewTextDocument(string(data))), nil
}

// Forget drops the memo for key.
func (w *Workspace) Forget(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries.Remove(key)
	if w.head == key {
		w.head = ""
	}
}

// Head returns the key of the workspace head manifest.
func (w *Workspace) Head() (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.head, w.head != ""
}

// Keys returns the memoized keys in sorted order.
func (w *Workspace) Keys() []string {
	keys := w.entries.Keys()
	sort.Strings(keys)
	return keys
}

// Manifest is a Cargo.toml found by [Discover].
type Manifest struct {
	Path      string
	Structure *Structure

	// Meta is nil when the file is not valid TOML; the structure is still
	// usable since scanning tolerates broken text.
	Meta *Meta
}

// Discover walks root and loads every Cargo.toml into w. Build output
// directories named "target" and hidden directories are skipped. Manifests
// are returned in walk order.
func Discover(ctx context.Context, root string, w *Workspace) ([]Manifest, error) {
	var found []Manifest
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ManifestName {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("skipping manifest", "path", path, "error", err)
			return nil
		}
		text := string(data)
		m := Manifest{Path: path, Structure: w.Structure(path, NewTextDocument(text))}
		if meta, err := ReadMeta(text); err != nil {
			w.logger.Debug("manifest metadata unavailable", "path", path, "error", err)
		} else {
			m.Meta = meta
			w.logger.Debug("manifest", "path", path, "package", meta.Package.Name,
				"members", len(meta.Members()))
		}
		found = append(found, m)
		return nil
	})
	if err != nil {
		return found, err
	}
	w.logger.Debug("discovered manifests", "root", root, "count", len(found))
	return found, nil
}

func skipDir(name string) bool {
	return name == "target" || strings.HasPrefix(name, ".")
}
