package manifest

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cargoassist/pkg/errors"
)

// Meta is the package and workspace metadata of a well-formed manifest.
// Unlike [Scan] it requires valid TOML.
type Meta struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Workspace *struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// ReadMeta decodes manifest metadata from text.
func ReadMeta(text string) (*Meta, error) {
	var m Meta
	if err := toml.Unmarshal([]byte(text), &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode manifest")
	}
	return &m, nil
}

// ReadMetaFile decodes manifest metadata from the file at path.
func ReadMetaFile(path string) (*Meta, error) {
	if err := errors.ValidateManifestFilename(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadMeta(string(data))
}

// IsWorkspace reports whether the manifest declares a [workspace] table.
func (m *Meta) IsWorkspace() bool { return m.Workspace != nil }

// Members returns the workspace member globs, if any.
func (m *Meta) Members() []string {
	if m.Workspace == nil {
		return nil
	}
	return m.Workspace.Members
}

// DependencyNames returns the sorted names declared under [dependencies].
func (m *Meta) DependencyNames() []string {
	return sortedKeys(m.Dependencies)
}

// AllDependencyNames also includes dev- and build-dependencies.
func (m *Meta) AllDependencyNames() []string {
	all := make(map[string]any, len(m.Dependencies))
	for _, set := range []map[string]any{m.Dependencies, m.DevDependencies, m.BuildDependencies} {
		for k, v := range set {
			all[k] = v
		}
	}
	return sortedKeys(all)
}

func sortedKeys(m map[string]any) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
