package completion

import (
	"sort"
	"strings"

	"github.com/matzehuels/cargoassist/pkg/errors"
	"github.com/matzehuels/cargoassist/pkg/integrations/crates"
)

// MatchVersion finds the version record for a possibly partial version.
//
// Text with fewer than three dot-separated segments ("1", "1.4", or "") is a
// prefix: the first index entry whose number starts with it wins, in index
// order. Three or more segments must match a number exactly. No match is a
// VERSION_NOT_FOUND error.
func MatchVersion(idx *crates.Index, text string) (*crates.Version, error) {
	if idx != nil {
		partial := len(strings.Split(text, ".")) < 3
		for i := range idx.Versions {
			v := &idx.Versions[i]
			if partial && strings.HasPrefix(v.Num, text) || v.Num == text {
				return v, nil
			}
		}
	}
	return nil, errors.New(errors.ErrCodeVersionNotFound, "no version matches %q", text)
}

// FeatureNames returns the sorted feature names of v.
func FeatureNames(v *crates.Version) []string {
	if v == nil {
		return nil
	}
	names := make([]string, 0, len(v.Features))
	for name := range v.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
