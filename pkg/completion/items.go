package completion

import (
	"fmt"

	"github.com/matzehuels/cargoassist/pkg/integrations/crates"
	"github.com/matzehuels/cargoassist/pkg/manifest"
)

// ItemKind says what an [Item] suggests.
type ItemKind string

const (
	KindCrate   ItemKind = "crate"
	KindVersion ItemKind = "version"
	KindFeature ItemKind = "feature"
)

// TextEdit inserts NewText at Position. The engine never edits documents;
// it only describes edits for the host to apply.
type TextEdit struct {
	Position manifest.Position `json:"position"`
	NewText  string            `json:"new_text"`
}

// Item is one suggestion.
type Item struct {
	Label           string     `json:"label"`
	Kind            ItemKind   `json:"kind"`
	Description     string     `json:"description,omitempty"`
	Detail          string     `json:"detail,omitempty"`
	InsertText      string     `json:"insert_text"`
	AdditionalEdits []TextEdit `json:"additional_edits,omitempty"`
}

// List is an ordered suggestion list. Incomplete asks the host to request
// again as the user keeps typing, since the results depend on a search query.
type List struct {
	Items      []Item `json:"items"`
	Incomplete bool   `json:"incomplete"`
}

// CrateItems builds one suggestion per search result.
//
// For a bare entry the insert text is `name = "<version>"`. For a table
// header only the name is inserted, and when the table has no version line
// a `version = "<version>"` line is added after the header.
func CrateItems(res *crates.Search, c Context) []Item {
	if res == nil {
		return nil
	}
	header, isHeader := c.(MultilineHeader)

	items := make([]Item, 0, len(res.Crates))
	for _, cr := range res.Crates {
		version := cr.PreferredVersion()
		item := Item{
			Label:       cr.Name,
			Kind:        KindCrate,
			Description: cr.Description,
			Detail:      version,
			InsertText:  fmt.Sprintf("%s = %q", cr.Name, version),
		}
		if isHeader {
			item.InsertText = cr.Name
			if !header.HasVersion {
				item.AdditionalEdits = []TextEdit{{
					Position: manifest.Position{Line: header.Line, Character: header.End},
					NewText:  fmt.Sprintf("\nversion = %q", version),
				}}
			}
		}
		items = append(items, item)
	}
	return items
}

// VersionItems builds one suggestion per version, in index order. The
// surrounding quotes are already in the document, so the raw number is
// inserted.
func VersionItems(idx *crates.Index) []Item {
	if idx == nil {
		return nil
	}
	items := make([]Item, 0, len(idx.Versions))
	for _, v := range idx.Versions {
		item := Item{Label: v.Num, Kind: KindVersion, InsertText: v.Num}
		if v.Yanked {
			item.Detail = "yanked"
		}
		items = append(items, item)
	}
	return items
}

// FeatureItems builds one quoted suggestion per feature of v, sorted by name.
func FeatureItems(v *crates.Version) []Item {
	names := FeatureNames(v)
	items := make([]Item, 0, len(names))
	for _, name := range names {
		items = append(items, Item{Label: name, Kind: KindFeature, InsertText: `"` + name + `"`})
	}
	return items
}
