package completion_test

import (
	"fmt"

	"github.com/matzehuels/cargoassist/pkg/completion"
	"github.com/matzehuels/cargoassist/pkg/integrations/crates"
	"github.com/matzehuels/cargoassist/pkg/manifest"
)

func ExampleResolve() {
	// Cursor inside the features array of an inline table
	doc := manifest.NewTextDocument("[dependencies]\nregex = { version = \"1\", features = [] }")
	c := completion.Resolve(manifest.Scan(doc), doc, manifest.Position{Line: 1, Character: 37})

	fmt.Println("Kind:", c.Kind())
	fmt.Printf("Context: %+v\n", c)
	// Output:
	// Kind: inline_features
	// Context: {Name:regex Version:1}
}

func ExampleResolve_multiline() {
	// Cursor inside an unterminated multi-line features array
	doc := manifest.NewTextDocument("[dependencies.tokio]\nversion = \"1.3\"\nfeatures = [\"fu")
	c := completion.Resolve(manifest.Scan(doc), doc, manifest.Position{Line: 2, Character: 15})

	fmt.Println("Kind:", c.Kind())
	fmt.Println("Crate:", completion.CrateName(c))
	// Output:
	// Kind: multiline_features
	// Crate: tokio
}

func ExampleMatchVersion() {
	// Partial versions match by prefix, first entry in index order wins
	idx := &crates.Index{Versions: []crates.Version{
		{Num: "1.4.2", Features: map[string][]string{"std": nil, "alloc": nil}},
		{Num: "1.4.0"},
	}}

	v, _ := completion.MatchVersion(idx, "1.4")
	fmt.Println("Matched:", v.Num)
	for _, item := range completion.FeatureItems(v) {
		fmt.Println("Insert:", item.InsertText)
	}
	// Output:
	// Matched: 1.4.2
	// Insert: "alloc"
	// Insert: "std"
}
