package manifest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func dep(name string, start, end, version int) MultilineDependency {
	return MultilineDependency{
		Name:             name,
		StartLine:        start,
		EndLine:          end,
		VersionLine:      version,
		FeatureStartLine: NotFound,
		FeatureStartChar: NotFound,
		FeatureEndLine:   NotFound,
		FeatureEndChar:   NotFound,
	}
}

func withFeatures(d MultilineDependency, startLine, startChar, endLine, endChar int) MultilineDependency {
	d.FeatureStartLine = startLine
	d.FeatureStartChar = startChar
	d.FeatureEndLine = endLine
	d.FeatureEndChar = endChar
	return d
}

var scanTests = []struct {
	name string
	text string
	want *Structure
}{
	{
		name: "empty",
		text: "",
		want: &Structure{DependenciesStart: NotFound, DependenciesEnd: 1},
	},
	{
		name: "inline table runs to end",
		text: "[package]\nname = \"x\"\n\n[dependencies]\nserde = \"1\"\n",
		want: &Structure{DependenciesStart: 3, DependenciesEnd: 6},
	},
	{
		name: "inline table closed by next header",
		text: "[dependencies]\nserde = \"1\"\n[dev-dependencies]\nfoo = \"1\"",
		want: &Structure{DependenciesStart: 0, DependenciesEnd: 2},
	},
	{
		name: "adjacent multiline tables",
		text: "[dependencies.a]\n[dependencies.b]\nversion = \"1\"",
		want: &Structure{
			DependenciesStart: NotFound,
			DependenciesEnd:   3,
			Multiline:         []MultilineDependency{dep("a", 0, 1, NotFound), dep("b", 1, 3, 2)},
		},
	},
	{
		name: "single line features then inline table",
		text: "[dependencies.tokio]\nversion = \"1.3\"\nfeatures = [\"full\", \"rt\"]\n\n[dependencies]\nserde = \"1\"",
		want: &Structure{
			DependenciesStart: 4,
			DependenciesEnd:   6,
			Multiline:         []MultilineDependency{withFeatures(dep("tokio", 0, 4, 1), 2, 11, 2, 24)},
		},
	},
	{
		name: "unterminated features",
		text: "[dependencies.tokio]\nversion = \"1.3\"\nfeatures = [\"fu",
		want: &Structure{
			DependenciesStart: NotFound,
			DependenciesEnd:   3,
			Multiline:         []MultilineDependency{withFeatures(dep("tokio", 0, 3, 1), 2, 11, NotFound, NotFound)},
		},
	},
	{
		name: "features across lines",
		text: "[dependencies.serde]\nfeatures = [\n  \"derive\",  \n]\n[package]",
		want: &Structure{
			DependenciesStart: NotFound,
			DependenciesEnd:   5,
			Multiline:         []MultilineDependency{withFeatures(dep("serde", 0, 4, NotFound), 1, 11, 3, 0)},
		},
	},
	{
		name: "quoted indented name",
		text: "  [dependencies.\"serde_json\"]\n  version = \"1\"",
		want: &Structure{
			DependenciesStart: NotFound,
			DependenciesEnd:   2,
			Multiline:         []MultilineDependency{dep("serde_json", 0, 2, 1)},
		},
	},
	{
		name: "workspace head",
		text: "[workspace]\nmembers = [\"a\"]\n\n[dependencies]\n",
		want: &Structure{DependenciesStart: 3, DependenciesEnd: 5, Workspace: true},
	},
	{
		name: "duplicate inline table keeps first",
		text: "[dependencies]\na = \"1\"\n[dependencies]\nb = \"1\"",
		want: &Structure{DependenciesStart: 0, DependenciesEnd: 2},
	},
	{
		name: "empty name is inline table",
		text: "[dependencies.]\na = \"1\"",
		want: &Structure{DependenciesStart: 0, DependenciesEnd: 2},
	},
	{
		name: "crlf line endings",
		text: "[dependencies.a]\r\nversion = \"1\"\r\n[dependencies]\r\nb = \"2\"\r\n",
		want: &Structure{
			DependenciesStart: 2,
			DependenciesEnd:   5,
			Multiline:         []MultilineDependency{dep("a", 0, 2, 1)},
		},
	},
	{
		name: "first version line wins",
		text: "[dependencies.a]\nversion = \"1\"\nversion = \"2\"",
		want: &Structure{
			DependenciesStart: NotFound,
			DependenciesEnd:   3,
			Multiline:         []MultilineDependency{dep("a", 0, 3, 1)},
		},
	},
	{
		name: "duplicate multiline tables kept in order",
		text: "[dependencies.a]\n[dependencies.a]\nversion = \"2\"",
		want: &Structure{
			DependenciesStart: NotFound,
			DependenciesEnd:   3,
			Multiline:         []MultilineDependency{dep("a", 0, 1, NotFound), dep("a", 1, 3, 2)},
		},
	},
}

func TestScan(t *testing.T) {
	for _, tt := range scanTests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(NewTextDocument(tt.text))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanRangesWellFormed(t *testing.T) {
	for _, tt := range scanTests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewTextDocument(tt.text)
			s := Scan(doc)

			if s.DependenciesStart != NotFound && s.DependenciesEnd <= s.DependenciesStart {
				t.Errorf("DependenciesEnd = %d, want > %d", s.DependenciesEnd, s.DependenciesStart)
			}
			for i, d := range s.Multiline {
				if d.StartLine >= d.EndLine {
					t.Errorf("dependency %d: StartLine %d >= EndLine %d", i, d.StartLine, d.EndLine)
				}
				if i > 0 && d.StartLine < s.Multiline[i-1].EndLine {
					t.Errorf("dependency %d overlaps dependency %d", i, i-1)
				}
			}

			if diff := cmp.Diff(s, Scan(doc)); diff != "" {
				t.Errorf("rescan differs (-first +second):\n%s", diff)
			}
		})
	}
}

func TestStructureLookups(t *testing.T) {
	s := Scan(NewTextDocument("[dependencies]\nserde = \"1\"\n[dependencies.a]\nversion = \"1\"\n[dependencies.b]"))

	tests := []struct {
		line     int
		inline   bool
		wantName string
	}{
		{line: 0, inline: false},
		{line: 1, inline: true},
		{line: 2, wantName: "a"},
		{line: 3, wantName: "a"},
		{line: 4, wantName: "b"},
		{line: 5},
	}
	for _, tt := range tests {
		if got := s.InDependencies(tt.line); got != tt.inline {
			t.Errorf("InDependencies(%d) = %v, want %v", tt.line, got, tt.inline)
		}
		d, ok := s.DependencyAt(tt.line)
		if ok != (tt.wantName != "") || d.Name != tt.wantName {
			t.Errorf("DependencyAt(%d) = %q, %v, want %q", tt.line, d.Name, ok, tt.wantName)
		}
	}
}

func TestVersionText(t *testing.T) {
	doc := NewTextDocument("[dependencies.a]\nversion = \"1.2\"\n[dependencies.b]\nversion = \"")
	s := Scan(doc)

	if got := VersionText(doc, s.Multiline[0]); got != "1.2" {
		t.Errorf("VersionText(a) = %q, want %q", got, "1.2")
	}
	if got := VersionText(doc, s.Multiline[1]); got != "" {
		t.Errorf("VersionText(b) = %q, want empty", got)
	}
	if got := VersionText(doc, dep("c", 0, 1, NotFound)); got != "" {
		t.Errorf("VersionText(no version line) = %q, want empty", got)
	}
}

func TestNewLine(t *testing.T) {
	tests := []struct {
		text  string
		first int
		blank bool
	}{
		{"", 0, true},
		{"  \t", 3, true},
		{"  a", 2, false},
		{"a", 0, false},
	}
	for _, tt := range tests {
		l := NewLine(tt.text)
		if l.FirstNonWhitespace != tt.first || l.Blank != tt.blank {
			t.Errorf("NewLine(%q) = {%d, %v}, want {%d, %v}", tt.text, l.FirstNonWhitespace, l.Blank, tt.first, tt.blank)
		}
	}
}
