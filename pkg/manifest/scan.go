package manifest

import "strings"

// NotFound marks an absent line or character index.
const NotFound = -1

// Structure is the dependency layout of a manifest, derived by [Scan].
type Structure struct {
	// DependenciesStart is the line of the [dependencies] header, or NotFound.
	DependenciesStart int `json:"dependencies_start"`

	// DependenciesEnd is the line of the first table header after
	// DependenciesStart, or the line count when the table runs to the end.
	DependenciesEnd int `json:"dependencies_end"`

	// Multiline lists [dependencies.<name>] tables ordered by StartLine.
	Multiline []MultilineDependency `json:"multiline_dependencies"`

	// Workspace reports whether the manifest has a [workspace] table,
	// which makes it the head of a cargo workspace.
	Workspace bool `json:"workspace"`
}

// MultilineDependency is a [dependencies.<name>] table.
type MultilineDependency struct {
	Name string `json:"name"`

	// StartLine is the header line. EndLine is the next header line or the
	// line count; the table covers [StartLine, EndLine).
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	VersionLine int `json:"version_line"`

	// The opening bracket of the features array, and its closing bracket.
	// FeatureEndLine is NotFound while the array is still open.
	FeatureStartLine int `json:"feature_start_line"`
	FeatureStartChar int `json:"feature_start_char"`
	FeatureEndLine   int `json:"feature_end_line"`
	FeatureEndChar   int `json:"feature_end_char"`
}

// Contains reports whether line lies inside the table.
func (d MultilineDependency) Contains(line int) bool {
	return line >= d.StartLine && line < d.EndLine
}

// HasVersion reports whether the table has a version line.
func (d MultilineDependency) HasVersion() bool { return d.VersionLine != NotFound }

// HasFeatures reports whether the table has a features key.
func (d MultilineDependency) HasFeatures() bool { return d.FeatureStartLine != NotFound }

// FeaturesClosed reports whether the closing bracket of the features array was seen.
func (d MultilineDependency) FeaturesClosed() bool { return d.FeatureEndLine != NotFound }

// InDependencies reports whether line is strictly inside the inline
// [dependencies] table (the header line itself is excluded).
func (s *Structure) InDependencies(line int) bool {
	return s.DependenciesStart != NotFound && line > s.DependenciesStart && line < s.DependenciesEnd
}

// DependencyAt returns the first multi-line dependency table containing line.
func (s *Structure) DependencyAt(line int) (MultilineDependency, bool) {
	for _, d := range s.Multiline {
		if d.Contains(line) {
			return d, true
		}
	}
	return MultilineDependency{}, false
}

// Scan walks the document once and records its dependency tables.
//
// Only table headers are interpreted. A [dependencies.<name>] header hands
// control to a nested scan of that table, which returns the index of the
// header that closed it; the outer loop resumes on that header so it is
// classified too. Duplicate tables are kept in document order.
func Scan(doc Document) *Structure {
	n := doc.LineCount()
	s := &Structure{
		DependenciesStart: NotFound,
		DependenciesEnd:   n,
	}

	for i := 0; i < n; {
		line := doc.LineAt(i)
		if line.Blank {
			i++
			continue
		}

		key, name, ok := parseHeader(line)
		if !ok {
			i++
			continue
		}

		if s.DependenciesStart != NotFound && s.DependenciesEnd == n {
			s.DependenciesEnd = i
		}

		switch {
		case key == "workspace":
			s.Workspace = true
		case key == "dependencies" && name == "":
			if s.DependenciesStart == NotFound {
				s.DependenciesStart = i
			}
		case key == "dependencies":
			dep, next := scanMultiline(doc, name, i)
			s.Multiline = append(s.Multiline, dep)
			i = next
			continue
		}
		i++
	}

	return s
}

// parseHeader splits a table header line into its first two dotted
// segments. ok is false when the line does not start with '['.
func parseHeader(line Line) (key, name string, ok bool) {
	body := line.Text[line.FirstNonWhitespace:]
	if !strings.HasPrefix(body, "[") {
		return "", "", false
	}

	inner := body[1:]
	if j := strings.IndexByte(inner, ']'); j >= 0 {
		inner = inner[:j]
	}

	parts := strings.Split(strings.TrimSpace(inner), ".")
	key = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		name = strings.Trim(strings.TrimSpace(parts[1]), `"'`)
	}
	return key, name, true
}

// scanMultiline reads the body of a [dependencies.<name>] table whose header
// is on line start. It returns the table and the index of the line that ended
// it: the next header, or the line count.
func scanMultiline(doc Document, name string, start int) (MultilineDependency, int) {
	n := doc.LineCount()
	dep := MultilineDependency{
		Name:             name,
		StartLine:        start,
		EndLine:          n,
		VersionLine:      NotFound,
		FeatureStartLine: NotFound,
		FeatureStartChar: NotFound,
		FeatureEndLine:   NotFound,
		FeatureEndChar:   NotFound,
	}

	j := start + 1
	for ; j < n; j++ {
		line := doc.LineAt(j)
		if line.Blank {
			continue
		}

		body := line.Text[line.FirstNonWhitespace:]
		if body[0] == '[' {
			dep.EndLine = j
			break
		}

		if strings.HasPrefix(body, "version") && dep.VersionLine == NotFound {
			dep.VersionLine = j
		}

		if strings.HasPrefix(body, "features") && dep.FeatureStartLine == NotFound {
			dep.FeatureStartLine = j
			dep.FeatureStartChar = strings.IndexByte(line.Text, '[')
		}

		// A trailing ']' closes the array; nested brackets are not tracked.
		if dep.FeatureStartLine != NotFound && dep.FeatureEndLine == NotFound {
			trimmed := strings.TrimRight(line.Text, " \t")
			if strings.HasSuffix(trimmed, "]") {
				dep.FeatureEndLine = j
				dep.FeatureEndChar = len(trimmed) - 1
			}
		}
	}

	return dep, j
}

// VersionText returns the text between the first and last double quote on
// the table's version line, or "" when there is no version line.
func VersionText(doc Document, dep MultilineDependency) string {
	if dep.VersionLine == NotFound {
		return ""
	}
	return QuotedValue(doc.LineAt(dep.VersionLine).Text)
}

// QuotedValue returns the text between the first and last '"' in s.
func QuotedValue(s string) string {
	first := strings.IndexByte(s, '"')
	last := strings.LastIndexByte(s, '"')
	if first < 0 || last <= first {
		return ""
	}
	return s[first+1 : last]
}
