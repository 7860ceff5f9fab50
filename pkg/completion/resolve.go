package completion

import (
	"strings"

	"github.com/matzehuels/cargoassist/pkg/manifest"
)

// Resolve classifies the cursor at pos.
//
// Lines strictly inside the [dependencies] table are inspected as inline
// entries; otherwise the first [dependencies.<name>] table containing the
// line is used. Anything else is [None].
func Resolve(s *manifest.Structure, doc manifest.Document, pos manifest.Position) Context {
	if pos.Line < 0 || pos.Line >= doc.LineCount() {
		return None{}
	}
	text := doc.LineAt(pos.Line).Text
	cur := min(max(pos.Character, 0), len(text))

	if s.InDependencies(pos.Line) {
		return resolveInline(text, cur)
	}
	if dep, ok := s.DependencyAt(pos.Line); ok {
		return resolveMultiline(doc, dep, text, pos.Line, cur)
	}
	return None{}
}

func resolveInline(text string, cur int) Context {
	eq := strings.IndexByte(text, '=')
	if eq < 0 {
		return BareNameEntry{Partial: strings.TrimSpace(text[:cur])}
	}

	name := entryName(text[:eq])
	if name == "" {
		return None{Reason: "dependency entry has no name"}
	}
	object := strings.TrimSpace(text[eq+1:])

	if object == "" || strings.HasPrefix(object, `"`) {
		return InlineVersionString{Name: name}
	}
	if !strings.HasPrefix(object, "{") {
		return None{Reason: "unrecognized dependency value"}
	}
	if !strings.HasSuffix(object, "}") {
		return None{Reason: "inline table spans multiple lines"}
	}

	lead := strings.LastIndexByte(text[:cur], '=')
	if lead <= eq {
		return InlineAfterEquals{Name: name, Object: object}
	}

	containing := text[lead:cur]
	switch CurrentKey(text, lead) {
	case "version":
		if inString(text, containing, cur) {
			return InlineVersionString{Name: name}
		}
	case "features":
		// Between this key's [ and its own ]; a later array's ] does not count.
		if strings.Contains(containing, "[") && !strings.Contains(containing, "]") &&
			strings.IndexByte(text[cur:], ']') >= 0 {
			return InlineFeatureArray{Name: name, Version: objectVersion(object)}
		}
	}
	return InlineAfterEquals{Name: name, Object: object}
}

// entryName extracts the dependency name from the text before the first '='.
func entryName(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, `"'`)
}

// inString reports whether the cursor sits inside the string value that
// follows an '='. containing is the text from that '=' to the cursor.
func inString(text, containing string, cur int) bool {
	quotes := strings.Count(containing, `"`)
	if quotes%2 == 1 {
		return true
	}
	return quotes > 0 && cur < len(text) && text[cur] == '"'
}

// CurrentKey returns the key whose '=' is at index eq in text.
//
// It walks left from the '=', skipping spaces until the key starts, then
// continues to the nearest space, ',' or '{'. The key is the text between
// that boundary and the '=', with trailing spaces removed.
func CurrentKey(text string, eq int) string {
	eq = min(max(eq, 0), len(text))
	started := false
	boundary := -1
	for i := eq - 1; i >= 0; i-- {
		c := text[i]
		if started && (c == ' ' || c == ',' || c == '{') {
			boundary = i
			break
		}
		if c != ' ' {
			started = true
		}
	}
	return strings.TrimRight(text[boundary+1:eq], " ")
}

// objectVersion returns the text between the first pair of quotes after the
// word "version" in an inline table, or "" when there is none.
func objectVersion(object string) string {
	i := strings.Index(object, "version")
	if i < 0 {
		return ""
	}
	rest := object[i:]
	open := strings.IndexByte(rest, '"')
	if open < 0 {
		return ""
	}
	rest = rest[open+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	return rest[:end]
}

func resolveMultiline(doc manifest.Document, dep manifest.MultilineDependency, text string, line, cur int) Context {
	if line == dep.StartLine {
		if strings.Contains(text[:cur], ".") && strings.Contains(text[cur:], "]") {
			return MultilineHeader{
				Name:       dep.Name,
				HasVersion: dep.HasVersion(),
				Line:       line,
				End:        len(text),
			}
		}
		return None{}
	}

	if line == dep.VersionLine {
		return MultilineVersion{Name: dep.Name}
	}

	if dep.HasFeatures() && afterFeatureStart(dep, line, cur) &&
		(!dep.FeaturesClosed() || beforeFeatureEnd(dep, line, cur)) {
		return MultilineFeatureArray{Name: dep.Name, Version: manifest.VersionText(doc, dep)}
	}
	return None{}
}

func afterFeatureStart(dep manifest.MultilineDependency, line, cur int) bool {
	// "features =" with no '[' yet has not opened an array.
	if dep.FeatureStartChar < 0 {
		return false
	}
	if line == dep.FeatureStartLine {
		return cur > dep.FeatureStartChar
	}
	return line > dep.FeatureStartLine
}

func beforeFeatureEnd(dep manifest.MultilineDependency, line, cur int) bool {
	if line == dep.FeatureEndLine {
		return cur <= dep.FeatureEndChar
	}
	return line < dep.FeatureEndLine
}
