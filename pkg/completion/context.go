package completion

// Context is the completion situation at the cursor. The set of variants is
// closed; switch on the concrete type.
type Context interface {
	// Kind is a stable identifier used in logs, metrics and the HTTP API.
	Kind() string
	isContext()
}

// BareNameEntry: the cursor is on a dependency line with no '=' yet.
// Partial is the trimmed line text up to the cursor.
type BareNameEntry struct {
	Partial string `json:"partial"`
}

// InlineAfterEquals: the cursor is inside `name = { ... }` but not in a
// version string or a features array.
type InlineAfterEquals struct {
	Name   string `json:"name"`
	Object string `json:"object"`
}

// InlineVersionString: the cursor is in the version string of an inline entry.
type InlineVersionString struct {
	Name string `json:"name"`
}

// InlineFeatureArray: the cursor is in the features array of an inline table.
// Version is the version text found in the same table, possibly empty.
type InlineFeatureArray struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// MultilineHeader: the cursor is on the name in a [dependencies.<name>]
// header. Line and End locate the end of the header line, where a version
// line is inserted when HasVersion is false.
type MultilineHeader struct {
	Name       string `json:"name"`
	HasVersion bool   `json:"has_version"`
	Line       int    `json:"line"`
	End        int    `json:"end"`
}

// MultilineVersion: the cursor is on the version line of a dependency table.
type MultilineVersion struct {
	Name string `json:"name"`
}

// MultilineFeatureArray: the cursor is inside the features array of a
// dependency table. Version is read from the table's version line.
type MultilineFeatureArray struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// None: nothing to complete. Reason is set when the text did not have the
// shape the resolver expected, and empty when the cursor is simply outside
// any dependency declaration.
type None struct {
	Reason string `json:"reason,omitempty"`
}

func (BareNameEntry) Kind() string         { return "bare_name" }
func (InlineAfterEquals) Kind() string     { return "inline_after_equals" }
func (InlineVersionString) Kind() string   { return "inline_version" }
func (InlineFeatureArray) Kind() string    { return "inline_features" }
func (MultilineHeader) Kind() string       { return "multiline_header" }
func (MultilineVersion) Kind() string      { return "multiline_version" }
func (MultilineFeatureArray) Kind() string { return "multiline_features" }
func (None) Kind() string                  { return "none" }

func (BareNameEntry) isContext()         {}
func (InlineAfterEquals) isContext()     {}
func (InlineVersionString) isContext()   {}
func (InlineFeatureArray) isContext()    {}
func (MultilineHeader) isContext()       {}
func (MultilineVersion) isContext()      {}
func (MultilineFeatureArray) isContext() {}
func (None) isContext()                  {}

// CrateName returns the crate a context refers to, or "" for contexts that
// are not tied to one crate.
func CrateName(c Context) string {
	switch c := c.(type) {
	case InlineAfterEquals:
		return c.Name
	case InlineVersionString:
		return c.Name
	case InlineFeatureArray:
		return c.Name
	case MultilineHeader:
		return c.Name
	case MultilineVersion:
		return c.Name
	case MultilineFeatureArray:
		return c.Name
	}
	return ""
}
