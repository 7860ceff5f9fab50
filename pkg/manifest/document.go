package manifest

import "strings"

// Position is a cursor location: zero-based line and byte offset in that line.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Line is one line of a document without its terminator.
type Line struct {
	Text string

	// FirstNonWhitespace is the index of the first character that is not a
	// space or tab, or len(Text) when the line is blank.
	FirstNonWhitespace int

	// Blank reports whether the line is empty or whitespace only.
	Blank bool
}

// Document is read-only access to the lines of a manifest.
// Implementations are borrowed for the duration of one analysis pass.
type Document interface {
	LineCount() int
	// LineAt returns line i. Out-of-range indices yield a blank line.
	LineAt(i int) Line
	Text() string
}

// TextDocument is a Document over an in-memory string.
type TextDocument struct {
	text  string
	lines []Line
}

// NewTextDocument splits text into lines on "\n", dropping a trailing "\r"
// from each line. A text ending in a newline has a final empty line.
func NewTextDocument(text string) *TextDocument {
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, l := range raw {
		lines[i] = NewLine(strings.TrimSuffix(l, "\r"))
	}
	return &TextDocument{text: text, lines: lines}
}

// NewLine computes the whitespace metadata of a single line of text.
func NewLine(text string) Line {
	idx := strings.IndexFunc(text, func(r rune) bool { return r != ' ' && r != '\t' })
	if idx < 0 {
		return Line{Text: text, FirstNonWhitespace: len(text), Blank: true}
	}
	return Line{Text: text, FirstNonWhitespace: idx}
}

func (d *TextDocument) LineCount() int { return len(d.lines) }

func (d *TextDocument) LineAt(i int) Line {
	if i < 0 || i >= len(d.lines) {
		return Line{Blank: true}
	}
	return d.lines[i]
}

func (d *TextDocument) Text() string { return d.text }

var _ Document = (*TextDocument)(nil)
