package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cargoassist/pkg/completion"
	"github.com/matzehuels/cargoassist/pkg/manifest"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary actions
	colorGreen = lipgloss.Color("35")  // Green - success
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconHead    = "★"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
}

// renderItems prints a suggestion list.
func renderItems(w io.Writer, c completion.Context, list completion.List) {
	title := "Suggestions · " + c.Kind()
	if name := completion.CrateName(c); name != "" {
		title += " · " + name
	}
	fmt.Fprintln(w, StyleTitle.Render(title))

	if len(list.Items) == 0 {
		printDetail(w, "no suggestions")
		return
	}

	t := newTable("Label", "Detail", "Insert", "Description")
	for _, it := range list.Items {
		t.Row(it.Label, it.Detail, it.InsertText, truncate(it.Description, 48))
	}
	fmt.Fprintln(w, t.Render())
	for _, it := range list.Items {
		for _, e := range it.AdditionalEdits {
			printDetail(w, "%s also inserts %q at %d:%d", it.Label, e.NewText, e.Position.Line, e.Position.Character)
		}
	}
	if list.Incomplete {
		printDetail(w, "incomplete: keep typing to refine the search")
	}
}

// renderStructure prints the dependency tables of a scanned manifest.
// Line ranges are half-open.
func renderStructure(w io.Writer, path string, s *manifest.Structure) {
	fmt.Fprintln(w, StyleTitle.Render(filepath.Base(path)))

	if s.DependenciesStart == manifest.NotFound {
		printDetail(w, "no [dependencies] table")
	} else {
		printKeyValue(w, "dependencies", fmt.Sprintf("lines %d–%d", s.DependenciesStart, s.DependenciesEnd))
	}
	if s.Workspace {
		printKeyValue(w, "workspace", "yes")
	}
	if len(s.Multiline) == 0 {
		return
	}

	t := newTable("Crate", "Lines", "Version", "Features")
	for _, d := range s.Multiline {
		version, features := "—", "—"
		if d.HasVersion() {
			version = strconv.Itoa(d.VersionLine)
		}
		if d.HasFeatures() {
			features = fmt.Sprintf("%d:%d", d.FeatureStartLine, d.FeatureStartChar)
			if d.FeaturesClosed() {
				features += fmt.Sprintf("–%d:%d", d.FeatureEndLine, d.FeatureEndChar)
			} else {
				features += " (open)"
			}
		}
		t.Row(d.Name, fmt.Sprintf("%d–%d", d.StartLine, d.EndLine), version, features)
	}
	fmt.Fprintln(w, t.Render())
}

// renderWorkspace prints discovered manifests relative to root, marking
// the workspace head.
func renderWorkspace(w io.Writer, root string, found []manifest.Manifest, head string) {
	t := newTable("", "Manifest", "Package", "Dependencies", "Tables", "Members")
	for _, m := range found {
		mark := ""
		if m.Path == head {
			mark = iconHead
		}
		rel, err := filepath.Rel(root, m.Path)
		if err != nil {
			rel = m.Path
		}
		pkg, deps, members := "—", "—", "—"
		if m.Meta != nil {
			if m.Meta.Package.Name != "" {
				pkg = m.Meta.Package.Name
				if m.Meta.Package.Version != "" {
					pkg += " " + m.Meta.Package.Version
				}
			}
			deps = strconv.Itoa(len(m.Meta.DependencyNames()))
			if m.Meta.IsWorkspace() {
				members = strings.Join(m.Meta.Members(), ", ")
			}
		}
		t.Row(mark, rel, pkg, deps, strconv.Itoa(len(m.Structure.Multiline)), members)
	}
	fmt.Fprintln(w, t.Render())
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
