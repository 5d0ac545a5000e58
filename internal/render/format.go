package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DefaultBarWidth is the number of cells in a score bar.
const DefaultBarWidth = 20

// Styles controls how units are formatted.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Placeholder lipgloss.Style
	ListTitle   lipgloss.Style
	BarFilled   lipgloss.Style
	BarEmpty    lipgloss.Style

	// FilledCell and EmptyCell draw the bar.
	FilledCell string
	EmptyCell  string

	BarWidth int
}

// ColorStyles returns styles for a colour terminal.
func ColorStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Value:       lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Placeholder: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#F9E2AF")),
		ListTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		BarFilled:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		BarEmpty:    lipgloss.NewStyle().Foreground(lipgloss.Color("#45475A")),
		FilledCell:  "█",
		EmptyCell:   "░",
		BarWidth:    DefaultBarWidth,
	}
}

// PlainStyles returns unstyled ASCII output for pipes and files.
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:       plain,
		Label:       plain,
		Value:       plain,
		Placeholder: plain,
		ListTitle:   plain,
		BarFilled:   plain,
		BarEmpty:    plain,
		FilledCell:  "#",
		EmptyCell:   "-",
		BarWidth:    DefaultBarWidth,
	}
}

// StylesFor picks colour styles when w is a terminal, plain otherwise.
func StylesFor(w io.Writer) *Styles {
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return ColorStyles()
	}
	return PlainStyles()
}

// Format renders units as text. Hidden units are skipped.
func Format(units []Unit, styles *Styles) string {
	if styles == nil {
		styles = PlainStyles()
	}

	var sections []string
	for _, u := range units {
		if u.Status == StatusHidden {
			continue
		}
		sections = append(sections, formatUnit(u, styles))
	}
	return strings.Join(sections, "\n")
}

func formatUnit(u Unit, s *Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(u.Title))
	b.WriteString("\n")

	if u.Status == StatusPlaceholder {
		b.WriteString("  ")
		b.WriteString(s.Placeholder.Render(u.Placeholder))
		b.WriteString("\n")
		return b.String()
	}

	labelWidth := 0
	for _, f := range u.Fields {
		labelWidth = max(labelWidth, len(f.Label))
	}
	for _, bar := range u.Bars {
		labelWidth = max(labelWidth, len(bar.Label))
	}

	for _, f := range u.Fields {
		b.WriteString("  ")
		b.WriteString(s.Label.Render(pad(f.Label+":", labelWidth+1)))
		b.WriteString(" ")
		b.WriteString(s.Value.Render(f.Value))
		b.WriteString("\n")
	}
	for _, bar := range u.Bars {
		b.WriteString("  ")
		b.WriteString(s.Label.Render(pad(bar.Label+":", labelWidth+1)))
		b.WriteString(" ")
		b.WriteString(formatBar(bar.Value, s))
		b.WriteString("\n")
	}
	for _, p := range u.Paragraphs {
		b.WriteString("\n  ")
		b.WriteString(s.Value.Render(p))
		b.WriteString("\n")
	}
	for _, l := range u.Lists {
		b.WriteString("  ")
		b.WriteString(s.ListTitle.Render(l.Title))
		b.WriteString("\n")
		for _, item := range l.Items {
			b.WriteString("    - ")
			b.WriteString(s.Value.Render(item))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatBar(value int, s *Styles) string {
	width := s.BarWidth
	if width <= 0 {
		width = DefaultBarWidth
	}
	value = max(0, min(100, value))
	filled := (value*width + 50) / 100

	return s.BarFilled.Render(strings.Repeat(s.FilledCell, filled)) +
		s.BarEmpty.Render(strings.Repeat(s.EmptyCell, width-filled)) +
		" " + strconv.Itoa(value) + "/100"
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
