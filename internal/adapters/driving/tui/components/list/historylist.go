// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

const timeLayout = "2006-01-02 15:04"

// HistoryList displays past analyses in a navigable list.
type HistoryList struct {
	entries  []domain.HistoryEntry
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHistoryList creates a new history list component.
func NewHistoryList(s *styles.Styles) *HistoryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HistoryList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (h *HistoryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (h *HistoryList) Update(msg tea.Msg) (*HistoryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			h.MoveUp()
		case "down", "j":
			h.MoveDown()
		}
	}
	return h, nil
}

// View renders the list.
func (h *HistoryList) View() string {
	if len(h.entries) == 0 {
		return h.styles.Muted.Render("No analyses yet")
	}

	lines := make([]string, 0, len(h.entries)*2+2)
	lines = append(lines, h.styles.Subtitle.Render(fmt.Sprintf("Analyses (%d)", len(h.entries))), "")

	// Each entry takes two lines.
	visible := (h.height - 4) / 2
	if visible < 1 {
		visible = 1
	}

	start := 0
	if h.selected >= visible {
		start = h.selected - visible + 1
	}
	end := min(start+visible, len(h.entries))

	for i := start; i < end; i++ {
		lines = append(lines, h.renderEntry(i, &h.entries[i]))
	}

	return strings.Join(lines, "\n")
}

func (h *HistoryList) renderEntry(index int, entry *domain.HistoryEntry) string {
	indicator := "  "
	if index == h.selected {
		indicator = "> "
	}

	maxTitle := h.width - 24
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := truncate(entry.Title(), maxTitle)

	created := ""
	if !entry.CreatedAt.IsZero() {
		created = entry.CreatedAt.Format(timeLayout)
	}

	var titleLine string
	if index == h.selected {
		titleLine = h.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitle, title, created))
	} else {
		titleLine = h.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitle, title)) +
			h.styles.Muted.Render(created)
	}

	details := []string{entry.AnalysisID}
	if entry.Location != "" {
		details = append(details, entry.Location)
	}
	if entry.Input.Options.GenerateOutreach {
		details = append(details, "outreach")
	}
	detailLine := h.styles.Muted.Render("    " + truncate(strings.Join(details, " · "), h.width-6))

	return titleLine + "\n" + detailLine
}

func truncate(s string, limit int) string {
	if limit < 4 || len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

// SetEntries replaces the listed entries, keeping the selection in range.
func (h *HistoryList) SetEntries(entries []domain.HistoryEntry) {
	h.entries = entries
	if h.selected >= len(entries) {
		h.selected = max(len(entries)-1, 0)
	}
}

// Entries returns the listed entries.
func (h *HistoryList) Entries() []domain.HistoryEntry {
	return h.entries
}

// Selected returns the index of the selected entry.
func (h *HistoryList) Selected() int {
	return h.selected
}

// SetSelected sets the selected index.
func (h *HistoryList) SetSelected(index int) {
	if index >= 0 && index < len(h.entries) {
		h.selected = index
	}
}

// SelectedEntry returns the selected entry, or nil if the list is empty.
func (h *HistoryList) SelectedEntry() *domain.HistoryEntry {
	if h.selected < 0 || h.selected >= len(h.entries) {
		return nil
	}
	return &h.entries[h.selected]
}

// MoveUp moves selection up.
func (h *HistoryList) MoveUp() {
	if h.selected > 0 {
		h.selected--
	}
}

// MoveDown moves selection down.
func (h *HistoryList) MoveDown() {
	if h.selected < len(h.entries)-1 {
		h.selected++
	}
}

// SetSize sets the list dimensions.
func (h *HistoryList) SetSize(width, height int) {
	h.width = width
	h.height = height
}
