// Package history provides the past analyses view for the TUI.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bizlens-cli/internal/logger"
)

// View lists cached history entries and loads the selected analysis.
type View struct {
	styles   *styles.Styles
	list     *list.HistoryList
	history  driving.HistoryService
	analysis driving.AnalysisOrchestrator
	ctx      context.Context

	loading    bool
	refreshing bool
	err        error
	width      int
	height     int
	ready      bool
}

// NewView creates a new history view.
func NewView(
	s *styles.Styles,
	history driving.HistoryService,
	analysis driving.AnalysisOrchestrator,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		list:     list.NewHistoryList(s),
		history:  history,
		analysis: analysis,
		ctx:      context.Background(),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init shows the cached entries. It never calls the service.
func (v *View) Init() tea.Cmd {
	v.Reload()
	return nil
}

// Reload copies the current cache into the list.
func (v *View) Reload() {
	if v.history == nil {
		return
	}
	v.list.SetEntries(v.history.Entries())
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.refreshing = false
		if msg.Err != nil {
			// Refresh failures are logged only; the previous list stays.
			logger.Warn("History refresh failed: %v", msg.Err)
			return v, nil
		}
		v.list.SetEntries(msg.Entries)
		return v, nil

	case messages.AnalysisLoaded:
		v.loading = false
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j":
		v.list, _ = v.list.Update(msg)
		return v, nil
	case "enter":
		return v, v.loadSelected()
	case "r":
		return v, v.Refresh()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// Refresh asks the service for the current list.
func (v *View) Refresh() tea.Cmd {
	if v.history == nil || v.refreshing {
		return nil
	}
	v.refreshing = true
	history := v.history
	ctx := v.ctx
	return func() tea.Msg {
		entries, err := history.Refresh(ctx)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

func (v *View) loadSelected() tea.Cmd {
	entry := v.list.SelectedEntry()
	if entry == nil || v.analysis == nil || v.loading {
		return nil
	}
	v.loading = true
	v.err = nil
	id := entry.AnalysisID
	analysis := v.analysis
	ctx := v.ctx
	return func() tea.Msg {
		result, err := analysis.LoadFromHistory(ctx, id)
		return messages.AnalysisLoaded{AnalysisID: id, Result: result, Status: analysis.Status(), Err: err}
	}
}

// View renders the history list.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("History"))
	b.WriteString("\n\n")

	switch {
	case v.refreshing:
		b.WriteString(v.styles.Muted.Render("Refreshing..."))
		b.WriteString("\n\n")
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading analysis..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [enter] open  [r] refresh  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.list.SetSize(width, height-6)
}

// List returns the underlying list component.
func (v *View) List() *list.HistoryList {
	return v.list
}

// Loading returns true while a history load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the error of the last failed analysis load.
func (v *View) Err() error {
	return v.err
}
