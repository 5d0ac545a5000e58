// Package result provides the analysis result view for the TUI.
package result

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/render"
)

// View displays the orchestrator's current result as rendered sections.
type View struct {
	styles   *styles.Styles
	registry *render.Registry
	status   domain.AnalysisStatus
	lines    []string

	scrollOffset int
	width        int
	height       int
	ready        bool
}

// NewView creates a new result view.
func NewView(s *styles.Styles, registry *render.Registry) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if registry == nil {
		registry = render.NewRegistry()
	}

	return &View{
		styles:   s,
		registry: registry,
		width:    80,
		height:   24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetStatus replaces the displayed snapshot. The scroll position resets
// when the displayed result changes.
func (v *View) SetStatus(status domain.AnalysisStatus) {
	if status.Result != v.status.Result {
		v.scrollOffset = 0
	}
	v.status = status
	v.lines = nil
	if status.Result != nil {
		units := v.registry.Render(status.Result, render.ContextFor(status))
		content := strings.TrimRight(render.Format(units, v.styles.Report()), "\n")
		v.lines = strings.Split(content, "\n")
	}
	if v.scrollOffset > v.maxScrollOffset() {
		v.scrollOffset = v.maxScrollOffset()
	}
}

// Status returns the displayed snapshot.
func (v *View) Status() domain.AnalysisStatus {
	return v.status
}

// Update handles messages for the result view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.StatusChanged:
		v.SetStatus(msg.Status)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	case "n":
		return v, changeView(messages.ViewAnalyze)
	case "h":
		return v, changeView(messages.ViewHistory)
	case "esc":
		return v, changeView(messages.ViewMenu)
	}

	return v, nil
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// visibleLines returns the number of result lines that fit on screen.
func (v *View) visibleLines() int {
	// Title, subtitle, banner, scroll indicator and help.
	return max(v.height-8, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the result.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n")
	if sub := v.subtitle(); sub != "" {
		b.WriteString(v.styles.Muted.Render(sub))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 1), 60)))
	b.WriteString("\n")

	if v.status.State == domain.StateFailed {
		banner := "Last submission failed"
		if v.status.ErrMessage != "" {
			banner += ": " + v.status.ErrMessage
		}
		if v.status.Result != nil {
			banner += " (showing previous result)"
		}
		b.WriteString(v.styles.Error.Render(banner))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.status.Result == nil {
		if v.status.State == domain.StateSubmitting {
			b.WriteString(v.styles.Warning.Render("Analysis in progress..."))
		} else {
			b.WriteString(v.styles.Muted.Render("No analysis yet. Press n to start one."))
		}
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	visible := v.visibleLines()
	end := min(v.scrollOffset+visible, len(v.lines))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.lines[i])
		b.WriteString("\n")
	}

	if len(v.lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  Line %d-%d of %d",
			v.scrollOffset+1, end, len(v.lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) title() string {
	r := v.status.Result
	if r == nil {
		return "Analysis result"
	}
	if r.BusinessInfo != nil && r.BusinessInfo.ProcessedData != nil && r.BusinessInfo.ProcessedData.BusinessName != "" {
		return r.BusinessInfo.ProcessedData.BusinessName
	}
	if v.status.Input != nil && v.status.Origin == domain.OriginSubmission && v.status.Input.BusinessName != "" {
		return v.status.Input.BusinessName
	}
	if r.AnalysisID != "" {
		return "Analysis " + r.AnalysisID
	}
	return "Analysis result"
}

func (v *View) subtitle() string {
	r := v.status.Result
	if r == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if r.AnalysisID != "" {
		parts = append(parts, "id "+r.AnalysisID)
	}
	switch v.status.Origin {
	case domain.OriginHistory:
		parts = append(parts, "from history")
	case domain.OriginSubmission:
		parts = append(parts, "new analysis")
	case domain.OriginNone:
	}
	if v.status.State == domain.StateSubmitting {
		parts = append(parts, "analyzing...")
	}
	return strings.Join(parts, " · ")
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓/PgUp/PgDn] scroll  [g/G] top/bottom  [n] new  [h] history  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	if v.scrollOffset > v.maxScrollOffset() {
		v.scrollOffset = v.maxScrollOffset()
	}
}

// ScrollOffset returns the first visible line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Lines returns the rendered result lines.
func (v *View) Lines() []string {
	return v.lines
}
