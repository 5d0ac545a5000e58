// Package analyze provides the business input form view for the TUI.
package analyze

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
)

// ErrNoAnalysisService indicates that no analysis service was provided.
var ErrNoAnalysisService = errors.New("analysis service is required")

var placeholders = map[domain.Field]string{
	domain.FieldBusinessName:        "e.g. Wedding Makeover Studio",
	domain.FieldBusinessCount:       "1-10",
	domain.FieldBusinessCategory:    "optional",
	domain.FieldBusinessSubcategory: "optional",
	domain.FieldCountry:             "optional",
	domain.FieldState:               "optional",
	domain.FieldCity:                "optional",
	domain.FieldArea:                "optional",
}

// View is the business input form.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	inputs    []*input.FieldInput
	focus     int
	spinner   spinner.Model
	statusbar *status.Bar

	analysis driving.AnalysisOrchestrator
	form     driving.FormSession
	ctx      context.Context

	width      int
	height     int
	ready      bool
	submitting bool
	err        error
}

// NewView creates a new form view backed by a form session.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	analysis driving.AnalysisOrchestrator,
	form driving.FormSession,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	fields := domain.Fields()
	inputs := make([]*input.FieldInput, 0, len(fields))
	for _, f := range fields {
		if choices := input.ChoicesFor(f); choices != nil {
			inputs = append(inputs, input.NewChoiceInput(f, choices, s))
			continue
		}
		inputs = append(inputs, input.NewFieldInput(f, placeholders[f], s))
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Warning

	v := &View{
		styles:    s,
		keymap:    km,
		inputs:    inputs,
		spinner:   sp,
		statusbar: status.NewBar(s, km),
		analysis:  analysis,
		form:      form,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.statusbar.SetBindings(km.FormHelp())
	v.Sync()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return v.inputs[v.focus].Focus()
}

// Sync loads field values from the form session.
func (v *View) Sync() {
	if v.form == nil {
		return
	}
	for _, in := range v.inputs {
		in.SetValue(v.form.Value(in.Field()))
	}
}

// Update handles messages for the form view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !v.submitting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.AnalysisCompleted:
		v.handleCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err, msg.Err.Error())
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case msg.Type == tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(key, v.keymap.Submit):
		return v, v.submit()

	case key == "tab" || key == "down":
		return v, v.moveFocus(1)

	case key == "shift+tab" || key == "up":
		return v, v.moveFocus(-1)
	}

	current := v.inputs[v.focus]
	if current.IsChoice() {
		switch key {
		case " ", "right":
			current.Cycle(1)
		case "left":
			current.Cycle(-1)
		default:
			return v, nil
		}
		v.store(current)
		return v, nil
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = current.Update(msg)
	v.store(current)
	return v, cmd
}

// store writes an input's value into the form session and shows any parse error.
func (v *View) store(in *input.FieldInput) {
	if v.form == nil {
		return
	}
	if err := v.form.Set(in.Field(), in.Value()); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			in.SetError(verr.Fields[in.Field()])
			return
		}
		in.SetError(err.Error())
		return
	}
	in.SetError("")
}

func (v *View) moveFocus(delta int) tea.Cmd {
	v.inputs[v.focus].Blur()
	n := len(v.inputs)
	v.focus = ((v.focus+delta)%n + n) % n
	return v.inputs[v.focus].Focus()
}

// submit validates the draft and starts a submission. Invalid drafts never
// reach the service.
func (v *View) submit() tea.Cmd {
	if v.submitting {
		return nil
	}
	if v.analysis == nil || v.form == nil {
		v.setError(ErrNoAnalysisService, ErrNoAnalysisService.Error())
		return nil
	}

	snapshot, err := v.form.Snapshot()
	if err != nil {
		v.showFieldErrors(err)
		v.setError(err, "Fix the highlighted fields")
		return nil
	}

	v.submitting = true
	v.err = nil
	v.statusbar.SetState(status.StateSubmitting)
	v.statusbar.SetMessage("")

	analysis := v.analysis
	ctx := v.ctx
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		result, err := analysis.Submit(ctx, snapshot)
		return messages.AnalysisCompleted{Result: result, Status: analysis.Status(), Err: err}
	})
}

func (v *View) showFieldErrors(err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, in := range v.inputs {
		in.SetError(verr.Fields[in.Field()])
	}
}

func (v *View) handleCompleted(msg messages.AnalysisCompleted) {
	v.submitting = false
	if errors.Is(msg.Err, domain.ErrSubmissionInProgress) {
		v.setError(msg.Err, "An analysis is already running")
		return
	}
	if msg.Err != nil {
		v.showFieldErrors(msg.Err)
		text := msg.Status.ErrMessage
		if text == "" {
			text = msg.Err.Error()
		}
		v.setError(msg.Err, text)
		return
	}
	v.err = nil
	v.statusbar.SetState(status.StateSucceeded)
	v.statusbar.SetMessage("")
}

func (v *View) setError(err error, text string) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(text)
}

// View renders the form.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, len(v.inputs)+8)
	sections = append(sections, v.styles.Title.Render("New analysis"), "")

	for _, in := range v.inputs {
		sections = append(sections, in.View())
	}
	sections = append(sections, "")

	switch {
	case v.submitting:
		sections = append(sections, v.spinner.View()+" "+v.styles.Warning.Render("Analyzing, this can take a minute..."))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.statusbar.Message()))
	default:
		sections = append(sections, v.styles.Muted.Render("Press enter to analyze"))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, in := range v.inputs {
		in.SetWidth(width)
	}
	v.statusbar.SetWidth(width)
}

// Submitting returns true while a submission started here is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Focused returns the field that has focus.
func (v *View) Focused() domain.Field {
	return v.inputs[v.focus].Field()
}

// FieldError returns the inline error shown for a field.
func (v *View) FieldError(field domain.Field) string {
	for _, in := range v.inputs {
		if in.Field() == field {
			return in.Error()
		}
	}
	return ""
}

// Values returns the displayed field values keyed by field.
func (v *View) Values() map[domain.Field]string {
	out := make(map[domain.Field]string, len(v.inputs))
	for _, in := range v.inputs {
		out[in.Field()] = strings.TrimSpace(in.Value())
	}
	return out
}
