// Package input provides form input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// FieldInput is a labelled form field. Free text fields wrap a bubbles
// textinput; fields with a fixed set of choices cycle through them.
type FieldInput struct {
	field     domain.Field
	textinput textinput.Model
	choices   []string
	choice    int
	errMsg    string
	focused   bool
	styles    *styles.Styles
}

// NewFieldInput creates a free text input for field.
func NewFieldInput(field domain.Field, placeholder string, s *styles.Styles) *FieldInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40

	return &FieldInput{
		field:     field,
		textinput: ti,
		styles:    s,
	}
}

// NewChoiceInput creates an input that cycles through choices.
func NewChoiceInput(field domain.Field, choices []string, s *styles.Styles) *FieldInput {
	f := NewFieldInput(field, "", s)
	f.choices = choices
	return f
}

// ChoicesFor returns the fixed choices of a field, or nil for free text fields.
func ChoicesFor(field domain.Field) []string {
	switch field {
	case domain.FieldTechStackMethod:
		methods := domain.TechStackMethods()
		out := make([]string, len(methods))
		for i, m := range methods {
			out[i] = m.String()
		}
		return out
	case domain.FieldWebsiteAnalysisMethod:
		methods := domain.WebsiteAnalysisMethods()
		out := make([]string, len(methods))
		for i, m := range methods {
			out[i] = m.String()
		}
		return out
	case domain.FieldGenerateOutreach:
		return []string{"false", "true"}
	default:
		return nil
	}
}

// Init initialises the input.
func (f *FieldInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Choice inputs ignore key messages;
// use Cycle to change them.
func (f *FieldInput) Update(msg tea.Msg) (*FieldInput, tea.Cmd) {
	if f.IsChoice() || !f.focused {
		return f, nil
	}
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label, the value and any field error.
func (f *FieldInput) View() string {
	label := f.styles.FieldLabel.Render(f.field.Label())

	var value string
	switch {
	case f.IsChoice() && f.focused:
		value = f.styles.Selected.Render("< " + f.Value() + " >")
	case f.IsChoice():
		value = f.styles.Normal.Render("  " + f.Value())
	default:
		value = f.textinput.View()
	}

	indicator := "  "
	if f.focused {
		indicator = f.styles.Title.Render("> ")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, indicator, label, value)
	if f.errMsg != "" {
		line += "\n" + f.styles.FieldError.Render("    "+f.errMsg)
	}
	return line
}

// Field returns the field this input edits.
func (f *FieldInput) Field() domain.Field {
	return f.field
}

// IsChoice returns true if the input cycles through fixed choices.
func (f *FieldInput) IsChoice() bool {
	return len(f.choices) > 0
}

// Value returns the current value.
func (f *FieldInput) Value() string {
	if f.IsChoice() {
		return f.choices[f.choice]
	}
	return f.textinput.Value()
}

// SetValue sets the value. Unknown choices are ignored.
func (f *FieldInput) SetValue(value string) {
	if !f.IsChoice() {
		f.textinput.SetValue(value)
		return
	}
	for i, c := range f.choices {
		if c == value {
			f.choice = i
			return
		}
	}
}

// Cycle moves a choice input by delta, wrapping at either end.
func (f *FieldInput) Cycle(delta int) {
	if !f.IsChoice() {
		return
	}
	n := len(f.choices)
	f.choice = ((f.choice+delta)%n + n) % n
}

// SetError sets the inline error message. An empty message clears it.
func (f *FieldInput) SetError(msg string) {
	f.errMsg = msg
}

// Error returns the inline error message.
func (f *FieldInput) Error() string {
	return f.errMsg
}

// Focus sets focus on the input.
func (f *FieldInput) Focus() tea.Cmd {
	f.focused = true
	if f.IsChoice() {
		return nil
	}
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FieldInput) Blur() {
	f.focused = false
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FieldInput) Focused() bool {
	return f.focused
}

// SetWidth sets the width of the text area.
func (f *FieldInput) SetWidth(width int) {
	inputWidth := width - 32
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}
