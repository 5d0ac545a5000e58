package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_InitAndUpdate(t *testing.T) {
	bar := NewBar(nil, nil)

	assert.Nil(t, bar.Init())

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		want    string
	}{
		{"ready", StateReady, "", "Ready"},
		{"ready with message", StateReady, "Settings saved", "Settings saved"},
		{"submitting", StateSubmitting, "", "Analyzing..."},
		{"succeeded", StateSucceeded, "", "Analysis complete"},
		{"succeeded with message", StateSucceeded, "Loaded abc123", "Loaded abc123"},
		{"error", StateError, "", "Error"},
		{"error with message", StateError, "timeout", "Error: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)

			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestStatusBar_Bindings(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)
	bar.SetWidth(120)

	assert.Contains(t, bar.View(), "esc: back")

	bar.SetBindings(km.FormHelp())
	assert.Contains(t, bar.View(), "tab: next field")

	bar.SetBindings(nil)
	assert.Contains(t, bar.View(), "?: help")
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
}

func TestStateFor(t *testing.T) {
	assert.Equal(t, StateReady, StateFor(domain.StateIdle))
	assert.Equal(t, StateSubmitting, StateFor(domain.StateSubmitting))
	assert.Equal(t, StateSucceeded, StateFor(domain.StateSucceeded))
	assert.Equal(t, StateError, StateFor(domain.StateFailed))
}
