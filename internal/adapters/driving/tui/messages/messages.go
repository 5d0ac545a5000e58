// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAnalyze is the business input form.
	ViewAnalyze
	// ViewResult shows the displayed analysis result.
	ViewResult
	// ViewHistory lists past analyses.
	ViewHistory
	// ViewSettings shows and edits client settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAnalyze:
		return "analyze"
	case ViewResult:
		return "result"
	case ViewHistory:
		return "history"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// AnalysisCompleted carries the outcome of a submission.
type AnalysisCompleted struct {
	Result *domain.AnalysisResult
	Status domain.AnalysisStatus
	Err    error
}

// AnalysisLoaded carries a result loaded from history.
type AnalysisLoaded struct {
	AnalysisID string
	Result     *domain.AnalysisResult
	Status     domain.AnalysisStatus
	Err        error
}

// HistoryLoaded carries a refreshed history list.
type HistoryLoaded struct {
	Entries []domain.HistoryEntry
	Err     error
}

// StatusChanged carries an orchestrator snapshot.
type StatusChanged struct {
	Status domain.AnalysisStatus
}

// HealthChecked carries the service health.
type HealthChecked struct {
	Health *domain.ServiceHealth
	Err    error
}

// SettingsLoaded carries the client settings.
type SettingsLoaded struct {
	Settings *domain.ClientSettings
	Err      error
}

// SettingsSaved signals a setting was saved.
type SettingsSaved struct {
	Key string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
