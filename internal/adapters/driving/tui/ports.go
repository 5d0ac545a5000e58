// Package tui provides an interactive terminal user interface for bizlens.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis runs submissions and owns the displayed result.
	Analysis driving.AnalysisOrchestrator

	// History is the cached list of past analyses.
	History driving.HistoryService

	// Form holds the business input draft.
	Form driving.FormSession

	// Health checks the analysis service. Optional.
	Health driving.HealthService

	// Settings manages client settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	analysis driving.AnalysisOrchestrator,
	history driving.HistoryService,
	form driving.FormSession,
) *Ports {
	return &Ports{
		Analysis: analysis,
		History:  history,
		Form:     form,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	if p.Form == nil {
		return ErrMissingFormSession
	}
	return nil
}
