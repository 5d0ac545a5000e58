package mcp

import (
	"github.com/custodia-labs/bizlens-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis submits analyses and loads stored ones.
	Analysis driving.AnalysisOrchestrator

	// History lists stored analyses. Optional.
	History driving.HistoryService

	// NewForm returns a fresh form session per tool call, so concurrent
	// calls never share a draft.
	NewForm func() driving.FormSession
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	if p.NewForm == nil {
		return ErrMissingFormFactory
	}
	return nil
}
