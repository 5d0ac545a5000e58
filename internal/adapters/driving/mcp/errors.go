// Package mcp provides an MCP (Model Context Protocol) server adapter for bizlens.
// It lets AI assistants submit businesses for analysis and read stored analyses.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis orchestrator is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

// ErrMissingFormFactory is returned when no form session factory is provided.
var ErrMissingFormFactory = errors.New("mcp: form session factory is required")
