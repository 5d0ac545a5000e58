package tui

import "errors"

// ErrMissingAnalysisService is returned when the analysis orchestrator is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// ErrMissingHistoryService is returned when the history service is not provided.
var ErrMissingHistoryService = errors.New("tui: history service is required")

// ErrMissingFormSession is returned when the form session is not provided.
var ErrMissingFormSession = errors.New("tui: form session is required")

// ErrInvalidPorts is returned when no ports are provided.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
