package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrMissingAnalysisService,
		ErrMissingHistoryService,
		ErrMissingFormSession,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errs {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingAnalysisService.Error(), "analysis service")
	assert.Contains(t, ErrMissingHistoryService.Error(), "history service")
	assert.Contains(t, ErrMissingFormSession.Error(), "form session")
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
