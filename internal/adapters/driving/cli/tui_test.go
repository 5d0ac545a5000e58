package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive terminal user interface")
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUICmd_RequiresServices(t *testing.T) {
	setupTestServices(t, nil)

	_, err := executeCommand(t, "tui")

	assert.ErrorIs(t, err, errServicesNotConfigured)
}
