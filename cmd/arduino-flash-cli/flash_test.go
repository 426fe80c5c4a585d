package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arduino/arduino-flash-cli/internal/sequencer"
)

func TestFlashCmdFlags(t *testing.T) {
	cmd := newFlashCmd()

	rebootAfter := cmd.Flags().Lookup("reboot-after")
	require.NotNil(t, rebootAfter)
	// bare --reboot-after falls back to the sequencer's default delay
	assert.Equal(t, sequencer.DefaultRebootDelay.String(), rebootAfter.NoOptDefVal)

	noReboot := cmd.Flags().Lookup("no-reboot")
	require.NotNil(t, noReboot)
	assert.Equal(t, "false", noReboot.DefValue)
}
