package config

import (
	"testing"

	"github.com/arduino/go-paths-helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("complete configuration", func(t *testing.T) {
		c, err := Load(paths.New("testdata", "complete.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "gpiochip1", c.Chip)
		assert.Equal(t, 4, c.Boot.Line)
		assert.Equal(t, 17, c.Reset.Line)
		assert.Equal(t, "esptool", c.DefaultRecipe)

		r, ok := c.Recipes["esptool"]
		require.True(t, ok)
		assert.Equal(t, "esptool.py", r.Command)
		assert.Equal(t, []string{"--port", "/dev/ttyUSB0", "write_flash", "0x0", "firmware.bin"}, r.Args)
	})

	t.Run("chip defaults to gpiochip0", func(t *testing.T) {
		c, err := Load(paths.New("testdata", "minimal.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultChip, c.Chip)
		assert.Empty(t, c.Recipes)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(paths.New("testdata", "nonexistent.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown default recipe", func(t *testing.T) {
		_, err := Load(paths.New("testdata", "bad_default.yaml"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "does not match any of the given recipes")
	})

	t.Run("boot and reset on the same line", func(t *testing.T) {
		_, err := Load(paths.New("testdata", "shared_line.yaml"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "cannot share line")
	})

	t.Run("missing pins", func(t *testing.T) {
		_, err := Load(paths.New("testdata", "no_pins.yaml"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "missing 'boot' pin")
	})
}
