package runner

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arduino/arduino-flash-cli/internal/recipe"
)

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell commands")
	}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		var out, errOut bytes.Buffer
		code, err := ExecRunner{}.Run(ctx, recipe.Recipe{Command: "sh", Args: []string{"-c", "echo flashed"}}, &out, &errOut)
		require.NoError(t, err)
		assert.Equal(t, 0, code)
		assert.Equal(t, "flashed\n", out.String())
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		var out, errOut bytes.Buffer
		code, err := ExecRunner{}.Run(ctx, recipe.Recipe{Command: "sh", Args: []string{"-c", "exit 3"}}, &out, &errOut)
		require.NoError(t, err)
		assert.Equal(t, 3, code)
	})

	t.Run("missing command is an error", func(t *testing.T) {
		var out, errOut bytes.Buffer
		_, err := ExecRunner{}.Run(ctx, recipe.Recipe{Command: "definitely-not-a-real-tool"}, &out, &errOut)
		assert.Error(t, err)
	})

	t.Run("cancelled context stops the command", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		var out, errOut bytes.Buffer
		code, err := ExecRunner{}.Run(ctx, recipe.Recipe{Command: "sleep", Args: []string{"10"}}, &out, &errOut)
		if err == nil {
			assert.NotEqual(t, 0, code)
		}
	})
}
