// Package runner executes the external flashing tool and reports its exit
// status.
package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"github.com/arduino/arduino-flash-cli/internal/recipe"
)

// Runner runs one recipe to completion. It returns the exit code of the
// subprocess; err is non-nil only when the subprocess could not be run at all
// (e.g. the command was not found), never for a plain non-zero exit.
type Runner interface {
	Run(ctx context.Context, r recipe.Recipe, stdout, stderr io.Writer) (int, error)
}

// ExecRunner runs recipes as local subprocesses with inherited stdin.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, r recipe.Recipe, stdout, stderr io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
