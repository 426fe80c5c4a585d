// Package sequencer drives the boot-select and reset lines of the target
// board around an invocation of the external flashing tool.
//
// The sequence mirrors what a human does with two jumper wires: hold the
// boot-select line low, pulse reset so the board wakes up in its bootloader,
// run the flashing tool, then release everything and pulse reset again so the
// board boots the freshly written firmware.
package sequencer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arduino/arduino-flash-cli/internal/pin"
	"github.com/arduino/arduino-flash-cli/internal/recipe"
	"github.com/arduino/arduino-flash-cli/internal/runner"
)

const (
	// bootSettle is how long the boot-select level is given to settle before
	// and after toggling it.
	bootSettle = 20 * time.Millisecond
	// resetPulseWidth is how long the reset line is held low.
	resetPulseWidth = 100 * time.Millisecond
	// resetSettle is how long the bootloader is given to become ready for
	// communication after reset is released.
	resetSettle = 100 * time.Millisecond
)

// DefaultRebootDelay is the delay applied when a delayed reboot is requested
// without an explicit duration.
const DefaultRebootDelay = 2 * time.Second

// FlashOptions tweak when (and whether) the board is rebooted into normal
// mode around the tool invocation.
type FlashOptions struct {
	// RebootAfter, when positive, reboots the board this long after the tool
	// was started, while the tool keeps running. This serves recipes that
	// flash and then attach a serial monitor: the monitor must see the
	// application firmware, not the bootloader.
	RebootAfter time.Duration

	// NoReboot skips the final reboot, leaving the board parked in its
	// bootloader until the next reset. Ignored when RebootAfter is set.
	NoReboot bool
}

// Acquire claims the boot-select and reset lines on the given GPIO chip. On
// failure no line stays claimed and the error wraps pin.ErrUnavailable.
func Acquire(chip string, bootLine, resetLine int) (boot, reset pin.Line, err error) {
	boot, err = pin.Request(chip, bootLine)
	if err != nil {
		return nil, nil, err
	}
	reset, err = pin.Request(chip, resetLine)
	if err != nil {
		_ = boot.Close()
		return nil, nil, err
	}
	return boot, reset, nil
}

// Sequencer owns the two control lines for the duration of one flashing
// attempt.
type Sequencer struct {
	boot  pin.Line
	reset pin.Line

	// sleep is swappable so tests do not spend wall-clock time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(boot, reset pin.Line) *Sequencer {
	return &Sequencer{
		boot:  boot,
		reset: reset,
		sleep: sleepCtx,
	}
}

// Close releases both lines and frees the underlying GPIO requests.
func (s *Sequencer) Close() error {
	return errors.Join(s.boot.Close(), s.reset.Close())
}

// EnterBootloader holds the boot-select line low and pulses reset, leaving
// the board parked in its bootloader. The boot-select line stays asserted
// until Reboot or Close.
func (s *Sequencer) EnterBootloader(ctx context.Context) error {
	slog.Info("holding boot-select line low")
	if err := s.boot.AssertLow(); err != nil {
		return err
	}
	if err := s.sleep(ctx, bootSettle); err != nil {
		return err
	}
	return s.PulseReset(ctx)
}

// Reboot releases the boot-select line and pulses reset so the board boots
// its application firmware.
func (s *Sequencer) Reboot(ctx context.Context) error {
	slog.Info("releasing boot-select line")
	if err := s.boot.Release(); err != nil {
		return err
	}
	if err := s.sleep(ctx, bootSettle); err != nil {
		return err
	}
	return s.PulseReset(ctx)
}

// PulseReset holds the reset line low briefly, releases it and waits for the
// board to come up again.
func (s *Sequencer) PulseReset(ctx context.Context) error {
	slog.Info("pulsing reset line")
	if err := s.reset.AssertLow(); err != nil {
		return err
	}
	if err := s.sleep(ctx, resetPulseWidth); err != nil {
		return err
	}
	if err := s.reset.Release(); err != nil {
		return err
	}
	return s.sleep(ctx, resetSettle)
}

// Flash reboots the board into its bootloader, runs the given recipe and
// finally reboots the board into normal mode (unless opts say otherwise).
// The recipe's exit code is returned as-is; err is non-nil only when the
// sequence itself failed or the tool could not be started.
//
// Both lines are released before Flash returns, whatever the outcome.
func (s *Sequencer) Flash(ctx context.Context, run runner.Runner, rec recipe.Recipe, stdout, stderr io.Writer, opts FlashOptions) (exitCode int, err error) {
	defer func() {
		if releaseErr := errors.Join(s.boot.Release(), s.reset.Release()); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	if err := s.EnterBootloader(ctx); err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.RebootAfter > 0 {
		g.Go(func() error {
			if err := s.sleep(gctx, opts.RebootAfter); err != nil {
				return err
			}
			return s.Reboot(gctx)
		})
	}

	slog.Info("executing recipe", "recipe", rec.String())
	exitCode, runErr := run.Run(gctx, rec, stdout, stderr)
	if err := errors.Join(runErr, g.Wait()); err != nil {
		return exitCode, err
	}

	if opts.RebootAfter <= 0 && !opts.NoReboot {
		if err := s.Reboot(ctx); err != nil {
			return exitCode, err
		}
	}
	return exitCode, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
