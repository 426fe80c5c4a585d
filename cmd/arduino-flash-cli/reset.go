package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/arduino/arduino-flash-cli/cmd/feedback"
	"github.com/arduino/arduino-flash-cli/internal/sequencer"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Pulse the reset line so the board reboots into normal mode",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			resetHandler(cmd.Context())
		},
	}
}

func resetHandler(ctx context.Context) {
	cfg := loadConfiguration()

	boot, reset, err := sequencer.Acquire(cfg.Chip, cfg.Boot.Line, cfg.Reset.Line)
	if err != nil {
		feedback.FatalError(err, feedback.ErrPinUnavailable)
	}

	s := sequencer.New(boot, reset)
	rebootErr := s.Reboot(ctx)
	if err := s.Close(); err != nil {
		feedback.Warnf("Warning: releasing GPIO lines: %v", err)
	}
	if rebootErr != nil {
		feedback.FatalError(rebootErr, feedback.ErrGeneric)
	}
	feedback.Print("Board rebooted.")
}
