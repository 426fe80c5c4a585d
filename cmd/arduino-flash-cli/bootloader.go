package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/arduino/arduino-flash-cli/cmd/feedback"
	"github.com/arduino/arduino-flash-cli/internal/sequencer"
)

func newBootloaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootloader",
		Short: "Reboot the board into its bootloader without running any tool",
		Long: "Holds the boot-select line low and pulses reset. The board samples the line\n" +
			"during reset and parks in its bootloader until the next reset, so the lines are\n" +
			"released again before this command returns.",
		Args: cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			bootloaderHandler(cmd.Context())
		},
	}
}

func bootloaderHandler(ctx context.Context) {
	cfg := loadConfiguration()

	boot, reset, err := sequencer.Acquire(cfg.Chip, cfg.Boot.Line, cfg.Reset.Line)
	if err != nil {
		feedback.FatalError(err, feedback.ErrPinUnavailable)
	}

	s := sequencer.New(boot, reset)
	enterErr := s.EnterBootloader(ctx)
	if err := s.Close(); err != nil {
		feedback.Warnf("Warning: releasing GPIO lines: %v", err)
	}
	if enterErr != nil {
		feedback.FatalError(enterErr, feedback.ErrGeneric)
	}
	feedback.Print("Board is in bootloader mode until the next reset.")
}
