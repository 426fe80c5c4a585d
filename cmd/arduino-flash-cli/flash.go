package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/arduino/arduino-flash-cli/cmd/feedback"
	"github.com/arduino/arduino-flash-cli/internal/recipe"
	"github.com/arduino/arduino-flash-cli/internal/runner"
	"github.com/arduino/arduino-flash-cli/internal/sequencer"
)

func newFlashCmd() *cobra.Command {
	var rebootAfter time.Duration
	var noReboot bool
	cmd := &cobra.Command{
		Use:   "flash [recipe | command [args...]]",
		Short: "Reboot the board into its bootloader and run a flashing recipe",
		Long: "Holds the boot-select line low, pulses reset so the board enters its serial\n" +
			"bootloader, runs the given recipe (or the default one) and finally reboots the\n" +
			"board into normal mode. The recipe's arguments are forwarded verbatim and its\n" +
			"exit status becomes the exit status of this command.",
		Example: "  arduino-flash-cli flash\n" +
			"  arduino-flash-cli flash esptool\n" +
			"  arduino-flash-cli flash -- esptool.py --port /dev/ttyUSB0 write_flash 0x0 app.bin",
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			flashHandler(cmd.Context(), args, sequencer.FlashOptions{RebootAfter: rebootAfter, NoReboot: noReboot})
		},
		ValidArgsFunction: recipeNames,
	}
	cmd.Flags().DurationVar(&rebootAfter, "reboot-after", 0,
		"Reboot the board into normal mode this long after the tool starts instead of after it exits (useful for flash-then-monitor recipes)")
	cmd.Flags().Lookup("reboot-after").NoOptDefVal = sequencer.DefaultRebootDelay.String()
	cmd.Flags().BoolVar(&noReboot, "no-reboot", false,
		"Leave the board in its bootloader after the tool exits")
	cmd.MarkFlagsMutuallyExclusive("reboot-after", "no-reboot")
	return cmd
}

func flashHandler(ctx context.Context, args []string, opts sequencer.FlashOptions) {
	cfg := loadConfiguration()

	rec, err := recipe.Resolve(cfg.Recipes, cfg.DefaultRecipe, args)
	if err != nil {
		feedback.FatalError(err, feedback.ErrBadArgument)
	}

	stdout, stderr, err := feedback.DirectStreams()
	if err != nil {
		feedback.FatalError(err, feedback.ErrBadArgument)
	}

	boot, reset, err := sequencer.Acquire(cfg.Chip, cfg.Boot.Line, cfg.Reset.Line)
	if err != nil {
		feedback.FatalError(err, feedback.ErrPinUnavailable)
	}

	s := sequencer.New(boot, reset)
	code, flashErr := s.Flash(ctx, runner.ExecRunner{}, rec, stdout, stderr, opts)
	if err := s.Close(); err != nil {
		feedback.Warnf("Warning: releasing GPIO lines: %v", err)
	}

	if flashErr != nil {
		feedback.FatalError(flashErr, feedback.ErrGeneric)
	}
	if code != 0 {
		feedback.Fatal(fmt.Sprintf("%s exited with status %d", rec.Command, code), feedback.ExitCode(code))
	}
	feedback.PrintResult(flashResult{ExecutedRecipe: rec})
}

func recipeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	cfg, err := tryLoadConfiguration()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return slices.Sorted(maps.Keys(cfg.Recipes)), cobra.ShellCompDirectiveNoFileComp
}

type flashResult struct {
	ExecutedRecipe recipe.Recipe `json:"executed_recipe"`
}

func (r flashResult) String() string {
	return "Done!"
}

func (r flashResult) Data() interface{} {
	return r
}
