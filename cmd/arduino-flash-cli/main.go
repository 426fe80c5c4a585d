// This file is part of arduino-flash-cli.
//
// Copyright 2025 ARDUINO SA (http://www.arduino.cc/)
//
// This software is released under the GNU General Public License version 3,
// which covers the main part of arduino-flash-cli.
// The terms of this license can be found at:
// https://www.gnu.org/licenses/gpl-3.0.en.html
//
// You can be released from the requirements of the above licenses by purchasing
// a commercial license. Buying such a license is mandatory if you want to
// modify or otherwise use the software for commercial activities involving the
// Arduino software without disclosing the source code of your own applications.
// To purchase a commercial license, send an email to license@arduino.cc.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.bug.st/cleanup"

	"github.com/arduino/arduino-flash-cli/cmd/arduino-flash-cli/completion"
	"github.com/arduino/arduino-flash-cli/cmd/arduino-flash-cli/version"
	"github.com/arduino/arduino-flash-cli/cmd/feedback"
)

// Version will be set a build time with -ldflags
var Version string = "0.0.0-dev"
var configPath string
var format string
var logLevelStr string

func run() error {
	rootCmd := &cobra.Command{
		Use:   "arduino-flash-cli",
		Short: "Reboot an attached board into its bootloader and delegate flashing to an external tool",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			format, ok := feedback.ParseOutputFormat(format)
			if !ok {
				feedback.Fatal(fmt.Sprintf("Invalid output format: %s", format), feedback.ErrBadArgument)
			}
			feedback.SetFormat(format)

			logLevel, err := ParseLogLevel(logLevelStr)
			if err != nil {
				feedback.FatalError(err, feedback.ErrBadArgument)
			}
			slog.SetLogLoggerLevel(logLevel)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path of the configuration file")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "Output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logLevelStr, "log-level", "error", "Set the log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newFlashCmd(),
		newResetCmd(),
		newBootloaderCmd(),
		newRecipesCmd(),
		newConfigCmd(),
		completion.NewCompletionCommand(),
		version.NewVersionCmd(Version),
	)

	ctx := context.Background()
	ctx, _ = cleanup.InterruptableContext(ctx)
	return rootCmd.ExecuteContext(ctx)
}

func main() {
	if err := run(); err != nil {
		feedback.FatalError(err, feedback.ErrGeneric)
	}
}

func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(level))
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return l, nil
}
