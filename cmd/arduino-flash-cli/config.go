package main

import (
	"fmt"
	"strings"

	"github.com/arduino/go-paths-helper"
	"github.com/spf13/cobra"

	"github.com/arduino/arduino-flash-cli/cmd/feedback"
	"github.com/arduino/arduino-flash-cli/internal/config"
	"github.com/arduino/arduino-flash-cli/internal/fatomic"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage arduino-flash-cli config",
	}

	configCmd.AddCommand(newConfigGetCmd())
	configCmd.AddCommand(newConfigInitCmd())

	return configCmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "get configuration",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			getConfigHandler()
		},
	}
}

// starterConfig documents the wiring between the host header and the target
// board; the line offsets match the usual Raspberry Pi hookup.
const starterConfig = `# arduino-flash-cli configuration
chip: gpiochip0
boot:
  line: 4
reset:
  line: 17
default_recipe: esptool
recipes:
  esptool:
    command: esptool.py
    args: ["--port", "/dev/ttyUSB0", "write_flash", "0x0", "firmware.bin"]
`

func newConfigInitCmd() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			initConfigHandler(overwrite)
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing configuration file")
	return cmd
}

func initConfigHandler(overwrite bool) {
	path := paths.New(configPath)
	if path == nil {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			feedback.FatalError(err, feedback.ErrGeneric)
		}
	}
	if path.Exist() && !overwrite {
		feedback.Fatal(fmt.Sprintf("%s already exists, use --overwrite to replace it", path), feedback.ErrBadArgument)
	}
	if err := path.Parent().MkdirAll(); err != nil {
		feedback.FatalError(err, feedback.ErrGeneric)
	}
	if err := fatomic.WriteFile(path.String(), []byte(starterConfig), 0o644); err != nil {
		feedback.FatalError(err, feedback.ErrGeneric)
	}
	feedback.Printf("Configuration written to %s", path)
}

func getConfigHandler() {
	feedback.PrintResult(configResult{
		Config: loadConfiguration(),
	})
}

type configResult struct {
	Config config.Configuration
}

func (r configResult) String() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("GPIO Chip:      %s\n", r.Config.Chip))
	b.WriteString(fmt.Sprintf("Boot Line:      %d\n", r.Config.Boot.Line))
	b.WriteString(fmt.Sprintf("Reset Line:     %d\n", r.Config.Reset.Line))
	b.WriteString(fmt.Sprintf("Default Recipe: %s\n", r.Config.DefaultRecipe))

	return b.String()
}

func (r configResult) Data() interface{} {
	return r.Config
}
