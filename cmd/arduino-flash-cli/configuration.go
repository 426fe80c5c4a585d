package main

import (
	"github.com/arduino/go-paths-helper"

	"github.com/arduino/arduino-flash-cli/cmd/feedback"
	"github.com/arduino/arduino-flash-cli/internal/config"
)

// loadConfiguration reads the configuration file selected with --config (or
// the default location) and terminates the process on failure.
func loadConfiguration() config.Configuration {
	c, err := tryLoadConfiguration()
	if err != nil {
		feedback.FatalError(err, feedback.ErrBadArgument)
	}
	return c
}

func tryLoadConfiguration() (config.Configuration, error) {
	path := paths.New(configPath)
	if path == nil {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Configuration{}, err
		}
	}
	return config.Load(path)
}
