// Package config loads the board wiring description and the flashing recipes
// from the user configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/arduino/go-paths-helper"
	yaml "github.com/goccy/go-yaml"

	"github.com/arduino/arduino-flash-cli/internal/recipe"
)

// DefaultChip is the GPIO character device used when the configuration does
// not name one.
const DefaultChip = "gpiochip0"

// PinConfig describes one control signal: the line offset on the GPIO chip.
type PinConfig struct {
	Line int `yaml:"line" json:"line"`
}

// Configuration describes how the target board is wired to the host and which
// flashing recipes are available.
type Configuration struct {
	Chip          string                   `yaml:"chip,omitempty" json:"chip"`
	Boot          *PinConfig               `yaml:"boot" json:"boot"`
	Reset         *PinConfig               `yaml:"reset" json:"reset"`
	DefaultRecipe string                   `yaml:"default_recipe,omitempty" json:"default_recipe,omitempty"`
	Recipes       map[string]recipe.Recipe `yaml:"recipes,omitempty" json:"recipes,omitempty"`
}

// DefaultPath returns the configuration file path: the
// ARDUINO_FLASH_CLI__CONFIG environment variable if set, otherwise
// config.yaml in the user configuration directory.
func DefaultPath() (*paths.Path, error) {
	if p := paths.New(os.Getenv("ARDUINO_FLASH_CLI__CONFIG")); p != nil {
		return p, nil
	}
	xdgConfig, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return paths.New(xdgConfig).Join("arduino-flash-cli", "config.yaml"), nil
}

// Load reads and validates the configuration file.
func Load(path *paths.Path) (Configuration, error) {
	data, err := path.ReadFile()
	if err != nil {
		return Configuration{}, fmt.Errorf("reading configuration %s: %w", path, err)
	}

	var c Configuration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Configuration{}, fmt.Errorf("parsing configuration %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return Configuration{}, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return c, nil
}

func (c *Configuration) validate() error {
	if c.Chip == "" {
		c.Chip = DefaultChip
	}
	if c.Boot == nil {
		return fmt.Errorf("missing 'boot' pin")
	}
	if c.Reset == nil {
		return fmt.Errorf("missing 'reset' pin")
	}
	if c.Boot.Line == c.Reset.Line {
		return fmt.Errorf("'boot' and 'reset' cannot share line %d", c.Boot.Line)
	}
	if c.DefaultRecipe != "" {
		if _, ok := c.Recipes[c.DefaultRecipe]; !ok {
			return fmt.Errorf("the default recipe %q does not match any of the given recipes", c.DefaultRecipe)
		}
	}
	for name, r := range c.Recipes {
		if r.Empty() {
			return fmt.Errorf("recipe %q has no command", name)
		}
	}
	return nil
}
