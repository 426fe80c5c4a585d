// Package recipe defines the command lines the CLI can delegate flashing to.
package recipe

import (
	"errors"
	"fmt"
	"strings"
)

// Recipe is one external command invocation: the flashing tool and the
// arguments forwarded to it verbatim.
type Recipe struct {
	Command string   `yaml:"command" json:"command"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty"`
}

func (r Recipe) String() string {
	if len(r.Args) == 0 {
		return r.Command
	}
	return r.Command + " " + strings.Join(r.Args, " ")
}

// Empty returns true if the recipe has no command.
func (r Recipe) Empty() bool {
	return r.Command == ""
}

// ErrNoDefault is returned by Resolve when no arguments were given and no
// default recipe is configured.
var ErrNoDefault = errors.New("no recipe given and no default recipe configured")

// Resolve picks the recipe to execute from the command line arguments:
//   - no arguments: the configured default recipe
//   - a single argument naming a configured recipe: that recipe
//   - anything else: the arguments themselves, taken verbatim as command
//     followed by its arguments
func Resolve(recipes map[string]Recipe, defaultRecipe string, args []string) (Recipe, error) {
	switch {
	case len(args) == 0:
		r, ok := recipes[defaultRecipe]
		if !ok {
			return Recipe{}, ErrNoDefault
		}
		return r, nil
	case len(args) == 1:
		if r, ok := recipes[args[0]]; ok {
			return r, nil
		}
		fallthrough
	default:
		r := Recipe{Command: args[0]}
		if len(args) > 1 {
			r.Args = args[1:]
		}
		if r.Empty() {
			return Recipe{}, fmt.Errorf("empty command")
		}
		return r, nil
	}
}
