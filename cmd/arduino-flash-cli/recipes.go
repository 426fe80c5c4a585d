package main

import (
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/arduino/arduino-flash-cli/cmd/feedback"
	"github.com/arduino/arduino-flash-cli/internal/recipe"
)

func newRecipesCmd() *cobra.Command {
	recipesCmd := &cobra.Command{
		Use:   "recipes",
		Short: "Manage flashing recipes",
	}

	recipesCmd.AddCommand(newRecipesListCmd())

	return recipesCmd
}

func newRecipesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured flashing recipes",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			recipesListHandler()
		},
	}
}

func recipesListHandler() {
	cfg := loadConfiguration()
	feedback.PrintResult(recipesListResult{
		Default: cfg.DefaultRecipe,
		Recipes: cfg.Recipes,
	})
}

type recipesListResult struct {
	Default string                   `json:"default,omitempty"`
	Recipes map[string]recipe.Recipe `json:"recipes"`
}

var cleanStyle = table.Style{
	Name: "Clean",
	Box:  table.BoxStyle{PaddingRight: " "},
	Format: table.FormatOptions{
		Header: text.FormatUpper,
		Row:    text.FormatDefault,
	},
	Options: table.Options{
		DrawBorder:      false,
		SeparateColumns: true,
	},
}

func (r recipesListResult) String() string {
	t := table.NewWriter()
	t.SetStyle(cleanStyle)
	t.AppendHeader(table.Row{"NAME", "COMMAND", ""})

	for _, name := range slices.Sorted(maps.Keys(r.Recipes)) {
		marker := ""
		if name == r.Default {
			marker = "(default)"
		}
		t.AppendRow(table.Row{name, r.Recipes[name].String(), marker})
	}
	return t.Render()
}

func (r recipesListResult) Data() interface{} {
	return r
}
