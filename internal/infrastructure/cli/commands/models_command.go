package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/pingbot/internal/app"
	"github.com/doeshing/pingbot/internal/domain"
)

// NewModelsCommand creates the models command with its subcommands
func NewModelsCommand(container *app.Container) *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Show the model catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			listModels(cmd.OutOrStdout(), container.Config)
			return nil
		},
	}

	modelsCmd.AddCommand(newModelsListCommand(container))
	return modelsCmd
}

// newModelsListCommand creates the 'models list' subcommand
func newModelsListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the models the interactive shell cycles through",
		RunE: func(cmd *cobra.Command, args []string) error {
			listModels(cmd.OutOrStdout(), container.Config)
			return nil
		},
	}
}

func listModels(out io.Writer, cfg domain.Config) {
	current := cfg.InteractiveModel()
	for _, model := range cfg.Models {
		marker := " "
		if model.Name == current {
			marker = "*"
		}
		if model.Label != "" {
			fmt.Fprintf(out, "%s %-8s %s\n", marker, model.Name, model.Label)
		} else {
			fmt.Fprintf(out, "%s %s\n", marker, model.Name)
		}
	}
}
