package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/pingbot/internal/app"
	"github.com/doeshing/pingbot/internal/infrastructure/opener"
)

// NewOpenCommand creates the open command
func NewOpenCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the answers log in the default viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Opener == nil || container.Answers == nil {
				return errors.New(ErrOpenerUnavailable)
			}
			path := container.Answers.Path()
			if err := container.Opener.Open(path); err != nil {
				if errors.Is(err, opener.ErrNotCreated) {
					return fmt.Errorf("no answers recorded yet (%s)", path)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
