package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/pingbot/internal/app"
)

// NewConfigCommand creates the config command with its subcommands
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigValidateCommand(container),
	)

	return configCmd
}

// newConfigShowCommand creates the 'config show' subcommand
func newConfigShowCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show embedded defaults merged with the --config profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd.OutOrStdout(), container)
		},
	}
}

// newConfigValidateCommand creates the 'config validate' subcommand
func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.ConfigLoader == nil {
				return errors.New(ErrConfigLoaderUnavailable)
			}
			// Loading already validated; reaching here means the profile is usable.
			source := "embedded defaults"
			if path := container.ConfigLoader.ProfilePath(); path != "" {
				source = path
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", MsgConfigurationValid, source)
			return nil
		},
	}
}

func showConfiguration(out io.Writer, container *app.Container) error {
	if container.ConfigLoader == nil {
		return errors.New(ErrConfigLoaderUnavailable)
	}
	raw, err := yaml.Marshal(container.Config)
	if err != nil {
		return err
	}
	_, err = out.Write(raw)
	return err
}
