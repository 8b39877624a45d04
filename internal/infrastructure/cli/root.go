package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/pingbot/internal/app"
	"github.com/doeshing/pingbot/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration shared by every command.
type Options struct {
	ConfigPath string
	LogDir     string
	Verbose    bool
}

// NewRootCmd wires the cobra root command. The container is filled in once
// the persistent flags are parsed.
func NewRootCmd() *cobra.Command {
	var (
		opts     Options
		headless commands.HeadlessOptions
	)
	container := &app.Container{}

	root := &cobra.Command{
		Use:   "pingbot",
		Short: "Keep the Claude CLI warm with a periodic one-word question",
		Long: "pingbot asks the Claude CLI a short random question on a schedule and appends\n" +
			"every answer to a plain-text log. Without a subcommand it runs headless until interrupted.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[commands.AnnotationSkipContainer] != "" {
				return nil
			}
			return container.Load(cmd.Context(), app.Options{
				ConfigPath: opts.ConfigPath,
				LogDir:     opts.LogDir,
				Verbose:    opts.Verbose,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunHeadless(cmd, container, headless)
		},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Optional YAML profile overlaid on the built-in defaults")
	root.PersistentFlags().StringVar(&opts.LogDir, "log-dir", "", "Directory for the answers and debug logs (default ~/.pingbot)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include command details in the debug log")
	commands.BindHeadlessFlags(root, &headless)

	root.AddCommand(commands.NewTUICommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewOpenCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewModelsCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}
