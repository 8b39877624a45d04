package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/pingbot/internal/app"
)

const (
	// DefaultHistoryLimit matches the interactive shell's initial display.
	DefaultHistoryLimit = 20

	msgNoHistoryRecorded = "No answers recorded yet."
)

// NewHistoryCommand creates the history command with its subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded answers",
	}

	historyCmd.AddCommand(newHistoryListCommand(container))
	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errors.New("--limit must be > 0")
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func listHistoryEntries(out io.Writer, container *app.Container, limit int) error {
	if container.Answers == nil {
		return errors.New(ErrAnswersLogUnavailable)
	}
	lines, err := container.Answers.Tail(limit)
	if err != nil {
		return fmt.Errorf("read answers log: %w", err)
	}
	if len(lines) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}
	for _, line := range lines {
		renderAnswerLine(out, line)
	}
	return nil
}
