package commands

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doeshing/pingbot/internal/app"
	"github.com/doeshing/pingbot/internal/application/session"
	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/infrastructure/tui"
	"github.com/doeshing/pingbot/internal/ports"
	"github.com/doeshing/pingbot/internal/version"
)

// NewTUICommand creates the interactive shell command
func NewTUICommand(container *app.Container) *cobra.Command {
	var (
		model    string
		interval time.Duration
		autoRun  bool
	)

	cmd := &cobra.Command{
		Use:     "tui",
		Aliases: []string{"ui"},
		Short:   "Interactive shell with start/stop controls",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New(ErrNotATerminal)
			}
			if interval < 0 {
				return errors.New(ErrNegativeDuration)
			}

			cfg := container.Config
			settings := domain.Settings{Interval: cfg.Interval(), Model: cfg.InteractiveModel()}
			if interval > 0 {
				settings.Interval = interval
			}
			if model != "" {
				settings.Model = model
			}

			rt, err := container.Runtime(nil, false)
			if err != nil {
				return err
			}

			sess := session.New(rt.Schedule, settings)
			if autoRun {
				sess.Start()
			}

			rt.Logger.Info("Interactive shell opened.", map[string]interface{}{"strategy": rt.Strategy})
			err = tui.Run(sess, container.Answers, container.Opener, tui.Config{
				Models:    cfg.Models,
				Presets:   cfg.IntervalPresetDurations(),
				SeedLines: cfg.Logging.DisplayLines,
				Version:   version.Version,
			})
			shutdownSession(sess, cfg.ReplyTimeout()+domain.DefaultWaitDelay, rt.Logger)
			rt.Logger.Info("Interactive shell closed.", nil)
			_ = rt.Close()
			return err
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Initial model (default: first catalog entry)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Initial wait between cycles")
	cmd.Flags().BoolVar(&autoRun, "start", false, "Start the schedule immediately")
	return cmd
}

type drainableSession interface {
	Close()
	WaitTimeout(d time.Duration) bool
}

// shutdownSession closes sess and gives an in-flight cycle up to grace to
// finish writing its logs. The debug log must stay open until it returns.
func shutdownSession(sess drainableSession, grace time.Duration, logger ports.Logger) {
	sess.Close()
	if !sess.WaitTimeout(grace) {
		logger.Warn("Cycle still running at shutdown.", map[string]interface{}{"grace": grace.String()})
	}
}
