package commands

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/doeshing/pingbot/internal/app"
	"github.com/doeshing/pingbot/internal/application/schedule"
)

// HeadlessOptions are the flags of the headless bot.
type HeadlessOptions struct {
	Stdout   bool
	Once     bool
	Model    string
	Interval time.Duration
	Timeout  time.Duration
}

// BindHeadlessFlags registers the headless flags on cmd.
func BindHeadlessFlags(cmd *cobra.Command, opts *HeadlessOptions) {
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Mirror debug log lines to the console")
	cmd.Flags().BoolVar(&opts.Once, "once", false, "Run exactly one cycle and exit")
	cmd.Flags().StringVarP(&opts.Model, "model", "m", "", "Model passed to the assistant (default from config)")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "Wait between cycles (default from config, 15m)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Reply timeout per cycle (default from config, 120s)")
}

// RunHeadless runs the scheduler until interrupted, or for one cycle with --once.
func RunHeadless(cmd *cobra.Command, container *app.Container, opts HeadlessOptions) error {
	if opts.Interval < 0 || opts.Timeout < 0 {
		return errors.New(ErrNegativeDuration)
	}
	cfg := &container.Config
	if opts.Timeout > 0 {
		if err := cfg.SetReplyTimeout(opts.Timeout); err != nil {
			return err
		}
	}
	interval := cfg.Interval()
	if opts.Interval > 0 {
		interval = opts.Interval
	}
	model := cfg.Assistant.Model
	if opts.Model != "" {
		model = opts.Model
	}

	var mirror io.Writer
	colored := false
	if opts.Stdout {
		mirror = cmd.OutOrStdout()
		colored = stdoutIsTerminal(cmd)
	}

	rt, err := container.Runtime(mirror, colored)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOpts := schedule.Options{Once: opts.Once, Interval: interval, Model: model}
	if !opts.Once || opts.Stdout || !stdoutIsTerminal(cmd) {
		return rt.Schedule.Run(ctx, runOpts)
	}

	// One-shot from a terminal: animate while waiting, then show the record.
	spinner := NewSpinner(cmd.OutOrStdout(), "Asking "+cfg.Assistant.Executable+"...")
	spinner.Start()
	err = rt.Schedule.Run(ctx, runOpts)
	spinner.Stop()
	if err != nil {
		return err
	}
	lines, err := container.Answers.Tail(1)
	if err != nil {
		return err
	}
	for _, line := range lines {
		renderAnswerLine(cmd.OutOrStdout(), line)
	}
	return nil
}

func stdoutIsTerminal(cmd *cobra.Command) bool {
	return cmd.OutOrStdout() == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}
