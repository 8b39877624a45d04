package executor

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"time"

	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/ports"
)

// Runner executes invocations with a bounded wait and captured output.
type Runner struct {
	strategy  Strategy
	waitDelay time.Duration
}

// NewRunner builds a runner for strategy. A nil strategy means DirectStrategy.
func NewRunner(strategy Strategy) *Runner {
	if strategy == nil {
		strategy = DirectStrategy{}
	}
	return &Runner{strategy: strategy, waitDelay: domain.DefaultWaitDelay}
}

// Strategy exposes the invocation style in use.
func (r *Runner) Strategy() Strategy {
	return r.strategy
}

// Run implements ports.CommandRunner.
func (r *Runner) Run(ctx context.Context, inv domain.Invocation) domain.RunResult {
	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	start := time.Now()
	c, err := r.strategy.Command(runCtx, inv)
	if err != nil {
		return launchFailure(err, time.Since(start))
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = r.waitDelay

	err = c.Run()
	result := domain.RunResult{
		Command:  c.String(),
		Duration: time.Since(start),
	}

	// Output of a timed-out process is discarded on purpose.
	if err != nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		return result
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil, errors.Is(err, exec.ErrWaitDelay):
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		if r.strategy.NotFoundExit(result.ExitCode) {
			result.NotFound = true
			return result
		}
	default:
		failure := launchFailure(err, result.Duration)
		failure.Command = result.Command
		return failure
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}

func launchFailure(err error, elapsed time.Duration) domain.RunResult {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return domain.RunResult{NotFound: true, Err: err, Duration: elapsed}
	}
	return domain.RunResult{Err: err, Duration: elapsed}
}

var _ ports.CommandRunner = (*Runner)(nil)
