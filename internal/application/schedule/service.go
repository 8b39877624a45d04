package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/ports"
)

// ErrAlreadyRunning is returned when Run is entered twice on one Service.
var ErrAlreadyRunning = errors.New("scheduler already running")

// Options controls one Run.
type Options struct {
	Once     bool
	Interval time.Duration
	Model    string
}

// Service runs cycles and records them in the answers and debug logs.
type Service struct {
	Engine  ports.CycleExecutor
	Answers ports.AnswerLog
	Logger  ports.Logger

	running atomic.Bool
}

// State reports Idle or Running.
func (s *Service) State() domain.SchedulerState {
	if s.running.Load() {
		return domain.StateRunning
	}
	return domain.StateIdle
}

// Run executes a cycle immediately and then once per interval until ctx is
// cancelled. With Once set it performs exactly one cycle and returns.
// Cancellation is a clean stop and returns nil.
func (s *Service) Run(ctx context.Context, opts Options) error {
	if s.Engine == nil || s.Answers == nil || s.Logger == nil {
		return errors.New("schedule.Service dependencies not satisfied")
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	interval := opts.Interval
	if interval <= 0 {
		interval = domain.DefaultInterval
	}

	s.Logger.Info("Ping bot started.", map[string]interface{}{
		"interval": interval.String(),
		"once":     opts.Once,
	})

	if opts.Once {
		s.RunCycle(ctx, opts.Model)
		return nil
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()
	for ctx.Err() == nil {
		s.RunCycle(ctx, opts.Model)

		timer.Reset(interval)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}

	s.Logger.Info("Ping bot stopped via interrupt.", nil)
	return nil
}

// RunCycle implements ports.CycleRecorder: one engine call, exactly one
// answers line, then the debug lines for the outcome.
func (s *Service) RunCycle(ctx context.Context, model string) domain.CycleResult {
	result := s.Engine.Execute(ctx, model)

	fields := map[string]interface{}{"cycle": shortID(result.ID)}
	if result.Model != "" {
		fields["model"] = result.Model
	}

	s.Logger.Info(fmt.Sprintf("Asking: '%s'", result.Prompt), fields)
	if err := s.Answers.Append(result); err != nil {
		s.Logger.Error("ERROR: Failed to write answers log", err, fields)
	}
	s.logOutcome(result, fields)
	return result
}

func (s *Service) logOutcome(result domain.CycleResult, fields map[string]interface{}) {
	s.Logger.Debug("command finished", map[string]interface{}{
		"cycle":    fields["cycle"],
		"command":  result.Command,
		"duration": result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond).String(),
	})

	switch result.Outcome {
	case domain.OutcomeSuccess:
		s.Logger.Info(fmt.Sprintf("SUCCESS: '%s' -> '%s'", result.Prompt, result.Reply), fields)
	case domain.OutcomeTimeout:
		s.Logger.Warn("ERROR: Timed out waiting for reply.", fields)
	case domain.OutcomeNotFound:
		s.Logger.Error(fmt.Sprintf("ERROR: Command not found: %s", result.Executable), nil, fields)
	case domain.OutcomeNonZeroExit:
		s.Logger.Warn(fmt.Sprintf("FAIL: exit_code=%d stderr='%s'", result.ExitCode, flatten(result.Stderr)), fields)
	default:
		s.Logger.Error(fmt.Sprintf("ERROR: Failed to run command: %s", flatten(result.Message)), nil, fields)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

var _ ports.CycleRecorder = (*Service)(nil)
