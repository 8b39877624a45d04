// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The cycle engine, the schedulers and the doctor only
// see these interfaces; process spawning, log files, configuration files and the
// platform file viewer live behind them.
package ports

import (
	"context"

	"github.com/doeshing/pingbot/internal/domain"
)

// ConfigProvider loads the effective configuration (embedded defaults plus
// an optional read-only profile).
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CommandRunner runs an external command, captures its output and enforces
// the invocation timeout. It never returns a Go error: every failure is
// described in the RunResult.
type CommandRunner interface {
	Run(ctx context.Context, inv domain.Invocation) domain.RunResult
}

// PromptPicker selects the prompt for the next cycle.
type PromptPicker interface {
	Pick() string
}

// CycleExecutor performs exactly one cycle against the assistant.
type CycleExecutor interface {
	Execute(ctx context.Context, model string) domain.CycleResult
}

// CycleRecorder performs one cycle and records it in both logs. The headless
// loop, the interactive worker and the ping-now action all go through it.
type CycleRecorder interface {
	RunCycle(ctx context.Context, model string) domain.CycleResult
}

// AnswerLog is the append-only record of cycle results.
type AnswerLog interface {
	Append(domain.CycleResult) error
	Tail(n int) ([]string, error)
	Path() string
}

// FileOpener opens a file in the platform's default viewer.
type FileOpener interface {
	Open(path string) error
}

// Logger provides structured logging abstraction for the application layer.
// The production implementation writes the debug log.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
