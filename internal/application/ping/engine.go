package ping

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/ports"
)

// Engine runs one cycle: pick a prompt, invoke the assistant, classify.
type Engine struct {
	Runner     ports.CommandRunner
	Picker     ports.PromptPicker
	Executable string
	PrintFlag  string
	ModelFlag  string
	Timeout    time.Duration
	Now        func() time.Time
}

// NewEngine builds an engine from the assistant settings in cfg.
func NewEngine(cfg domain.Config, runner ports.CommandRunner, picker ports.PromptPicker) *Engine {
	return &Engine{
		Runner:     runner,
		Picker:     picker,
		Executable: cfg.Assistant.Executable,
		PrintFlag:  cfg.Assistant.PrintFlag,
		ModelFlag:  cfg.Assistant.ModelFlag,
		Timeout:    cfg.ReplyTimeout(),
	}
}

// Execute implements ports.CycleExecutor. It makes a single attempt and never
// fails: every problem is folded into the returned CycleResult. The caller's
// cancellation does not reach the child process, only the engine timeout does.
func (e *Engine) Execute(ctx context.Context, model string) domain.CycleResult {
	now := e.Now
	if now == nil {
		now = time.Now
	}

	prompt := e.Picker.Pick()
	inv := e.invocation(prompt, model)

	started := now()
	run := e.Runner.Run(context.WithoutCancel(ctx), inv)
	finished := now()

	class := domain.Classify(run)
	return domain.CycleResult{
		ID:         uuid.NewString(),
		Prompt:     prompt,
		Model:      model,
		Executable: inv.Executable,
		Command:    run.Command,
		Outcome:    class.Outcome,
		Reply:      class.Reply,
		Message:    class.Message,
		ExitCode:   run.ExitCode,
		Stderr:     run.Stderr,
		StartedAt:  started,
		FinishedAt: finished,
	}
}

func (e *Engine) invocation(prompt, model string) domain.Invocation {
	executable := e.Executable
	if executable == "" {
		executable = domain.DefaultExecutable
	}
	printFlag := e.PrintFlag
	if printFlag == "" {
		printFlag = domain.DefaultPrintFlag
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultReplyTimeout
	}

	args := []string{printFlag, domain.Instruction(prompt)}
	if model != "" {
		modelFlag := e.ModelFlag
		if modelFlag == "" {
			modelFlag = domain.DefaultModelFlag
		}
		args = append(args, modelFlag, model)
	}
	return domain.Invocation{Executable: executable, Args: args, Timeout: timeout}
}

var _ ports.CycleExecutor = (*Engine)(nil)
