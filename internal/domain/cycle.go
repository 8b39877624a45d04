package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Invocation is a single request to run the external assistant.
type Invocation struct {
	Executable string
	Args       []string
	Timeout    time.Duration
}

// RunResult is what the command runner observed. Exactly one of TimedOut,
// NotFound or Err is meaningful when the process did not exit on its own.
type RunResult struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	NotFound bool
	Err      error
	Duration time.Duration
}

// Outcome classifies a finished cycle.
type Outcome string

const (
	OutcomeSuccess     Outcome = "success"
	OutcomeTimeout     Outcome = "timeout"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeNonZeroExit Outcome = "non_zero_exit"
	OutcomeError       Outcome = "error"
)

// Answer markers embedded in the answers log.
const (
	AnswerTimeout     = "TIMEOUT"
	AnswerErrorPrefix = "ERROR: "
	AnswerFailPrefix  = "FAIL: "
)

// Classification is the outcome of a run plus the text it carries.
type Classification struct {
	Outcome Outcome
	Reply   string
	Message string
}

// CycleResult records one selection-invocation-log sequence.
type CycleResult struct {
	ID         string
	Prompt     string
	Model      string
	Executable string
	Command    string
	Outcome    Outcome
	Reply      string
	Message    string
	ExitCode   int
	Stderr     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Instruction builds the text sent to the assistant for prompt.
func Instruction(prompt string) string {
	return prompt + " " + InstructionSuffix
}

// Classify applies the outcome priority: timeout, not found, non-zero exit,
// zero exit, then any other launch error.
func Classify(run RunResult) Classification {
	switch {
	case run.TimedOut:
		return Classification{Outcome: OutcomeTimeout}
	case run.NotFound:
		return Classification{Outcome: OutcomeNotFound}
	case run.Err == nil && run.ExitCode != 0:
		return Classification{Outcome: OutcomeNonZeroExit, Message: failureMessage(run)}
	case run.Err == nil:
		return Classification{Outcome: OutcomeSuccess, Reply: ExtractReply(run.Stdout)}
	default:
		return Classification{Outcome: OutcomeError, Message: run.Err.Error()}
	}
}

// ExtractReply returns the last non-empty line of the trimmed output.
func ExtractReply(stdout string) string {
	clean := strings.TrimSpace(stripANSI(stdout))
	lines := strings.Split(clean, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return clean
}

func failureMessage(run RunResult) string {
	if stderr := strings.TrimSpace(run.Stderr); stderr != "" {
		return stderr
	}
	if stdout := strings.TrimSpace(run.Stdout); stdout != "" {
		return stdout
	}
	return fmt.Sprintf("exit code %d", run.ExitCode)
}

// Answer renders the answer field of the answers log.
func (r CycleResult) Answer() string {
	switch r.Outcome {
	case OutcomeSuccess:
		return singleLine(r.Reply)
	case OutcomeTimeout:
		return AnswerTimeout
	case OutcomeNotFound:
		return AnswerErrorPrefix + r.Executable + " not found"
	case OutcomeNonZeroExit:
		return AnswerFailPrefix + singleLine(r.Message)
	default:
		return AnswerErrorPrefix + singleLine(r.Message)
	}
}

// AnswerLine renders the full answers log record without the trailing newline.
func (r CycleResult) AnswerLine() string {
	return fmt.Sprintf("[%s] Q: %s | A: %s", r.FinishedAt.Local().Format(LogTimestampFormat), singleLine(r.Prompt), r.Answer())
}

// OK reports whether the assistant produced a reply.
func (r CycleResult) OK() bool {
	return r.Outcome == OutcomeSuccess
}

var ansiPattern = regexp.MustCompile(`\x1b(\[[0-9;?]*[ -/]*[@-~]|\][^\x07\x1b]*(\x07|\x1b\\))`)

func stripANSI(text string) string {
	return ansiPattern.ReplaceAllString(text, "")
}

func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
