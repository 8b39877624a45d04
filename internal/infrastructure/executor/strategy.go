package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/doeshing/pingbot/internal/domain"
)

// Strategy turns an Invocation into a runnable command for one platform style.
type Strategy interface {
	Name() string
	Command(ctx context.Context, inv domain.Invocation) (*exec.Cmd, error)
	// NotFoundExit reports whether an exit code means the shell could not
	// locate the executable.
	NotFoundExit(code int) bool
}

// StrategyFor picks the invocation style for goos. "auto" goes through the
// shell on Windows, where the assistant is usually a .cmd wrapper script.
func StrategyFor(goos, mode string) (Strategy, error) {
	windows := goos == "windows"
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", domain.InvocationAuto:
		if windows {
			return NewShellStrategy(true), nil
		}
		return DirectStrategy{}, nil
	case domain.InvocationDirect:
		return DirectStrategy{}, nil
	case domain.InvocationShell:
		return NewShellStrategy(windows), nil
	default:
		return nil, fmt.Errorf("unknown invocation mode %q (want auto|direct|shell)", mode)
	}
}

// DirectStrategy resolves the executable on PATH and passes arguments as an
// array.
type DirectStrategy struct {
	LookPath func(string) (string, error)
}

func (DirectStrategy) Name() string { return domain.InvocationDirect }

func (s DirectStrategy) Command(ctx context.Context, inv domain.Invocation) (*exec.Cmd, error) {
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	resolved, err := lookPath(inv.Executable)
	if err != nil && !errors.Is(err, exec.ErrDot) {
		return nil, fmt.Errorf("resolve %s: %w", inv.Executable, err)
	}
	return exec.CommandContext(ctx, resolved, inv.Args...), nil
}

func (DirectStrategy) NotFoundExit(int) bool { return false }

// ShellStrategy hands a single command line to the platform shell.
type ShellStrategy struct {
	Shell   string
	Flag    string
	Windows bool
}

// NewShellStrategy returns the cmd.exe flavour on Windows and /bin/sh elsewhere.
func NewShellStrategy(windows bool) ShellStrategy {
	if windows {
		return ShellStrategy{Shell: "cmd.exe", Flag: "/C", Windows: true}
	}
	return ShellStrategy{Shell: "/bin/sh", Flag: "-c"}
}

func (ShellStrategy) Name() string { return domain.InvocationShell }

func (s ShellStrategy) Command(ctx context.Context, inv domain.Invocation) (*exec.Cmd, error) {
	line := s.CommandLine(inv)
	cmd := exec.CommandContext(ctx, s.Shell, s.Flag, line)
	if s.Windows {
		setRawCommandLine(cmd, s.Shell+" "+s.Flag+" "+line)
	}
	return cmd, nil
}

// NotFoundExit maps "command not found" from sh (127) and cmd.exe (9009).
func (ShellStrategy) NotFoundExit(code int) bool {
	return code == 127 || code == 9009
}

// CommandLine renders the invocation as one quoted shell string.
func (s ShellStrategy) CommandLine(inv domain.Invocation) string {
	quote := quotePOSIX
	if s.Windows {
		quote = quoteWindows
	}
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quote(inv.Executable))
	for _, arg := range inv.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

var (
	bareWord        = regexp.MustCompile(`^[A-Za-z0-9_./:=@%+-]+$`)
	bareWindowsWord = regexp.MustCompile(`^[A-Za-z0-9_./:=@+\\-]+$`)
)

func quotePOSIX(arg string) string {
	if bareWord.MatchString(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func quoteWindows(arg string) string {
	if bareWindowsWord.MatchString(arg) {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
}
