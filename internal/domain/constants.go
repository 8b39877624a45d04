package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// LogFilePermissions is the permission for log files (rw-r--r--)
	LogFilePermissions = 0o644
)

// Timing defaults
const (
	// DefaultReplyTimeout bounds a single assistant invocation
	DefaultReplyTimeout = 120 * time.Second
	// DefaultInterval is the wait between the end of one cycle and the next
	DefaultInterval = 15 * time.Minute
	// CountdownTick is the granularity of the interactive wait phase
	CountdownTick = time.Second
	// DefaultWaitDelay bounds how long output pipes may linger after a kill
	DefaultWaitDelay = 2 * time.Second
)

// Invocation modes
const (
	InvocationAuto   = "auto"
	InvocationDirect = "direct"
	InvocationShell  = "shell"
)

// Defaults for the assistant command line
const (
	DefaultExecutable = "claude"
	DefaultPrintFlag  = "-p"
	DefaultModelFlag  = "--model"
)

// Log defaults
const (
	DefaultAnswersFile  = "claude-answers.txt"
	DefaultDebugFile    = "claude-ping-debug.log"
	DefaultDisplayLines = 20
	DefaultLogDirName   = ".pingbot"
)

// Time formats
const (
	// LogTimestampFormat is the timestamp rendered at the start of every log line
	LogTimestampFormat = "2006-01-02 15:04:05"
)

// InstructionSuffix is appended to every prompt sent to the assistant.
const InstructionSuffix = "Respond with exactly one word."
