package commands

// Annotations understood by the root command.
const (
	// AnnotationSkipContainer marks commands that run without loading configuration.
	AnnotationSkipContainer = "pingbot/skip-container"
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrOpenerUnavailable        = "file opener unavailable"
	ErrAnswersLogUnavailable    = "answers log unavailable"
	ErrNotATerminal             = "the interactive shell needs a terminal; run without a subcommand for the headless bot"
	ErrNegativeDuration         = "durations must be positive"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
)
