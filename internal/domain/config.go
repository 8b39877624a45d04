// Package domain defines core business entities and value objects for pingbot.
//
// The domain layer is independent of infrastructure concerns: it knows how a
// cycle is classified and rendered, not how processes are spawned or where
// logs live.
package domain

// Config mirrors the embedded defaults overlaid with an optional --config profile.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Assistant           AssistantSettings `yaml:"assistant"`
	Schedule            ScheduleSettings  `yaml:"schedule"`
	Logging             LoggingSettings   `yaml:"logging"`
	Models              []ModelOption     `yaml:"models"`
	Prompts             []string          `yaml:"prompts"`
}

// AssistantSettings describes how the external assistant is invoked.
type AssistantSettings struct {
	Executable string `yaml:"executable"`
	PrintFlag  string `yaml:"print_flag"`
	ModelFlag  string `yaml:"model_flag"`
	Model      string `yaml:"model"`
	Timeout    string `yaml:"timeout"`
	Invocation string `yaml:"invocation"`
}

// ScheduleSettings controls the loop cadence.
type ScheduleSettings struct {
	Interval        string `yaml:"interval"`
	IntervalPresets []int  `yaml:"interval_presets"`
}

// LoggingSettings locates the answers and debug logs.
type LoggingSettings struct {
	Dir          string `yaml:"dir"`
	AnswersFile  string `yaml:"answers_file"`
	DebugFile    string `yaml:"debug_file"`
	DisplayLines int    `yaml:"display_lines"`
}

// ModelOption is one selectable model in the interactive shell.
type ModelOption struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}
