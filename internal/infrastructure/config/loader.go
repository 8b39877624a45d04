package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/pingbot/assets"
	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/pkg/filesystem"
	"github.com/doeshing/pingbot/internal/ports"
)

// FileLoader builds the effective configuration from the embedded defaults,
// an optional YAML profile and the log directory override. It never writes.
type FileLoader struct {
	profilePath string
	logDir      string
	defaults    []byte
}

// NewFileLoader builds a new loader. Both arguments may be empty.
func NewFileLoader(profilePath, logDir string) *FileLoader {
	return &FileLoader{
		profilePath: profilePath,
		logDir:      logDir,
		defaults:    assets.DefaultConfigYAML,
	}
}

// ProfilePath is the profile overlaid on the defaults, or "" when none.
func (l *FileLoader) ProfilePath() string {
	return l.profilePath
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(l.defaults, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("decode embedded defaults: %w", err)
	}

	if l.profilePath != "" {
		path := filesystem.ExpandPath(l.profilePath)
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, fmt.Errorf("read config profile: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("parse config profile %s: %w", path, err)
		}
	}

	if l.logDir != "" {
		cfg.Logging.Dir = l.logDir
	}
	return hydrateDefaults(cfg), nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Assistant.Executable == "" {
		cfg.Assistant.Executable = domain.DefaultExecutable
	}
	if cfg.Assistant.PrintFlag == "" {
		cfg.Assistant.PrintFlag = domain.DefaultPrintFlag
	}
	if cfg.Assistant.ModelFlag == "" {
		cfg.Assistant.ModelFlag = domain.DefaultModelFlag
	}
	if cfg.Assistant.Invocation == "" {
		cfg.Assistant.Invocation = domain.InvocationAuto
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = filesystem.DefaultLogDir()
	}
	cfg.Logging.Dir = filesystem.ExpandPath(cfg.Logging.Dir)
	if cfg.Logging.AnswersFile == "" {
		cfg.Logging.AnswersFile = domain.DefaultAnswersFile
	}
	if cfg.Logging.DebugFile == "" {
		cfg.Logging.DebugFile = domain.DefaultDebugFile
	}
	if cfg.Logging.DisplayLines <= 0 {
		cfg.Logging.DisplayLines = domain.DefaultDisplayLines
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
