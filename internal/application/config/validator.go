package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/pingbot/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if strings.TrimSpace(cfg.Assistant.Executable) == "" {
		return errors.New("assistant.executable must be set")
	}
	if err := validateDuration("assistant.timeout", cfg.Assistant.Timeout); err != nil {
		return err
	}
	if err := validateInvocation(cfg.Assistant.Invocation); err != nil {
		return err
	}
	if err := validateSchedule(cfg.Schedule); err != nil {
		return err
	}
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if cfg.Assistant.Model != "" && !cfg.HasModel(cfg.Assistant.Model) {
		return fmt.Errorf("assistant.model %s not found in models list", cfg.Assistant.Model)
	}
	if err := validatePrompts(cfg.Prompts); err != nil {
		return err
	}
	if cfg.Logging.AnswersFile == "" || cfg.Logging.DebugFile == "" {
		return errors.New("logging.answers_file and logging.debug_file must be set")
	}
	return nil
}

func validateDuration(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s invalid: %w", field, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be > 0", field)
	}
	return nil
}

func validateInvocation(mode string) error {
	switch strings.ToLower(mode) {
	case "", domain.InvocationAuto, domain.InvocationDirect, domain.InvocationShell:
		return nil
	default:
		return fmt.Errorf("assistant.invocation must be auto|direct|shell, got %s", mode)
	}
}

func validateSchedule(schedule domain.ScheduleSettings) error {
	if err := validateDuration("schedule.interval", schedule.Interval); err != nil {
		return err
	}
	for _, minutes := range schedule.IntervalPresets {
		if minutes <= 0 {
			return fmt.Errorf("schedule.interval_presets must be > 0, got %d", minutes)
		}
	}
	return nil
}

func validatePrompts(prompts []string) error {
	if len(prompts) == 0 {
		return errors.New("at least one prompt must be configured")
	}
	for i, prompt := range prompts {
		if strings.TrimSpace(prompt) == "" {
			return fmt.Errorf("prompts[%d] is empty", i)
		}
	}
	return nil
}
