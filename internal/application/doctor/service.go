package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	configapp "github.com/doeshing/pingbot/internal/application/config"
	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	// LookPath resolves the assistant executable, exec.LookPath in production.
	LookPath func(string) (string, error)
	// ResolveStrategy names the invocation strategy a mode selects on this platform.
	ResolveStrategy func(mode string) (string, error)
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config", err.Error()))
	} else {
		checks = append(checks, ok("Config", fmt.Sprintf("format %s, %d prompts, %d models",
			cfg.ConfigFormatVersion, len(cfg.Prompts), len(cfg.Models))))
	}

	checks = append(checks, s.executableCheck(cfg.Assistant.Executable))
	checks = append(checks, s.strategyCheck(cfg.Assistant.Invocation))
	checks = append(checks, logDirCheck(cfg.Logging.Dir))
	checks = append(checks, answersCheck(cfg.AnswersPath()))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) executableCheck(executable string) domain.HealthCheck {
	if s.LookPath == nil {
		return warn("Assistant", "executable lookup not configured")
	}
	path, err := s.LookPath(executable)
	if err != nil {
		return fail("Assistant", fmt.Sprintf("%s not found on PATH", executable))
	}
	return ok("Assistant", path)
}

func (s *Service) strategyCheck(mode string) domain.HealthCheck {
	if s.ResolveStrategy == nil {
		return warn("Invocation", "strategy resolution not configured")
	}
	name, err := s.ResolveStrategy(mode)
	if err != nil {
		return fail("Invocation", err.Error())
	}
	return ok("Invocation", fmt.Sprintf("%s (mode %s)", name, mode))
}

func logDirCheck(dir string) domain.HealthCheck {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("Log directory", err.Error())
	}
	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fail("Log directory", fmt.Sprintf("%s not writable: %v", dir, err))
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return ok("Log directory", dir)
}

func answersCheck(path string) domain.HealthCheck {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return warn("Answers log", fmt.Sprintf("%s not created yet", path))
	}
	if err != nil {
		return fail("Answers log", err.Error())
	}
	return ok("Answers log", fmt.Sprintf("%s (%d bytes)", path, info.Size()))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
