package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/pingbot/internal/domain"
)

type staticConfig struct {
	cfg domain.Config
	err error
}

func (s staticConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

func testConfig(dir string) domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Assistant:           domain.AssistantSettings{Executable: "claude", Invocation: "auto"},
		Logging:             domain.LoggingSettings{Dir: dir, AnswersFile: "answers.txt", DebugFile: "debug.log"},
		Models:              []domain.ModelOption{{Name: "haiku"}},
		Prompts:             []string{"Name any color"},
	}
}

func statuses(report domain.HealthReport) map[string]domain.HealthStatus {
	out := make(map[string]domain.HealthStatus, len(report.Checks))
	for _, check := range report.Checks {
		out[check.Name] = check.Status
	}
	return out
}

func TestRunHealthy(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "answers.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	svc := &Service{
		ConfigProvider:  staticConfig{cfg: testConfig(dir)},
		LookPath:        func(string) (string, error) { return "/usr/local/bin/claude", nil },
		ResolveStrategy: func(string) (string, error) { return "direct", nil },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[string]domain.HealthStatus{
		"Config":        domain.HealthOK,
		"Assistant":     domain.HealthOK,
		"Invocation":    domain.HealthOK,
		"Log directory": domain.HealthOK,
		"Answers log":   domain.HealthOK,
	}
	if diff := cmp.Diff(want, statuses(report)); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}
	if report.Failed() {
		t.Fatal("healthy report marked failed")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("doctor left probe files behind: %v", entries)
	}
}

func TestRunReportsProblems(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Prompts = nil
	svc := &Service{
		ConfigProvider:  staticConfig{cfg: cfg},
		LookPath:        func(string) (string, error) { return "", errors.New("not found") },
		ResolveStrategy: func(mode string) (string, error) { return "", errors.New("unknown mode " + mode) },
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[string]domain.HealthStatus{
		"Config":        domain.HealthError,
		"Assistant":     domain.HealthError,
		"Invocation":    domain.HealthError,
		"Log directory": domain.HealthOK,
		"Answers log":   domain.HealthWarn,
	}
	if diff := cmp.Diff(want, statuses(report)); diff != "" {
		t.Fatalf("statuses mismatch (-want +got):\n%s", diff)
	}
	if !report.Failed() {
		t.Fatal("expected failed report")
	}
}

func TestRunConfigLoadFailure(t *testing.T) {
	svc := &Service{ConfigProvider: staticConfig{err: errors.New("boom")}}

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("unexpected report: %+v", report)
	}
}
