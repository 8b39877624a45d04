package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildContainerDoesNotCreateFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c, err := BuildContainer(context.Background(), Options{LogDir: dir})
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	if c.Answers.Path() != filepath.Join(dir, "claude-answers.txt") {
		t.Fatalf("answers path = %s", c.Answers.Path())
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("log dir should not exist yet, stat err = %v", err)
	}
}

func TestBuildContainerRejectsInvalidProfile(t *testing.T) {
	dir := t.TempDir()
	profile := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(profile, []byte("prompts: []\nassistant:\n  invocation: telepathy\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := BuildContainer(context.Background(), Options{ConfigPath: profile, LogDir: dir})
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("err = %v, want invalid configuration", err)
	}
}

func TestRuntimeOpensDebugLog(t *testing.T) {
	dir := t.TempDir()
	c, err := BuildContainer(context.Background(), Options{LogDir: dir})
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	rt, err := c.Runtime(nil, false)
	if err != nil {
		t.Fatalf("Runtime: %v", err)
	}
	rt.Logger.Info("Ping bot started.", nil)
	if err := rt.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "claude-ping-debug.log"))
	if err != nil {
		t.Fatalf("read debug log: %v", err)
	}
	if !strings.Contains(string(raw), "Ping bot started.") {
		t.Fatalf("debug log = %q", raw)
	}
	if rt.Schedule == nil || rt.Strategy == "" {
		t.Fatalf("runtime incomplete: %+v", rt)
	}
}
