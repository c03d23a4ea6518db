package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
storage:
  path: "/var/lib/repbook/state.db"
  state_key: "workout-storage"
log:
  level: "debug"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields
// populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path != "/var/lib/repbook/state.db" {
		t.Errorf("storage.path = %q", cfg.Storage.Path)
	}
	if cfg.Storage.StateKey != "workout-storage" {
		t.Errorf("storage.state_key = %q", cfg.Storage.StateKey)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
}

// TestLoadMissingFileUsesDefaults verifies a nonexistent config file is not
// an error: defaults apply (local-first tool, zero-config startup).
func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path == "" {
		t.Error("default storage.path is empty")
	}
	if cfg.Storage.StateKey != "workout-storage" {
		t.Errorf("default state_key = %q", cfg.Storage.StateKey)
	}
}

// TestLoadInvalidYAML verifies malformed YAML is reported as an error.
func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "storage: [not a map"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

// TestEnvOverrides verifies REPBOOK_* environment variables take precedence
// over file values.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("REPBOOK_STORAGE_PATH", "/tmp/override.db")
	t.Setenv("REPBOOK_STORAGE_STATE_KEY", "alt-key")
	t.Setenv("REPBOOK_LOG_LEVEL", "error")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Path != "/tmp/override.db" {
		t.Errorf("storage.path = %q, want env override", cfg.Storage.Path)
	}
	if cfg.Storage.StateKey != "alt-key" {
		t.Errorf("state_key = %q, want env override", cfg.Storage.StateKey)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("log.level = %q, want env override", cfg.Log.Level)
	}
}

// TestEmptyStateKeyDefaults verifies an explicitly empty state key falls back
// to the default rather than failing validation.
func TestEmptyStateKeyDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "storage:\n  path: \"/tmp/x.db\"\n  state_key: \"\"\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.StateKey != "workout-storage" {
		t.Errorf("state_key = %q, want default", cfg.Storage.StateKey)
	}
}

// TestSlogLevelMapping verifies level names map to slog levels with info as
// the fallback.
func TestSlogLevelMapping(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for name, want := range cases {
		if got := (LogConfig{Level: name}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
