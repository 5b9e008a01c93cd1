package update

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.Store != "text" || cfg.TasksFile != "tasks.txt" {
		t.Fatalf("unexpected store defaults: %+v", cfg)
	}
	if cfg.EditMode != "replace" || cfg.Theme != "light" || cfg.DeadlineLayout != "2006-01-02" {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.LogFormat != "logfmt" {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TODO_STORE", "SQLite")
	t.Setenv("TODO_FILE", "lists/home.txt")
	t.Setenv("TODO_DB", "lists/home.db")
	t.Setenv("TODO_EDIT_MODE", "Preserve")
	t.Setenv("TODO_LOG_FORMAT", "JSON")
	t.Setenv("TODO_THEME", "dark")
	t.Setenv("TODO_DEADLINE_LAYOUT", "01/02/06")
	t.Setenv("TODO_LOG_FILE", "todo.log")
	t.Setenv("TODO_LOG_LEVEL", "debug")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.Store != "sqlite" || cfg.StorePath() != "lists/home.db" {
		t.Fatalf("unexpected store config: %+v", cfg)
	}
	if cfg.TasksFile != "lists/home.txt" || cfg.EditMode != "preserve" || cfg.Theme != "dark" {
		t.Fatalf("unexpected config overrides: %+v", cfg)
	}
	if cfg.DeadlineLayout != "01/02/06" || cfg.LogFile != "todo.log" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config overrides: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnvIgnoresBlank(t *testing.T) {
	t.Setenv("TODO_FILE", "   ")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.TasksFile != "tasks.txt" {
		t.Fatalf("expected blank env to be ignored, got %q", cfg.TasksFile)
	}
}

func TestRuntimeConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.toml")
	content := "tasks_file = \"work.txt\"\ntheme = \"dark\"\nlog_format = \"text\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := RuntimeConfigFromFile(DefaultRuntimeConfig(), path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TasksFile != "work.txt" || cfg.Theme != "dark" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected file overrides: %+v", cfg)
	}
	if cfg.EditMode != "replace" || cfg.Store != "text" {
		t.Fatalf("expected unset keys to keep defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFromFileMissingAndInvalid(t *testing.T) {
	dir := t.TempDir()
	cfg, err := RuntimeConfigFromFile(DefaultRuntimeConfig(), filepath.Join(dir, "absent.toml"))
	if err != nil || cfg != DefaultRuntimeConfig() {
		t.Fatalf("expected defaults for missing file, got %+v err=%v", cfg, err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("theme = \n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := RuntimeConfigFromFile(DefaultRuntimeConfig(), bad); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRuntimeConfigValidate(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Store = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown store error")
	}
	cfg = DefaultRuntimeConfig()
	cfg.EditMode = "merge"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown edit mode error")
	}
	cfg = DefaultRuntimeConfig()
	cfg.LogFormat = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown log format error")
	}
	cfg = DefaultRuntimeConfig()
	cfg.TasksFile = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected empty path error")
	}
}
