package update

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/tasks"
)

const DefaultConfigFile = "todo.toml"

type RuntimeConfig struct {
	Store          string `toml:"store"`
	TasksFile      string `toml:"tasks_file"`
	DatabaseFile   string `toml:"database_file"`
	EditMode       string `toml:"edit_mode"`
	Theme          string `toml:"theme"`
	DeadlineLayout string `toml:"deadline_layout"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Store:          storage.KindText,
		TasksFile:      storage.DefaultTextFile,
		DatabaseFile:   storage.DefaultSQLiteFile,
		EditMode:       string(tasks.EditReplace),
		Theme:          "light",
		DeadlineLayout: "2006-01-02",
		LogLevel:       "info",
		LogFormat:      "logfmt",
	}
}

// RuntimeConfigFromFile overlays the keys present in a TOML file on base. A
// missing file leaves base unchanged.
func RuntimeConfigFromFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	if _, err := os.Stat(trimmed); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return base, fmt.Errorf("stat config: %w", err)
	}
	if _, err := toml.DecodeFile(trimmed, &cfg); err != nil {
		return base, fmt.Errorf("decode config %s: %w", trimmed, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODO_STORE"); ok {
		cfg.Store = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODO_FILE"); ok {
		cfg.TasksFile = v
	}
	if v, ok := getEnvString("TODO_DB"); ok {
		cfg.DatabaseFile = v
	}
	if v, ok := getEnvString("TODO_EDIT_MODE"); ok {
		cfg.EditMode = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODO_THEME"); ok {
		cfg.Theme = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODO_DEADLINE_LAYOUT"); ok {
		cfg.DeadlineLayout = v
	}
	if v, ok := getEnvString("TODO_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TODO_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TODO_LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	switch c.Store {
	case storage.KindText, storage.KindSQLite:
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	if !tasks.EditMode(c.EditMode).IsValid() {
		return fmt.Errorf("config: unknown edit_mode %q", c.EditMode)
	}
	switch c.LogFormat {
	case "", "logfmt", "json", "text":
	default:
		return fmt.Errorf("config: unknown log_format %q", c.LogFormat)
	}
	if strings.TrimSpace(c.StorePath()) == "" {
		return fmt.Errorf("config: empty path for %s store", c.Store)
	}
	return nil
}

// StorePath is the backing file of the configured store.
func (c RuntimeConfig) StorePath() string {
	if c.Store == storage.KindSQLite {
		return c.DatabaseFile
	}
	return c.TasksFile
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}
