package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todo/internal/logging"
	"github.com/sandeepkv93/todo/internal/storage"
	"github.com/sandeepkv93/todo/internal/tasks"
	"github.com/sandeepkv93/todo/internal/update"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "todo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := loadConfig(args, stderr)
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store, err := storage.Open(cfg.Store, cfg.StorePath())
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer store.Close()

	ctrl := tasks.NewController(store,
		tasks.WithLogger(logger),
		tasks.WithEditMode(tasks.EditMode(cfg.EditMode)),
	)
	if err := ctrl.Load(ctx); err != nil {
		return err
	}
	logger.Info("tasks loaded", "store", cfg.Store, "path", cfg.StorePath(), "count", ctrl.Len())

	model := update.NewModel(ctx, ctrl, cfg).WithLogger(logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return err
	}
	return nil
}

// loadConfig layers defaults, the TOML file, the environment and finally
// command-line flags.
func loadConfig(args []string, stderr io.Writer) (update.RuntimeConfig, error) {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "task file of the selected store")
	configPath := fs.String("config", update.DefaultConfigFile, "TOML config file")
	store := fs.String("store", "", "store kind: text or sqlite")
	logFile := fs.String("log", "", "log file path")
	if err := fs.Parse(args); err != nil {
		return update.RuntimeConfig{}, err
	}

	cfg, err := update.RuntimeConfigFromFile(update.DefaultRuntimeConfig(), *configPath)
	if err != nil {
		return update.RuntimeConfig{}, err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	if v := strings.TrimSpace(*store); v != "" {
		cfg.Store = strings.ToLower(v)
	}
	if v := strings.TrimSpace(*file); v != "" {
		if cfg.Store == storage.KindSQLite {
			cfg.DatabaseFile = v
		} else {
			cfg.TasksFile = v
		}
	}
	if v := strings.TrimSpace(*logFile); v != "" {
		cfg.LogFile = v
	}
	if err := cfg.Validate(); err != nil {
		return update.RuntimeConfig{}, err
	}
	return cfg, nil
}
