package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

// loadConfig loads the config and points new games at the same file.
func loadConfig() config.DefenseConfig {
	cfg, err := config.LoadDefense(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defense.SetConfigPath(flagConfig)
	return cfg
}

// logLevel resolves --log-level over the configured level.
func logLevel(cfg config.DefenseConfig) log.Level {
	name := cfg.Logging.Level
	if flagLogLevel != "" {
		name = flagLogLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		return log.InfoLevel
	}
	return level
}

// newStderrLogger builds the logger for headless commands.
func newStderrLogger(cfg config.DefenseConfig, prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           logLevel(cfg),
	})
}

// newFileLogger builds the logger for full-screen commands, which must not
// write to the terminal. Call the returned func to release the file.
func newFileLogger(cfg config.DefenseConfig) (*log.Logger, func()) {
	discard := func() {}
	path := config.ExpandHome(cfg.Logging.File)
	if path == "" {
		return log.New(io.Discard), discard
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return log.New(io.Discard), discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), discard
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tdefense",
		Level:           logLevel(cfg),
	})
	return logger, func() { f.Close() }
}

// openStore opens the run history, or returns nil with a warning. Games
// still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}

// terminalConfig builds a runtime config sized to the terminal.
func terminalConfig(cfg config.DefenseConfig) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	tickRate := flagFPS
	if tickRate <= 0 {
		tickRate = cfg.Runtime.TickRate
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     flagSeed,
	}
}
