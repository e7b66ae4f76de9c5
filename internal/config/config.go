// Package config provides YAML-based configuration loading for the
// tower-defense front ends.
package config

import (
	"errors"
	"fmt"
)

// DefenseConfig contains everything the CLI, TUI and SSH server read at
// startup. Tower presets and wave curves are fixed and not configurable.
type DefenseConfig struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Modes   ModesConfig   `yaml:"modes"`
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// RuntimeConfig controls the tick loop.
type RuntimeConfig struct {
	TickRate     int `yaml:"tick_rate"`     // ticks per second
	CommandQueue int `yaml:"command_queue"` // buffered command slots
}

// ModesConfig holds the starting economy for each game mode.
type ModesConfig struct {
	Classic ModeConfig `yaml:"classic"`
	Sandbox ModeConfig `yaml:"sandbox"`
}

// ModeConfig is the starting money and lives of one mode.
type ModeConfig struct {
	StartingMoney int `yaml:"starting_money"`
	StartingLives int `yaml:"starting_lives"`
}

// LoggingConfig configures the charmbracelet logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // log file used while the full-screen TUI runs
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// Mode names understood by Mode.
const (
	ModeClassic = "classic"
	ModeSandbox = "sandbox"
)

// Mode returns the settings for a named mode.
func (c DefenseConfig) Mode(name string) (ModeConfig, bool) {
	switch name {
	case ModeClassic:
		return c.Modes.Classic, true
	case ModeSandbox:
		return c.Modes.Sandbox, true
	default:
		return ModeConfig{}, false
	}
}

var errInvalid = errors.New("config: invalid")

// Validate rejects settings the simulation cannot run with.
func (c DefenseConfig) Validate() error {
	if c.Runtime.TickRate <= 0 {
		return fmt.Errorf("%w: runtime.tick_rate must be positive, got %d", errInvalid, c.Runtime.TickRate)
	}
	if c.Runtime.CommandQueue <= 0 {
		return fmt.Errorf("%w: runtime.command_queue must be positive, got %d", errInvalid, c.Runtime.CommandQueue)
	}
	for _, name := range []string{ModeClassic, ModeSandbox} {
		m, _ := c.Mode(name)
		if m.StartingLives <= 0 {
			return fmt.Errorf("%w: modes.%s.starting_lives must be positive, got %d", errInvalid, name, m.StartingLives)
		}
		if m.StartingMoney < 0 {
			return fmt.Errorf("%w: modes.%s.starting_money must not be negative", errInvalid, name)
		}
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("%w: server.idle_timeout_minutes must not be negative", errInvalid)
	}
	return nil
}

// IsInvalid reports whether err came from Validate.
func IsInvalid(err error) bool {
	return errors.Is(err, errInvalid)
}
