package config

import (
	_ "embed"
)

//go:embed defaults/defense.yaml
var defaultDefenseYAML []byte

// DefaultDefenseConfig returns the hardcoded configuration used when even
// the embedded YAML cannot be parsed.
func DefaultDefenseConfig() DefenseConfig {
	return DefenseConfig{
		Runtime: RuntimeConfig{
			TickRate:     60,
			CommandQueue: 64,
		},
		Modes: ModesConfig{
			Classic: ModeConfig{StartingMoney: 120, StartingLives: 10},
			Sandbox: ModeConfig{StartingMoney: 10_000_000, StartingLives: 100},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "~/.tdefense/tdefense.log",
		},
		Server: ServerConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDefenseYAML
}
