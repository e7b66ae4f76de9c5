package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real user config is picked up.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadDefenseEmbeddedDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadDefense("")
	if err != nil {
		t.Fatalf("LoadDefense: %v", err)
	}
	if cfg != DefaultDefenseConfig() {
		t.Errorf("embedded YAML drifted from DefaultDefenseConfig:\n%+v\n%+v", cfg, DefaultDefenseConfig())
	}
}

func TestLoadDefenseSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "defense.yaml"), "runtime:\n  tick_rate: 30\n")
	cfg, err := LoadDefense("")
	if err != nil {
		t.Fatalf("LoadDefense: %v", err)
	}
	if cfg.Runtime.TickRate != 30 {
		t.Errorf("local config: tick_rate = %d, expected 30", cfg.Runtime.TickRate)
	}
	if cfg.Runtime.CommandQueue != 64 {
		t.Errorf("partial file should keep defaults, command_queue = %d", cfg.Runtime.CommandQueue)
	}

	// The user config wins over ./configs.
	writeFile(t, filepath.Join(home, AppDir, "configs", "defense.yaml"), "runtime:\n  tick_rate: 120\n")
	cfg, err = LoadDefense("")
	if err != nil {
		t.Fatalf("LoadDefense: %v", err)
	}
	if cfg.Runtime.TickRate != 120 {
		t.Errorf("user config: tick_rate = %d, expected 120", cfg.Runtime.TickRate)
	}

	// An explicit path wins over both.
	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "modes:\n  classic:\n    starting_money: 500\n    starting_lives: 3\n")
	cfg, err = LoadDefense(custom)
	if err != nil {
		t.Fatalf("LoadDefense(custom): %v", err)
	}
	if cfg.Runtime.TickRate != 60 {
		t.Errorf("custom config: tick_rate = %d, expected default 60", cfg.Runtime.TickRate)
	}
	classic, _ := cfg.Mode(ModeClassic)
	if classic.StartingMoney != 500 || classic.StartingLives != 3 {
		t.Errorf("classic = %+v", classic)
	}
}

func TestLoadDefenseSkipsBrokenSearchFiles(t *testing.T) {
	_, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "defense.yaml"), "runtime: [not a map")
	cfg, err := LoadDefense("")
	if err != nil {
		t.Fatalf("LoadDefense: %v", err)
	}
	if cfg != DefaultDefenseConfig() {
		t.Error("broken local file should fall through to defaults")
	}

	writeFile(t, filepath.Join(work, "configs", "defense.yaml"), "runtime:\n  tick_rate: 0\n")
	cfg, _ = LoadDefense("")
	if cfg.Runtime.TickRate != 60 {
		t.Error("invalid local file should fall through to defaults")
	}
}

func TestLoadDefenseCustomPathErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := LoadDefense(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "modes: {classic: {starting_lives: 0}}\n")
	_, err := LoadDefense(bad)
	if !IsInvalid(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DefenseConfig)
		valid  bool
	}{
		{"defaults", func(*DefenseConfig) {}, true},
		{"zero tick rate", func(c *DefenseConfig) { c.Runtime.TickRate = 0 }, false},
		{"zero queue", func(c *DefenseConfig) { c.Runtime.CommandQueue = 0 }, false},
		{"no lives", func(c *DefenseConfig) { c.Modes.Sandbox.StartingLives = 0 }, false},
		{"negative money", func(c *DefenseConfig) { c.Modes.Classic.StartingMoney = -1 }, false},
		{"zero money", func(c *DefenseConfig) { c.Modes.Classic.StartingMoney = 0 }, true},
		{"negative idle timeout", func(c *DefenseConfig) { c.Server.IdleTimeoutMinutes = -5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDefenseConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, expected valid=%v", err, tt.valid)
			}
		})
	}
}

func TestMode(t *testing.T) {
	cfg := DefaultDefenseConfig()

	sandbox, ok := cfg.Mode(ModeSandbox)
	if !ok || sandbox.StartingMoney != 10_000_000 || sandbox.StartingLives != 100 {
		t.Errorf("sandbox = %+v, %v", sandbox, ok)
	}
	if _, ok := cfg.Mode("endless"); ok {
		t.Error("unknown mode should not resolve")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/x/db.sqlite"); got != filepath.Join(home, "x", "db.sqlite") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("~user form should be left alone: %q", got)
	}
}
