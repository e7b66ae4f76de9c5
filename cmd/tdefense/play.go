package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/platform/tui"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Arrows/hjkl/wasd  - Move the cursor
  1-4 / Tab         - Pick a tower
  Enter/Space       - Build the picked tower
  U / G / F         - Upgrade damage / range / fire rate
  N                 - Start the next wave
  P                 - Pause
  R                 - Restart (after game over)
  ?                 - All keys
  Esc               - Leave
  Q/Ctrl+C          - Quit

Examples:
  tdefense play classic
  tdefense play sandbox --seed 42
  tdefense play classic --config ./my-defense.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mode := args[0]

	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'tdefense list' to see available modes.")
		os.Exit(1)
	}

	cfg := loadConfig()
	logger, closeLog := newFileLogger(cfg)
	defer closeLog()
	defense.SetLogger(logger)

	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	_, runErr := tui.Run(game, store, terminalConfig(cfg), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
