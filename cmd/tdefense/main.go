// tdefense is a terminal tower-defense game built on a deterministic,
// fixed-tick simulation.
//
// Usage:
//
//	tdefense list            - List modes, towers and enemies
//	tdefense play <mode>     - Play a mode
//	tdefense menu            - Start menu to pick modes interactively
//	tdefense sim             - Let the autopilot play headlessly
//	tdefense scores [mode]   - Show the run history
//	tdefense serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set database path (default: ~/.tdefense/runs.db)
//	--config <path>      - Use a custom config YAML
//	--log-level <level>  - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-defense/internal/games/defense"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tdefense",
	Short: "TUI Defense - Hold the path in your terminal",
	Long: `TUI Defense is a terminal tower-defense game. Enemies walk a fixed
path toward your base; build and upgrade towers to stop them.

Available commands:
  list     - Show modes, towers and enemies
  play     - Play a mode directly
  menu     - Interactive mode picker
  sim      - Headless autopilot run
  scores   - View the run history
  serve    - Start SSH server for remote play

Examples:
  tdefense list
  tdefense play classic
  tdefense menu
  tdefense sim --waves 10 --turbo
  tdefense serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tdefense/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
