package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu and its own
simulation. Runs are stored per-server (all users share the run history).

Address and idle timeout default to the server section of the config.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tdefense/host_key

Examples:
  tdefense serve                           # Listen on the configured address
  tdefense serve --ssh :2222               # Listen on port 2222
  tdefense serve --host-key ./my_host_key  # Use specific host key
  tdefense serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newStderrLogger(cfg, "tdefense-ssh")
	defense.SetLogger(logger)

	address := cfg.Server.Address
	if cmd.Flags().Changed("ssh") {
		address = flagSSHAddr
	}
	idle := cfg.Server.IdleTimeoutMinutes
	if cmd.Flags().Changed("idle-timeout") {
		idle = flagIdleTimeout
	}
	tickRate := cfg.Runtime.TickRate
	if cmd.Flags().Changed("fps") {
		tickRate = flagFPS
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     address,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(idle) * time.Minute,
		TickRate:    tickRate,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting tdefense SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
