package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense"
	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

var (
	flagSimMode  string
	flagSimWaves int
	flagTurbo    bool
	flagSimSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let the autopilot play headlessly",
	Long: `Run a game without a terminal UI. The autopilot builds towers on the
cells covering the most path, upgrades them and starts every wave.

By default the simulation runs in real time at --fps. With --turbo it
steps as fast as possible; the outcome is identical for the same seed.

Examples:
  tdefense sim --waves 5
  tdefense sim --mode sandbox --waves 20 --turbo
  tdefense sim --seed 42 --turbo --save
  tdefense sim --waves 0 --turbo --log-level debug   # until the base falls`,
	Run: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", config.ModeClassic, "Mode to play")
	simCmd.Flags().IntVar(&flagSimWaves, "waves", 5, "Waves to play (0 = until game over)")
	simCmd.Flags().BoolVar(&flagTurbo, "turbo", false, "Step as fast as possible instead of in real time")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the run history")
}

func runSim(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newStderrLogger(cfg, "tdefense-sim")
	defense.SetLogger(logger)

	created, err := registry.Create(flagSimMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagSimMode)
		os.Exit(1)
	}
	game, ok := created.(*defense.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: mode %q cannot be simulated\n", flagSimMode)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tickRate := flagFPS
	if tickRate <= 0 {
		tickRate = cfg.Runtime.TickRate
	}
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate, Seed: seed})

	engine := game.Engine()
	pilot := defense.NewAutopilot(engine, flagSimWaves)
	engine.OnTick(pilot.Observe)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulation started", "mode", flagSimMode, "seed", seed, "waves", flagSimWaves, "turbo", flagTurbo)
	start := time.Now()

	if flagTurbo {
		err = stepUntilDone(ctx, engine, pilot)
	} else {
		err = runUntilDone(ctx, engine, pilot)
	}
	interrupted := errors.Is(err, context.Canceled) && !pilot.Finished()
	if interrupted {
		logger.Warn("simulation interrupted")
	}

	printSimReport(game, seed, time.Since(start))

	if flagSimSave && !interrupted {
		store := openStore()
		if store != nil {
			if _, err := store.SaveRun(game.Summary()); err != nil {
				logger.Error("cannot save run", "err", err)
			} else {
				logger.Info("run saved", "db", flagDBPath)
			}
			store.Close()
		}
	}
}

// runUntilDone drives the ticker loop until the autopilot finishes or ctx
// is cancelled.
func runUntilDone(ctx context.Context, engine *sim.Engine, pilot *defense.Autopilot) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-pilot.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	return engine.Run(ctx)
}

// stepUntilDone steps without waiting between ticks.
func stepUntilDone(ctx context.Context, engine *sim.Engine, pilot *defense.Autopilot) error {
	for !pilot.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		engine.Step()
	}
	return nil
}

func printSimReport(game *defense.Game, seed int64, elapsed time.Duration) {
	s := game.Engine().State()
	stats := game.Stats()

	outcome := "survived"
	if s.Phase == sim.PhaseGameOver {
		outcome = "base fell"
	}

	fmt.Println()
	fmt.Printf("Simulation - %s (%s)\n", game.Title(), outcome)
	fmt.Println()
	fmt.Printf("  %-16s %d\n", "Seed", seed)
	fmt.Printf("  %-16s %d\n", "Wave reached", s.Wave)
	fmt.Printf("  %-16s %d\n", "Waves completed", stats.WavesCompleted)
	fmt.Printf("  %-16s %d\n", "Kills", stats.Kills)
	fmt.Printf("  %-16s %d\n", "Lives", s.Lives)
	fmt.Printf("  %-16s %d\n", "Lives lost", stats.LivesLost)
	fmt.Printf("  %-16s %d\n", "Money", s.Money)
	fmt.Printf("  %-16s %d\n", "Money earned", stats.MoneyEarned)
	fmt.Printf("  %-16s %d\n", "Money spent", stats.MoneySpent)
	fmt.Printf("  %-16s %d\n", "Towers built", stats.TowersBuilt)
	fmt.Printf("  %-16s %d\n", "Upgrades", stats.Upgrades)
	fmt.Printf("  %-16s %d (%s simulated, %s real)\n", "Ticks", s.Tick,
		(time.Duration(s.NowMillis()) * time.Millisecond).Round(time.Second),
		elapsed.Round(time.Millisecond))
	awards := game.Achievements()
	names := make([]string, len(awards))
	for i, a := range awards {
		names[i] = a.Name
	}
	fmt.Printf("  %-16s %d/%d %s\n", "Achievements", len(awards), len(sim.AllAchievements()), strings.Join(names, ", "))
	snap := s.Snapshot()
	fmt.Printf("  %-16s %016x\n", "Snapshot hash", snap.Hash())
}
