package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/registry"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

var scoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the run history",
	Long: `Without a mode, shows aggregate statistics for every mode played.
With a mode, lists its best runs: furthest wave first, kills breaking ties.

Examples:
  tdefense scores
  tdefense scores classic --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printAllStats(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	mode := args[0]
	game, err := registry.Create(mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'tdefense list' to see available modes.")
		store.Close()
		os.Exit(1)
	}

	runs, err := store.TopRuns(mode, scoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("Run History - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tdefense play %s' to record the first run!\n", mode)
		return
	}

	fmt.Printf("  %-4s  %-4s  %-6s  %-6s  %-8s  %-7s  %s\n", "Rank", "Wave", "Kills", "Towers", "Earned", "Spent", "Date")
	fmt.Printf("  %-4s  %-4s  %-6s  %-6s  %-8s  %-7s  %s\n", "----", "----", "-----", "------", "------", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-4d  %-6d  %-6d  %-8d  %-7d  %s\n",
			i+1, r.WaveReached, r.Kills, r.TowersBuilt, r.MoneyEarned, r.MoneySpent,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestWave(mode); err == nil {
		fmt.Printf("Best: wave %d\n", best)
	}
}

func printAllStats(store *storage.Store) error {
	stats, err := store.GetAllModesStats()
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	modes := make([]string, 0, len(stats))
	for mode := range stats {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	fmt.Println("Run History")
	fmt.Println()
	fmt.Printf("  %-10s  %-5s  %-9s  %-8s  %-7s  %s\n", "Mode", "Runs", "Best wave", "Avg wave", "Kills", "Last played")
	fmt.Printf("  %-10s  %-5s  %-9s  %-8s  %-7s  %s\n", "----", "----", "---------", "--------", "-----", "-----------")
	for _, mode := range modes {
		s := stats[mode]
		fmt.Printf("  %-10s  %-5d  %-9d  %-8.1f  %-7d  %s\n",
			s.Mode, s.Runs, s.BestWave, s.AvgWave, s.TotalKills, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
