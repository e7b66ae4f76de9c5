package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes, towers and enemies",
	Long:  `Shows the registered game modes and the tower and enemy catalog.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range modes {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "-----------")
	for _, g := range modes {
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, g.ID, g.Title, g.Description)
	}

	fmt.Println()
	fmt.Println("Towers:")
	fmt.Println()
	fmt.Printf("  %-8s  %5s  %6s  %6s  %9s\n", "Name", "Cost", "Damage", "Range", "Cooldown")
	for _, p := range sim.Presets() {
		fmt.Printf("  %-8s  %5d  %6d  %6.0f  %7dms\n", p.Name, p.Cost, p.Damage, p.Range, p.CooldownMillis)
	}

	fmt.Println()
	fmt.Println("Enemies:")
	fmt.Println()
	fmt.Printf("  %-12s  %6s  %5s  %6s\n", "Name", "Health", "Speed", "Reward")
	for _, t := range sim.Templates() {
		fmt.Printf("  %-12s  %6d  %5.1f  %6d\n", t.Name, t.BaseHealth, t.Speed, t.Reward)
	}
	fmt.Printf("\nWinter variants replace the base enemies from wave %d.\n", sim.WinterFromWave)

	fmt.Println()
	fmt.Println("Run 'tdefense play <id>' to play a mode.")
}
