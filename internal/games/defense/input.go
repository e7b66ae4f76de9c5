package defense

import (
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
)

var selectActions = [...]core.Action{
	core.ActionSelect1,
	core.ActionSelect2,
	core.ActionSelect3,
	core.ActionSelect4,
}

// handleInput moves the cursor and turns gameplay actions into commands.
// Commands are queued and take effect at the start of the next tick.
func (g *Game) handleInput(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.moveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.moveCursor(1, 0)
	}

	if in.Has(core.ActionNextTower) {
		g.selected = (g.selected + 1) % len(g.presets)
	}
	for i, a := range selectActions {
		if in.Has(a) && i < len(g.presets) {
			g.selected = i
		}
	}

	col, row := g.cursorCol, g.cursorRow
	switch {
	case in.Has(core.ActionPlace):
		g.submit(sim.PlaceTower(g.presets[g.selected].Kind, col, row))
	case in.Has(core.ActionUpgrade):
		g.submit(sim.UpgradeTower(col, row, sim.ModDamage))
	case in.Has(core.ActionUpgradeRange):
		g.submit(sim.UpgradeTower(col, row, sim.ModRange))
	case in.Has(core.ActionUpgradeRate):
		g.submit(sim.UpgradeTower(col, row, sim.ModRate))
	}

	if in.Has(core.ActionStartWave) {
		g.submit(sim.StartWave())
	}
}

func (g *Game) moveCursor(dc, dr int) {
	g.cursorCol = core.Clamp(g.cursorCol+dc, 0, sim.Cols-1)
	g.cursorRow = core.Clamp(g.cursorRow+dr, 0, sim.Rows-1)
}
