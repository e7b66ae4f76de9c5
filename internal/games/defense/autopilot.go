package defense

import (
	"sort"

	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
)

// DefaultBuildOrder is the tower sequence the autopilot cycles through.
var DefaultBuildOrder = []sim.TowerKind{
	sim.TowerArcher,
	sim.TowerArcher,
	sim.TowerCannon,
	sim.TowerLaser,
	sim.TowerSniper,
}

// Autopilot plays a game headlessly: it builds towers on the cells that
// cover the most path, upgrades them when gold allows and starts waves as
// soon as the field is ready. Register Observe with Engine.OnTick.
type Autopilot struct {
	engine    *sim.Engine
	order     []sim.TowerKind
	next      int
	stopAfter int // last wave to play; 0 means until game over
	done      chan struct{}
	finished  bool
}

// NewAutopilot drives engine until wave stopAfter is completed or the game
// is lost.
func NewAutopilot(engine *sim.Engine, stopAfter int) *Autopilot {
	return &Autopilot{
		engine:    engine,
		order:     DefaultBuildOrder,
		stopAfter: stopAfter,
		done:      make(chan struct{}),
	}
}

// Done is closed once the autopilot has nothing left to do.
func (a *Autopilot) Done() <-chan struct{} {
	return a.done
}

// Finished reports whether Done has been closed.
func (a *Autopilot) Finished() bool {
	return a.finished
}

// Observe inspects the state after a tick and queues commands for the next
// one.
func (a *Autopilot) Observe(s *sim.State) {
	if a.finished {
		return
	}
	switch {
	case s.Phase == sim.PhaseGameOver:
		a.finish()
		return
	case s.Phase == sim.PhasePrep && a.stopAfter > 0 && s.Wave > a.stopAfter:
		a.finish()
		return
	case !s.Playing():
		return
	}

	budget := s.Money
	budget = a.build(s, budget)
	a.upgrade(s, budget)

	if s.Phase == sim.PhasePrep {
		//nolint:errcheck // a full queue just retries next tick
		a.engine.Submit(sim.StartWave())
	}
}

func (a *Autopilot) finish() {
	a.finished = true
	close(a.done)
}

// build places at most one tower per tick, following the build order and
// waiting for gold rather than skipping ahead. A kind with no useful cell
// left is skipped so the order keeps moving.
func (a *Autopilot) build(s *sim.State, budget int) int {
	kind := a.order[a.next%len(a.order)]
	preset, ok := sim.Preset(kind)
	if !ok || budget < preset.Cost {
		return budget
	}

	cells := rankCells(s, preset.Range)
	if len(cells) == 0 {
		a.next++
		return budget
	}
	if err := a.engine.Submit(sim.PlaceTower(kind, cells[0].col, cells[0].row)); err != nil {
		return budget
	}
	a.next++
	return budget - preset.Cost
}

// upgrade buys one damage upgrade per tick, oldest tower first, once the
// build order has come round at least once.
func (a *Autopilot) upgrade(s *sim.State, budget int) {
	if a.next < len(a.order) {
		return
	}
	if budget < sim.UpgradeCost {
		return
	}
	for _, t := range s.Towers {
		if !t.Upgraded() {
			//nolint:errcheck // retried next tick
			a.engine.Submit(sim.UpgradeTower(t.Col, t.Row, sim.ModDamage))
			return
		}
	}
}

type rankedCell struct {
	col, row int
	coverage int
}

// rankCells orders free cells by how many path tiles lie within radius of
// their centre. Ties keep row-major order so the choice is deterministic.
func rankCells(s *sim.State, radius float64) []rankedCell {
	var pathCenters []sim.Point
	for row := range sim.Rows {
		for col := range sim.Cols {
			if s.Grid.OnPath(col, row) {
				pathCenters = append(pathCenters, sim.CellCenter(col, row))
			}
		}
	}

	var cells []rankedCell
	for row := range sim.Rows {
		for col := range sim.Cols {
			if !s.Grid.CanPlace(col, row) {
				continue
			}
			center := sim.CellCenter(col, row)
			n := 0
			for _, p := range pathCenters {
				if center.Dist(p) <= radius {
					n++
				}
			}
			if n > 0 {
				cells = append(cells, rankedCell{col: col, row: row, coverage: n})
			}
		}
	}

	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].coverage > cells[j].coverage
	})
	return cells
}
