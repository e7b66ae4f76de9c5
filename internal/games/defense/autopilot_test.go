package defense

import (
	"testing"

	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
)

// autoplay runs an autopilot on a fresh classic simulation until it
// finishes or maxTicks elapse.
func autoplay(t *testing.T, seed int64, stopAfter, maxTicks int) (*sim.Engine, *Autopilot, *sim.Stats) {
	t.Helper()
	opts := sim.DefaultOptions()
	opts.Seed = seed
	engine := sim.NewEngine(sim.NewState(opts), 0)

	stats := &sim.Stats{}
	engine.Subscribe(stats.Listen)
	pilot := NewAutopilot(engine, stopAfter)
	engine.OnTick(pilot.Observe)

	if err := engine.Submit(sim.Reset()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	for range maxTicks {
		if pilot.Finished() {
			break
		}
		engine.Step()
	}
	return engine, pilot, stats
}

func TestAutopilotPlaysWaves(t *testing.T) {
	engine, pilot, stats := autoplay(t, 3, 2, 60*60*20)

	if !pilot.Finished() {
		t.Fatal("autopilot did not finish")
	}
	select {
	case <-pilot.Done():
	default:
		t.Error("Done should be closed")
	}

	s := engine.State()
	if s.Phase != sim.PhaseGameOver && s.Wave != 3 {
		t.Errorf("stopped at wave %d in phase %v", s.Wave, s.Phase)
	}
	if stats.TowersBuilt < 2 {
		t.Errorf("TowersBuilt = %d, expected the opening archers", stats.TowersBuilt)
	}
	if s.Phase != sim.PhaseGameOver && stats.HighestWave != 2 {
		t.Errorf("HighestWave = %d, expected both waves cleared", stats.HighestWave)
	}
}

func TestAutopilotIsDeterministic(t *testing.T) {
	a, _, _ := autoplay(t, 11, 3, 60*60*20)
	b, _, _ := autoplay(t, 11, 3, 60*60*20)

	snapA, snapB := a.State().Snapshot(), b.State().Snapshot()
	if snapA.Hash() != snapB.Hash() {
		t.Errorf("same seed diverged: tick %d vs %d", snapA.Tick, snapB.Tick)
	}
}

func TestAutopilotFollowsBuildOrder(t *testing.T) {
	engine, _, _ := autoplay(t, 1, 0, 3)

	towers := engine.State().Towers
	if len(towers) != 2 {
		t.Fatalf("expected two archers from 120 gold, got %d towers", len(towers))
	}
	for _, tw := range towers {
		if tw.Kind != sim.TowerArcher {
			t.Errorf("built %v, expected archers first", tw.Kind)
		}
	}
	if engine.State().Money != 20 {
		t.Errorf("Money = %d, expected 20", engine.State().Money)
	}
}

func TestRankCellsPrefersPathCoverage(t *testing.T) {
	s := sim.NewState(sim.DefaultOptions())
	s.Reset()

	cells := rankCells(s, 120)
	if len(cells) == 0 {
		t.Fatal("no candidate cells")
	}
	for i := 1; i < len(cells); i++ {
		if cells[i].coverage > cells[i-1].coverage {
			t.Fatalf("cells not sorted at %d", i)
		}
	}
	for _, c := range cells {
		if s.Grid.OnPath(c.col, c.row) {
			t.Fatalf("path cell %d,%d offered for building", c.col, c.row)
		}
	}

	s.Grid.Occupy(cells[0].col, cells[0].row)
	again := rankCells(s, 120)
	if again[0] == cells[0] {
		t.Error("occupied cell should drop out of the ranking")
	}
}

func TestAutopilotUpgradesWhenNoCellIsLeft(t *testing.T) {
	opts := sim.DefaultOptions()
	opts.StartingMoney = 1000
	engine := sim.NewEngine(sim.NewState(opts), 0)
	engine.Submit(sim.Reset())
	engine.Submit(sim.PlaceTower(sim.TowerArcher, 0, 0))
	engine.Flush()

	s := engine.State()
	for row := range sim.Rows {
		for col := range sim.Cols {
			if s.Grid.CanPlace(col, row) {
				s.Grid.Occupy(col, row)
			}
		}
	}

	pilot := NewAutopilot(engine, 0)
	for range len(DefaultBuildOrder) {
		pilot.Observe(s)
	}
	engine.Step()

	if len(s.Towers) != 1 {
		t.Fatalf("built on a full grid: %d towers", len(s.Towers))
	}
	if !s.Towers[0].Upgraded() {
		t.Error("autopilot should upgrade once the build order has nowhere to go")
	}
}
