package sim

import (
	"context"
	"errors"
	"testing"
)

func newEngine(t *testing.T, opts Options, queue int) *Engine {
	t.Helper()
	e := NewEngine(NewState(opts), queue)
	if err := e.Submit(Reset()); err != nil {
		t.Fatalf("Submit(Reset): %v", err)
	}
	e.Flush()
	return e
}

func TestEngineAppliesCommandsBetweenTicks(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 8)

	if err := e.Submit(PlaceTower(TowerArcher, 0, 0)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(e.State().Towers) != 0 {
		t.Fatal("command applied before the next tick")
	}

	e.Step()
	if len(e.State().Towers) != 1 {
		t.Fatalf("expected one tower after Step, got %d", len(e.State().Towers))
	}
	if e.State().Tick != 1 {
		t.Errorf("Tick = %d, expected 1", e.State().Tick)
	}
}

func TestEngineReply(t *testing.T) {
	e := newEngine(t, DefaultOptions(), 8)

	reply := make(chan Result, 2)
	e.Submit(PlaceTower(TowerSniper, 0, 0).WithReply(reply))
	e.Submit(StartWave().WithReply(reply))
	e.Step()

	first := <-reply
	if !errors.Is(first.Err, ErrInsufficientFunds) {
		t.Errorf("sniper with 120 money: err = %v", first.Err)
	}
	second := <-reply
	if second.Err != nil || second.Command.Kind != CmdStartWave {
		t.Errorf("start wave: %+v", second)
	}
}

func TestEngineQueueFull(t *testing.T) {
	e := NewEngine(NewState(DefaultOptions()), 1)

	if err := e.Submit(Reset()); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if err := e.Submit(StartWave()); !errors.Is(err, ErrQueueFull) {
		t.Errorf("second Submit: err = %v, expected ErrQueueFull", err)
	}
	if e.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", e.Pending())
	}
}

func TestEngineDispatchesEventsInOrder(t *testing.T) {
	e := NewEngine(NewState(DefaultOptions()), 8)

	var kinds []EventKind
	var rejected []error
	e.Subscribe(func(ev Event) {
		kinds = append(kinds, ev.Kind)
		if ev.Kind == EventCommandRejected {
			rejected = append(rejected, ev.Err)
		}
	})

	e.Submit(Reset())
	e.Submit(PlaceTower(TowerArcher, 0, 0))
	e.Submit(PlaceTower(TowerArcher, 0, 2)) // on the path
	e.Step()

	expected := []EventKind{
		EventMoneyChanged, EventLivesChanged, EventGameReset,
		EventMoneyChanged, EventTowerBuilt,
		EventCommandRejected,
	}
	if len(kinds) != len(expected) {
		t.Fatalf("events = %v, expected %v", kinds, expected)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("event %d = %s, expected %s", i, kinds[i], expected[i])
		}
	}
	if len(rejected) != 1 || !errors.Is(rejected[0], ErrCellUnavailable) {
		t.Errorf("rejections = %v", rejected)
	}
}

func TestEngineStatsListener(t *testing.T) {
	opts := DefaultOptions()
	opts.StartingMoney = 1000
	opts.StartingLives = 50
	e := NewEngine(NewState(opts), 16)

	var stats Stats
	e.Subscribe(stats.Listen)

	e.Submit(Reset())
	e.Submit(PlaceTower(TowerCannon, 4, 3))
	e.Submit(PlaceTower(TowerArcher, 6, 3))
	e.Submit(UpgradeTower(4, 3, ModRange))
	e.Submit(StartWave())
	for i := 0; i < 5000; i++ {
		e.Step()
		if e.State().Phase == PhasePrep && i > 0 {
			break
		}
	}

	if stats.TowersBuilt != 2 || stats.Upgrades != 1 {
		t.Errorf("built=%d upgrades=%d", stats.TowersBuilt, stats.Upgrades)
	}
	if stats.MoneySpent != 120+50+UpgradeCost {
		t.Errorf("MoneySpent = %d, expected %d", stats.MoneySpent, 120+50+UpgradeCost)
	}
	if stats.WavesCompleted != 1 || stats.HighestWave != 1 {
		t.Errorf("waves completed=%d highest=%d", stats.WavesCompleted, stats.HighestWave)
	}
	if stats.Kills+stats.LivesLost != SpawnCount(1) {
		t.Errorf("kills %d + leaks %d should account for all %d spawns", stats.Kills, stats.LivesLost, SpawnCount(1))
	}

	s := e.State()
	if s.Money != 1000-stats.MoneySpent+stats.MoneyEarned {
		t.Errorf("Money = %d, stats: spent %d earned %d", s.Money, stats.MoneySpent, stats.MoneyEarned)
	}

	e.Submit(Reset())
	e.Step()
	if stats.Kills != 0 || stats.TowersBuilt != 0 {
		t.Error("stats should restart on reset")
	}
	if stats.HighestWave != 1 {
		t.Errorf("HighestWave = %d after reset, expected the record to stay 1", stats.HighestWave)
	}
}

func runScript(seed int64) Snapshot {
	opts := DefaultOptions()
	opts.Seed = seed
	opts.StartingMoney = 5000
	opts.StartingLives = 100
	e := NewEngine(NewState(opts), 32)

	e.Submit(Reset())
	e.Submit(PlaceTower(TowerLaser, 4, 3))
	e.Submit(PlaceTower(TowerCannon, 6, 6))
	e.Submit(PlaceTower(TowerSniper, 13, 6))
	e.Submit(UpgradeTower(6, 6, ModDamage))

	for tick := 0; tick < 6000; tick++ {
		if e.State().Phase == PhasePrep && e.State().Wave <= 4 {
			e.Submit(StartWave())
		}
		e.Step()
	}
	return e.State().Snapshot()
}

func TestEngineDeterminism(t *testing.T) {
	snap1 := runScript(12345)
	snap2 := runScript(12345)

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Money != snap2.Money || snap1.Wave != snap2.Wave || snap1.Lives != snap2.Lives {
		t.Errorf("Determinism failed: %+v vs %+v", snap1, snap2)
	}
	if snap1.Wave < 3 {
		t.Errorf("script should have progressed past wave 2, at wave %d", snap1.Wave)
	}
}

func TestEngineRunStopsOnCancel(t *testing.T) {
	opts := DefaultOptions()
	opts.TickRate = 1000
	e := NewEngine(NewState(opts), 4)
	e.Submit(Reset())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e.OnTick(func(s *State) {
		if s.Tick >= 5 {
			cancel()
		}
	})

	err := e.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
	if e.State().Tick < 5 {
		t.Errorf("Tick = %d, expected at least 5", e.State().Tick)
	}
	if e.State().Phase != PhasePrep {
		t.Errorf("queued reset should have been applied, phase = %s", e.State().Phase)
	}
}
