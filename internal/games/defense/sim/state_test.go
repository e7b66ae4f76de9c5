package sim

import (
	"errors"
	"testing"
)

func newRunningState(t *testing.T, opts Options) *State {
	t.Helper()
	s := NewState(opts)
	s.Reset()
	s.DrainEvents()
	return s
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestFreshReset(t *testing.T) {
	s := NewState(DefaultOptions())
	if s.Phase != PhaseMenu {
		t.Errorf("new state phase = %s, expected MENU", s.Phase)
	}

	s.Reset()

	if s.Money != 120 || s.Lives != 10 || s.Wave != 1 {
		t.Errorf("reset: money=%d lives=%d wave=%d", s.Money, s.Lives, s.Wave)
	}
	if s.Phase != PhasePrep {
		t.Errorf("reset phase = %s, expected PREP", s.Phase)
	}
	if len(s.Enemies)+len(s.Towers)+len(s.Projectiles) != 0 {
		t.Error("reset should leave no live entities")
	}

	expected := NewGrid(Cols, Rows, DefaultPath())
	for row := range Rows {
		for col := range Cols {
			if s.Grid.Occupied(col, row) != expected.Occupied(col, row) {
				t.Fatalf("cell (%d,%d) differs from the rasterized path", col, row)
			}
		}
	}

	events := s.DrainEvents()
	if len(events) == 0 || events[len(events)-1].Kind != EventGameReset {
		t.Errorf("reset should end with a game_reset event, got %v", events)
	}
}

func TestResetClearsRun(t *testing.T) {
	s := newRunningState(t, DefaultOptions())
	if _, err := s.PlaceTower(TowerArcher, 0, 0); err != nil {
		t.Fatalf("PlaceTower: %v", err)
	}
	if err := s.StartWave(); err != nil {
		t.Fatalf("StartWave: %v", err)
	}
	for range 100 {
		s.Advance()
	}

	s.Reset()

	if len(s.Towers) != 0 || len(s.Enemies) != 0 || len(s.Projectiles) != 0 {
		t.Error("reset should clear all entities")
	}
	if !s.Grid.CanPlace(0, 0) {
		t.Error("reset should free tower cells")
	}
	if s.Money != 120 || s.Phase != PhasePrep || s.Waves.Remaining != 0 {
		t.Errorf("reset: money=%d phase=%s remaining=%d", s.Money, s.Phase, s.Waves.Remaining)
	}
}

func TestPlaceArcher(t *testing.T) {
	s := newRunningState(t, DefaultOptions())

	tower, err := s.PlaceTower(TowerArcher, 0, 0)
	if err != nil {
		t.Fatalf("PlaceTower: %v", err)
	}

	if s.Money != 70 {
		t.Errorf("Money = %d, expected 70", s.Money)
	}
	if tower.Range() != 120 || tower.Damage() != 25 || tower.Cooldown() != 600 {
		t.Errorf("tower stats = range %v damage %d cooldown %d", tower.Range(), tower.Damage(), tower.Cooldown())
	}
	if tower.Pos != (Point{24, 24}) {
		t.Errorf("tower pos = %v, expected cell centre (24,24)", tower.Pos)
	}
	if s.Grid.CanPlace(0, 0) {
		t.Error("cell should be occupied after placement")
	}

	events := s.DrainEvents()
	if countEvents(events, EventTowerBuilt) != 1 || countEvents(events, EventMoneyChanged) != 1 {
		t.Errorf("expected one money_changed and one tower_built event, got %v", events)
	}
}

func TestPlaceTowerRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *State)
		kind  TowerKind
		col   int
		row   int
		err   error
	}{
		{"unknown type", nil, "CATAPULT", 0, 0, ErrUnknownTower},
		{"on path", nil, TowerArcher, 0, 2, ErrCellUnavailable},
		{"out of bounds", nil, TowerArcher, Cols, 0, ErrCellUnavailable},
		{"occupied", func(s *State) { s.PlaceTower(TowerArcher, 0, 0) }, TowerArcher, 0, 0, ErrCellUnavailable},
		{"too expensive", nil, TowerSniper, 0, 0, ErrInsufficientFunds},
		{"game over", func(s *State) { s.Phase = PhaseGameOver }, TowerArcher, 0, 0, ErrGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newRunningState(t, DefaultOptions())
			if tt.setup != nil {
				tt.setup(s)
			}
			money, towers := s.Money, len(s.Towers)

			_, err := s.PlaceTower(tt.kind, tt.col, tt.row)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, expected %v", err, tt.err)
			}
			if s.Money != money || len(s.Towers) != towers {
				t.Error("rejected placement changed state")
			}
		})
	}
}

func TestCommandsBeforeStart(t *testing.T) {
	s := NewState(DefaultOptions())

	if _, err := s.PlaceTower(TowerArcher, 0, 0); !errors.Is(err, ErrNotStarted) {
		t.Errorf("PlaceTower in menu: err = %v", err)
	}
	if err := s.StartWave(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("StartWave in menu: err = %v", err)
	}
}

func TestUpgradeTower(t *testing.T) {
	opts := DefaultOptions()
	opts.StartingMoney = 300
	s := newRunningState(t, opts)

	if _, err := s.UpgradeTower(0, 0, ModDamage); !errors.Is(err, ErrNoTower) {
		t.Errorf("upgrade empty cell: err = %v", err)
	}

	tower, _ := s.PlaceTower(TowerArcher, 0, 0)
	s.DrainEvents()

	if _, err := s.UpgradeTower(0, 0, ModDamage); err != nil {
		t.Fatalf("UpgradeTower: %v", err)
	}
	if s.Money != 150 {
		t.Errorf("Money = %d, expected 150", s.Money)
	}
	if tower.Damage() != 50 {
		t.Errorf("Damage() = %d, expected 50", tower.Damage())
	}
	if s.TowerAt(0, 0) != tower || tower.Pos != CellCenter(0, 0) {
		t.Error("upgrade should keep the tower in place")
	}
	if countEvents(s.DrainEvents(), EventTowerUpgraded) != 1 {
		t.Error("expected a tower_upgraded event")
	}

	if _, err := s.UpgradeTower(0, 0, ModRange); !errors.Is(err, ErrAlreadyUpgraded) {
		t.Errorf("second upgrade: err = %v", err)
	}
	if s.Money != 150 || tower.Range() != 120 {
		t.Error("rejected upgrade changed state")
	}
}

func TestUpgradeTowerInsufficientFunds(t *testing.T) {
	s := newRunningState(t, DefaultOptions())
	tower, _ := s.PlaceTower(TowerArcher, 0, 0) // 70 left

	if _, err := s.UpgradeTower(0, 0, ModDamage); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, expected insufficient funds", err)
	}
	if s.Money != 70 || tower.Upgraded() {
		t.Error("rejected upgrade changed state")
	}
}

func TestStartWave(t *testing.T) {
	s := newRunningState(t, DefaultOptions())

	if err := s.StartWave(); err != nil {
		t.Fatalf("StartWave: %v", err)
	}
	if s.Waves.Remaining != 10 || s.Waves.SpawnDelayMillis != 800 {
		t.Errorf("remaining=%d delay=%d", s.Waves.Remaining, s.Waves.SpawnDelayMillis)
	}
	if s.Phase != PhaseWave {
		t.Errorf("phase = %s, expected WAVE_IN_PROGRESS", s.Phase)
	}

	events := s.DrainEvents()
	if len(events) != 1 || events[0].Kind != EventWaveStarted || events[0].Value != 1 {
		t.Errorf("expected wave_started(1), got %v", events)
	}

	if err := s.StartWave(); !errors.Is(err, ErrWaveInProgress) {
		t.Errorf("second StartWave: err = %v", err)
	}
}

func TestSpawnCadence(t *testing.T) {
	s := newRunningState(t, DefaultOptions())
	s.StartWave()

	s.Advance()
	if len(s.Enemies) != 1 || s.Waves.Remaining != 9 {
		t.Fatalf("first tick should spawn: enemies=%d remaining=%d", len(s.Enemies), s.Waves.Remaining)
	}
	if s.Enemies[0].MaxHealth != 80+HealthBuff(1) {
		t.Errorf("MaxHealth = %d, expected buffed %d", s.Enemies[0].MaxHealth, 80+HealthBuff(1))
	}

	// 800ms at 60 ticks/s: tick 48 is exactly 800ms, tick 49 is past it.
	for s.Tick < 49 {
		s.Advance()
	}
	if len(s.Enemies) != 1 {
		t.Fatalf("spawned before the delay elapsed: %d enemies", len(s.Enemies))
	}
	s.Advance()
	if len(s.Enemies) != 2 {
		t.Errorf("second spawn expected at tick 49, enemies=%d", len(s.Enemies))
	}
}

func TestWaveCompletion(t *testing.T) {
	s := newRunningState(t, DefaultOptions())
	s.StartWave()
	s.DrainEvents()

	// Spawning exhausted but an enemy is still alive: no transition.
	s.Waves.Remaining = 0
	s.Enemies = []*Enemy{Template(EnemyNormal).Spawn(1, s.Path[0], 0)}
	s.Advance()
	if s.Phase != PhaseWave {
		t.Fatal("wave ended while an enemy was alive")
	}

	// Field empty but spawns remain: no transition.
	s.Enemies = nil
	s.Waves.Remaining = 1
	s.Waves.LastSpawn = s.NowMillis()
	s.Advance()
	if s.Phase != PhaseWave {
		t.Fatal("wave ended while spawns remained")
	}

	// Both drained.
	s.Waves.Remaining = 0
	s.Enemies = nil
	s.Advance()

	if s.Phase != PhasePrep {
		t.Errorf("phase = %s, expected PREP", s.Phase)
	}
	if s.Wave != 2 {
		t.Errorf("Wave = %d, expected 2", s.Wave)
	}
	if s.Money != 180 {
		t.Errorf("Money = %d, expected 120+60", s.Money)
	}

	events := s.DrainEvents()
	for _, ev := range events {
		if ev.Kind == EventWaveCompleted && (ev.Value != 1 || ev.Delta != 60) {
			t.Errorf("wave_completed = %+v, expected wave 1 reward 60", ev)
		}
	}
	if countEvents(events, EventWaveCompleted) != 1 {
		t.Errorf("expected one wave_completed event, got %v", events)
	}
}

func TestLeakedEnemiesCostOneLifeEach(t *testing.T) {
	opts := DefaultOptions()
	opts.StartingLives = 20
	s := newRunningState(t, opts)
	s.StartWave()

	var events []Event
	for i := 0; i < 5000 && s.Phase == PhaseWave; i++ {
		s.Advance()
		events = append(events, s.DrainEvents()...)
	}

	if s.Phase != PhasePrep {
		t.Fatalf("wave did not finish, phase = %s", s.Phase)
	}
	if s.Lives != 10 {
		t.Errorf("Lives = %d, expected 20-10", s.Lives)
	}
	if n := countEvents(events, EventLivesChanged); n != 10 {
		t.Errorf("lives_changed events = %d, expected 10", n)
	}
	if s.Money != 120+CompletionReward(1) {
		t.Errorf("Money = %d, expected only the completion reward", s.Money)
	}
}

func TestGameOver(t *testing.T) {
	opts := DefaultOptions()
	opts.StartingLives = 3
	s := newRunningState(t, opts)
	s.StartWave()

	var events []Event
	for i := 0; i < 5000 && s.Phase != PhaseGameOver; i++ {
		s.Advance()
		events = append(events, s.DrainEvents()...)
	}

	if s.Phase != PhaseGameOver {
		t.Fatalf("expected game over, phase = %s", s.Phase)
	}
	if s.Lives != 0 {
		t.Errorf("Lives = %d, expected 0", s.Lives)
	}
	if countEvents(events, EventGameOver) != 1 {
		t.Error("expected exactly one game_over event")
	}

	frozen := s.Snapshot()
	for range 200 {
		s.Advance()
	}
	after := s.Snapshot()
	if frozen.Lives != after.Lives || len(frozen.EnemyData) != len(after.EnemyData) {
		t.Error("entities should be frozen after game over")
	}

	if _, err := s.PlaceTower(TowerArcher, 0, 0); !errors.Is(err, ErrGameOver) {
		t.Errorf("PlaceTower after game over: err = %v", err)
	}
	if err := s.StartWave(); !errors.Is(err, ErrGameOver) {
		t.Errorf("StartWave after game over: err = %v", err)
	}

	s.Reset()
	if s.Phase != PhasePrep || s.Lives != 3 {
		t.Errorf("reset after game over: phase=%s lives=%d", s.Phase, s.Lives)
	}
}

func TestKilledEnemyRemovedNextTickWithReward(t *testing.T) {
	s := newRunningState(t, DefaultOptions())
	s.Phase = PhaseWave
	e := Template(EnemyNormal).Spawn(1, Point{X: 100, Y: 120}, 0)
	s.Enemies = []*Enemy{e}

	e.TakeDamage(1000)
	s.Advance()

	if len(s.Enemies) != 0 {
		t.Fatal("dead enemy should be removed on the next tick")
	}
	if s.Money != 130 {
		t.Errorf("Money = %d, expected 120+10", s.Money)
	}
	if countEvents(s.DrainEvents(), EventEnemyKilled) != 1 {
		t.Error("expected one enemy_killed event")
	}
}

func TestMoneyConservation(t *testing.T) {
	opts := DefaultOptions()
	opts.StartingMoney = 2000
	opts.StartingLives = 100
	s := newRunningState(t, opts)

	spent := 0
	for _, c := range [][2]int{{4, 3}, {6, 3}, {4, 4}, {6, 6}, {13, 7}, {15, 5}} {
		tower, err := s.PlaceTower(TowerArcher, c[0], c[1])
		if err != nil {
			t.Fatalf("PlaceTower(%v): %v", c, err)
		}
		spent += 50
		if _, err := s.UpgradeTower(tower.Col, tower.Row, ModDamage); err != nil {
			t.Fatalf("UpgradeTower: %v", err)
		}
		spent += UpgradeCost
	}
	s.DrainEvents()

	credited := 0
	for wave := 1; wave <= 2; wave++ {
		if err := s.StartWave(); err != nil {
			t.Fatalf("StartWave(%d): %v", wave, err)
		}
		for i := 0; i < 10000 && s.Phase == PhaseWave; i++ {
			s.Advance()
			for _, ev := range s.DrainEvents() {
				switch ev.Kind {
				case EventEnemyKilled:
					credited += ev.Value
				case EventWaveCompleted:
					credited += ev.Delta
				}
			}
		}
		if s.Phase != PhasePrep {
			t.Fatalf("wave %d did not complete, phase = %s", wave, s.Phase)
		}
	}

	if expected := 2000 - spent + credited; s.Money != expected {
		t.Errorf("Money = %d, expected %d (start 2000, spent %d, credited %d)", s.Money, expected, spent, credited)
	}
	if s.Wave != 3 {
		t.Errorf("Wave = %d, expected 3", s.Wave)
	}
}
