// Package sim is the tower-defense simulation core: entities, the wave
// scheduler, the economy and the fixed-tick loop. It has no terminal or
// I/O dependencies; front ends talk to it through commands and events.
package sim

import "fmt"

// Phase is the run state of a simulation.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePrep
	PhaseWave
	PhaseGameOver
)

// String returns the display name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhasePrep:
		return "PREP"
	case PhaseWave:
		return "WAVE_IN_PROGRESS"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Options configure a simulation. Reset restores money and lives to the
// starting values given here.
type Options struct {
	StartingMoney int
	StartingLives int
	TickRate      int // ticks per simulated second
	Seed          int64
	Path          []Point
}

// DefaultOptions returns the classic starting values.
func DefaultOptions() Options {
	return Options{
		StartingMoney: 120,
		StartingLives: 10,
		TickRate:      60,
		Seed:          1,
		Path:          DefaultPath(),
	}
}

// State is the authoritative simulation context. It is owned by exactly
// one goroutine at a time; Engine serializes access from outside.
type State struct {
	Money int
	Lives int
	Wave  int
	Phase Phase
	Tick  uint64

	Grid        *Grid
	Path        []Point
	Enemies     []*Enemy
	Towers      []*Tower
	Projectiles []*Projectile
	Waves       WaveManager

	opts        Options
	rng         *RNG
	nextEnemyID int
	nextTowerID int
	events      []Event
}

// NewState builds a simulation in the menu phase. Call Reset to start a run.
func NewState(opts Options) *State {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if len(opts.Path) < 2 {
		opts.Path = DefaultPath()
	}
	s := &State{
		opts:  opts,
		Path:  opts.Path,
		Grid:  NewGrid(Cols, Rows, opts.Path),
		Phase: PhaseMenu,
	}
	s.restore()
	return s
}

// Options returns the options the state was built with.
func (s *State) Options() Options {
	return s.opts
}

// NowMillis is the simulated clock derived from the tick counter.
func (s *State) NowMillis() int64 {
	return int64(s.Tick) * 1000 / int64(s.opts.TickRate) //#nosec G115 -- tick count fits
}

// RNGState exposes the generator state for snapshots.
func (s *State) RNGState() uint64 {
	return s.rng.State()
}

// Reset starts a fresh run: starting money and lives, wave 1, no entities,
// grid rebuilt from the path, phase Prep.
func (s *State) Reset() {
	oldMoney, oldLives := s.Money, s.Lives
	s.restore()
	s.Phase = PhasePrep
	s.emit(EventMoneyChanged, s.Money, s.Money-oldMoney)
	s.emit(EventLivesChanged, s.Lives, s.Lives-oldLives)
	s.emit(EventGameReset, 0, 0)
}

func (s *State) restore() {
	s.Money = s.opts.StartingMoney
	s.Lives = s.opts.StartingLives
	s.Wave = 1
	s.Tick = 0
	s.Enemies = nil
	s.Towers = nil
	s.Projectiles = nil
	s.Waves.Clear()
	s.Grid.Rebuild(s.Path)
	s.rng = NewRNG(s.opts.Seed)
	s.nextEnemyID = 0
	s.nextTowerID = 0
}

// Playing reports whether gameplay commands are accepted.
func (s *State) Playing() bool {
	return s.Phase == PhasePrep || s.Phase == PhaseWave
}

func (s *State) gameplayAllowed() error {
	switch s.Phase {
	case PhaseMenu:
		return ErrNotStarted
	case PhaseGameOver:
		return ErrGameOver
	}
	return nil
}

func (s *State) addMoney(amount int) {
	if amount == 0 {
		return
	}
	s.Money += amount
	s.emit(EventMoneyChanged, s.Money, amount)
}

func (s *State) spend(amount int) bool {
	if s.Money < amount {
		return false
	}
	s.Money -= amount
	s.emit(EventMoneyChanged, s.Money, -amount)
	return true
}

func (s *State) loseLife() {
	s.Lives--
	s.emit(EventLivesChanged, s.Lives, -1)
	if s.Lives <= 0 && s.Phase != PhaseGameOver {
		s.Phase = PhaseGameOver
		s.Waves.Clear()
		s.emit(EventGameOver, s.Wave, 0)
	}
}

// TowerAt returns the tower built on (col, row), or nil.
func (s *State) TowerAt(col, row int) *Tower {
	for _, t := range s.Towers {
		if t.Col == col && t.Row == row {
			return t
		}
	}
	return nil
}

// PlaceTower builds a tower of kind on (col, row).
func (s *State) PlaceTower(kind TowerKind, col, row int) (*Tower, error) {
	if err := s.gameplayAllowed(); err != nil {
		return nil, err
	}
	preset, ok := Preset(kind)
	if !ok {
		return nil, ErrUnknownTower
	}
	if !s.Grid.CanPlace(col, row) {
		return nil, ErrCellUnavailable
	}
	if !s.spend(preset.Cost) {
		return nil, ErrInsufficientFunds
	}

	s.nextTowerID++
	t := NewTower(s.nextTowerID, preset, col, row)
	s.Towers = append(s.Towers, t)
	s.Grid.Occupy(col, row)
	s.emit(EventTowerBuilt, preset.Cost, 0)
	return t, nil
}

// UpgradeTower applies a modifier of kind to the tower on (col, row).
// A tower takes one upgrade.
func (s *State) UpgradeTower(col, row int, kind ModifierKind) (*Tower, error) {
	if err := s.gameplayAllowed(); err != nil {
		return nil, err
	}
	t := s.TowerAt(col, row)
	if t == nil {
		return nil, ErrNoTower
	}
	if t.Upgraded() {
		return nil, ErrAlreadyUpgraded
	}
	if !s.spend(UpgradeCost) {
		return nil, ErrInsufficientFunds
	}

	t.Apply(NewModifier(kind))
	s.emit(EventTowerUpgraded, UpgradeCost, 0)
	return t, nil
}

// StartWave moves from Prep to WaveInProgress for the current wave.
func (s *State) StartWave() error {
	if err := s.gameplayAllowed(); err != nil {
		return err
	}
	if s.Phase != PhasePrep {
		return ErrWaveInProgress
	}
	s.Waves.Begin(s.Wave)
	s.Phase = PhaseWave
	s.emit(EventWaveStarted, s.Wave, 0)
	return nil
}

// Advance runs one tick: wave schedule, enemies, towers, projectiles.
// Each pass iterates a snapshot of its collection and applies removals
// and additions after the pass.
func (s *State) Advance() {
	if s.Playing() {
		s.advanceTick()
	}
	s.Tick++
}

func (s *State) advanceTick() {
	if s.Phase == PhaseWave {
		s.advanceWave()
	}

	s.updateEnemies()
	if s.Phase == PhaseGameOver {
		return
	}
	s.updateTowers()
	s.updateProjectiles()
}

func (s *State) updateEnemies() {
	snapshot := make([]*Enemy, len(s.Enemies))
	copy(snapshot, s.Enemies)

	var leaked, killed []*Enemy
	kept := make([]*Enemy, 0, len(snapshot))
	for _, e := range snapshot {
		e.Update(s.Path)
		switch {
		case e.Finished:
			leaked = append(leaked, e)
		case !e.Alive:
			killed = append(killed, e)
		default:
			kept = append(kept, e)
		}
	}
	s.Enemies = kept

	for range leaked {
		s.loseLife()
	}
	for _, e := range killed {
		s.addMoney(e.Reward)
		s.emit(EventEnemyKilled, e.Reward, 0)
	}
}

func (s *State) updateTowers() {
	now := s.NowMillis()
	towers := make([]*Tower, len(s.Towers))
	copy(towers, s.Towers)
	targets := make([]*Enemy, len(s.Enemies))
	copy(targets, s.Enemies)

	var fired []*Projectile
	for _, t := range towers {
		if p := t.Update(now, targets); p != nil {
			fired = append(fired, p)
		}
	}
	s.Projectiles = append(s.Projectiles, fired...)
}

func (s *State) updateProjectiles() {
	snapshot := make([]*Projectile, len(s.Projectiles))
	copy(snapshot, s.Projectiles)

	kept := make([]*Projectile, 0, len(snapshot))
	for _, p := range snapshot {
		p.Update()
		if p.Active {
			kept = append(kept, p)
		}
	}
	s.Projectiles = kept
}
