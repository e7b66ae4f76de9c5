package sim

// SpawnCount returns how many enemies wave w spawns.
func SpawnCount(w int) int {
	w = max(w, 1)
	switch {
	case w <= 5:
		return 8 + 2*w
	case w <= 10:
		return 18 + 3*w
	case w <= 20:
		return 45 + 2*w
	default:
		return 85 + 3*w
	}
}

// SpawnDelay returns the minimum gap between spawns in wave w, in milliseconds.
func SpawnDelay(w int) int64 {
	switch {
	case w >= 15:
		return 500
	case w >= 10:
		return 600
	case w >= 5:
		return 700
	default:
		return 800
	}
}

// HealthBuff returns the flat health added to every enemy of wave w.
func HealthBuff(w int) int {
	w = max(w, 1)
	switch {
	case w <= 5:
		return 30 * w
	case w <= 10:
		return 150 + 50*(w-5)
	case w <= 20:
		return 400 + 80*(w-10)
	default:
		return 1200 + 120*(w-20)
	}
}

// CompletionReward returns the money granted when wave w is cleared.
func CompletionReward(w int) int {
	w = max(w, 1)
	switch {
	case w <= 5:
		return 50 + 10*w
	case w <= 10:
		return 100 + 15*w
	case w <= 20:
		return 250 + 20*w
	default:
		return 650 + 25*w
	}
}

// Spawn weights in percent; Normal takes whatever is left.
const (
	TankWeight    = 25
	TankFromWave  = 7
	FastWeight    = 45
	FastFromWave  = 3
	weightedTotal = 100
)

// RollEnemyType picks the type of the next spawn for wave w.
func RollEnemyType(w int, rng *RNG) EnemyType {
	type weighted struct {
		kind   EnemyType
		weight int
	}
	table := make([]weighted, 0, 3)
	if w >= TankFromWave {
		table = append(table, weighted{EnemyTank, TankWeight})
	}
	if w >= FastFromWave {
		table = append(table, weighted{EnemyFast, FastWeight})
	}

	roll := rng.Intn(weightedTotal)
	cumulative := 0
	for _, entry := range table {
		cumulative += entry.weight
		if roll < cumulative {
			return entry.kind
		}
	}
	return EnemyNormal
}

// WaveManager schedules spawns for the wave in progress.
type WaveManager struct {
	Remaining        int
	LastSpawn        int64
	SpawnDelayMillis int64
}

// Begin prepares the schedule for wave w. The first spawn is due at once.
func (wm *WaveManager) Begin(w int) {
	wm.Remaining = SpawnCount(w)
	wm.SpawnDelayMillis = SpawnDelay(w)
	wm.LastSpawn = never
}

// Clear drops any pending spawns.
func (wm *WaveManager) Clear() {
	*wm = WaveManager{LastSpawn: never}
}

// Due reports whether a spawn should happen at now.
func (wm *WaveManager) Due(now int64) bool {
	return wm.Remaining > 0 && now-wm.LastSpawn > wm.SpawnDelayMillis
}

// advanceWave runs the spawn schedule and checks for completion.
func (s *State) advanceWave() {
	now := s.NowMillis()
	if s.Waves.Due(now) {
		kind := Seasonal(RollEnemyType(s.Wave, s.rng), s.Wave)
		s.nextEnemyID++
		e := Template(kind).Spawn(s.nextEnemyID, s.Path[0], HealthBuff(s.Wave))
		s.Enemies = append(s.Enemies, e)
		s.Waves.Remaining--
		s.Waves.LastSpawn = now
	}

	if s.Waves.Remaining == 0 && len(s.Enemies) == 0 {
		reward := CompletionReward(s.Wave)
		s.Phase = PhasePrep
		s.addMoney(reward)
		s.emit(EventWaveCompleted, s.Wave, reward)
		s.Wave++
	}
}
