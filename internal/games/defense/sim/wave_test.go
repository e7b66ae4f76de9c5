package sim

import "testing"

func TestWaveCurves(t *testing.T) {
	tests := []struct {
		wave   int
		count  int
		delay  int64
		buff   int
		reward int
	}{
		{1, 10, 800, 30, 60},
		{4, 16, 800, 120, 90},
		{5, 18, 700, 150, 100},
		{6, 36, 700, 200, 190},
		{9, 45, 700, 350, 235},
		{10, 48, 600, 400, 250},
		{11, 67, 600, 480, 470},
		{15, 75, 500, 800, 550},
		{20, 85, 500, 1200, 650},
		{21, 148, 500, 1320, 1175},
	}

	for _, tt := range tests {
		if got := SpawnCount(tt.wave); got != tt.count {
			t.Errorf("SpawnCount(%d) = %d, expected %d", tt.wave, got, tt.count)
		}
		if got := SpawnDelay(tt.wave); got != tt.delay {
			t.Errorf("SpawnDelay(%d) = %d, expected %d", tt.wave, got, tt.delay)
		}
		if got := HealthBuff(tt.wave); got != tt.buff {
			t.Errorf("HealthBuff(%d) = %d, expected %d", tt.wave, got, tt.buff)
		}
		if got := CompletionReward(tt.wave); got != tt.reward {
			t.Errorf("CompletionReward(%d) = %d, expected %d", tt.wave, got, tt.reward)
		}
	}
}

func TestRollEnemyTypeGates(t *testing.T) {
	rng := NewRNG(42)

	for range 500 {
		if got := RollEnemyType(1, rng); got != EnemyNormal {
			t.Fatalf("wave 1 rolled %s, only NORMAL is unlocked", got)
		}
	}

	sawFast := false
	for range 500 {
		got := RollEnemyType(4, rng)
		if got == EnemyTank {
			t.Fatal("wave 4 rolled TANK before it is unlocked")
		}
		if got == EnemyFast {
			sawFast = true
		}
	}
	if !sawFast {
		t.Error("wave 4 never rolled FAST")
	}
}

func TestRollEnemyTypeWeights(t *testing.T) {
	rng := NewRNG(7)
	const n = 20000

	counts := map[EnemyType]int{}
	for range n {
		counts[RollEnemyType(8, rng)]++
	}

	check := func(kind EnemyType, want float64) {
		got := float64(counts[kind]) / n
		if got < want-0.03 || got > want+0.03 {
			t.Errorf("%s share = %.3f, expected about %.2f", kind, got, want)
		}
	}
	check(EnemyTank, 0.25)
	check(EnemyFast, 0.45)
	check(EnemyNormal, 0.30)
}

func TestWaveManagerDue(t *testing.T) {
	var wm WaveManager
	wm.Begin(1)

	if wm.Remaining != 10 || wm.SpawnDelayMillis != 800 {
		t.Fatalf("Begin(1): remaining=%d delay=%d", wm.Remaining, wm.SpawnDelayMillis)
	}
	if !wm.Due(0) {
		t.Error("first spawn should be due immediately")
	}

	wm.LastSpawn = 1000
	if wm.Due(1800) {
		t.Error("spawn requires strictly more than the delay to elapse")
	}
	if !wm.Due(1801) {
		t.Error("spawn should be due after the delay")
	}

	wm.Remaining = 0
	if wm.Due(1_000_000) {
		t.Error("nothing is due once spawning is exhausted")
	}
}
