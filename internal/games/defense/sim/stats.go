package sim

// Stats tallies a run from the event stream. Register Listen on an engine.
// Every counter restarts on GameReset except HighestWave, which is the
// record across all runs seen by this listener.
type Stats struct {
	Kills          int
	MoneyEarned    int
	MoneySpent     int
	TowersBuilt    int
	Upgrades       int
	WavesCompleted int
	HighestWave    int // highest wave completed
	LivesLost      int
}

// Listen consumes one event.
func (st *Stats) Listen(ev Event) {
	switch ev.Kind {
	case EventGameReset:
		*st = Stats{HighestWave: st.HighestWave}
	case EventEnemyKilled:
		st.Kills++
	case EventMoneyChanged:
		if ev.Delta > 0 {
			st.MoneyEarned += ev.Delta
		}
	case EventTowerBuilt:
		st.TowersBuilt++
		st.MoneySpent += ev.Value
	case EventTowerUpgraded:
		st.Upgrades++
		st.MoneySpent += ev.Value
	case EventWaveCompleted:
		st.WavesCompleted++
		st.HighestWave = max(st.HighestWave, ev.Value)
	case EventLivesChanged:
		if ev.Delta < 0 {
			st.LivesLost -= ev.Delta
		}
	}
}
