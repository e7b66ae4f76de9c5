package defense

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
)

// Journal logs simulation events. Money and lives changes go out at debug
// level, everything else at info.
type Journal struct {
	logger *log.Logger
}

// NewJournal returns a journal that tags every entry with the mode.
func NewJournal(l *log.Logger, mode string) *Journal {
	return &Journal{logger: l.With("mode", mode)}
}

// Listen is a sim.Listener.
func (j *Journal) Listen(ev sim.Event) {
	switch ev.Kind {
	case sim.EventMoneyChanged:
		j.logger.Debug("money changed", "tick", ev.Tick, "money", ev.Value, "delta", ev.Delta)
	case sim.EventLivesChanged:
		j.logger.Debug("lives changed", "tick", ev.Tick, "lives", ev.Value, "delta", ev.Delta)
	case sim.EventEnemyKilled:
		j.logger.Debug("enemy killed", "tick", ev.Tick, "reward", ev.Value)
	case sim.EventWaveStarted:
		j.logger.Info("wave started", "tick", ev.Tick, "wave", ev.Value,
			"enemies", sim.SpawnCount(ev.Value), "health_buff", sim.HealthBuff(ev.Value))
	case sim.EventWaveCompleted:
		j.logger.Info("wave completed", "tick", ev.Tick, "wave", ev.Value, "reward", ev.Delta)
	case sim.EventTowerBuilt:
		j.logger.Info("tower built", "tick", ev.Tick, "cost", ev.Value)
	case sim.EventTowerUpgraded:
		j.logger.Info("tower upgraded", "tick", ev.Tick, "cost", ev.Value)
	case sim.EventGameOver:
		j.logger.Info("game over", "tick", ev.Tick, "wave", ev.Value)
	case sim.EventGameReset:
		j.logger.Info("game reset")
	case sim.EventCommandRejected:
		j.logger.Debug("command rejected", "tick", ev.Tick, "err", ev.Err)
	}
}

// Achievement records an unlocked award.
func (j *Journal) Achievement(a sim.Achievement) {
	j.logger.Info("achievement unlocked", "id", a.ID, "name", a.Name, "threshold", a.Threshold)
}
