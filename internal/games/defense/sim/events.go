package sim

// EventKind identifies a discrete state change reported to observers.
type EventKind int

const (
	EventMoneyChanged EventKind = iota
	EventLivesChanged
	EventWaveStarted
	EventWaveCompleted
	EventEnemyKilled
	EventTowerBuilt
	EventTowerUpgraded
	EventGameOver
	EventGameReset
	EventCommandRejected
)

// String returns a stable name for logs.
func (k EventKind) String() string {
	switch k {
	case EventMoneyChanged:
		return "money_changed"
	case EventLivesChanged:
		return "lives_changed"
	case EventWaveStarted:
		return "wave_started"
	case EventWaveCompleted:
		return "wave_completed"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventTowerBuilt:
		return "tower_built"
	case EventTowerUpgraded:
		return "tower_upgraded"
	case EventGameOver:
		return "game_over"
	case EventGameReset:
		return "game_reset"
	case EventCommandRejected:
		return "command_rejected"
	default:
		return "unknown"
	}
}

// Event is one notification.
//
// Value depends on the kind:
//   - MoneyChanged, LivesChanged: the new total (Delta holds the change)
//   - WaveStarted, WaveCompleted: the wave number (Delta holds the reward on completion)
//   - EnemyKilled: the reward
//   - TowerBuilt, TowerUpgraded: the cost
//   - GameOver: the wave reached
type Event struct {
	Kind  EventKind
	Tick  uint64
	Value int
	Delta int
	Err   error // set on CommandRejected
}

// Listener receives events. Listeners run on the tick goroutine and must
// not block.
type Listener func(Event)

// DrainEvents returns the events queued since the last drain and clears
// the queue.
func (s *State) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}

func (s *State) emit(kind EventKind, value, delta int) {
	s.events = append(s.events, Event{
		Kind:  kind,
		Tick:  s.Tick,
		Value: value,
		Delta: delta,
	})
}

func (s *State) reject(err error) {
	s.events = append(s.events, Event{
		Kind: EventCommandRejected,
		Tick: s.Tick,
		Err:  err,
	})
}
