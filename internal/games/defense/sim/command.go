package sim

// CommandKind identifies an external command.
type CommandKind int

const (
	CmdReset CommandKind = iota
	CmdPlaceTower
	CmdUpgradeTower
	CmdStartWave
)

// String returns a stable name for logs.
func (k CommandKind) String() string {
	switch k {
	case CmdReset:
		return "reset"
	case CmdPlaceTower:
		return "place_tower"
	case CmdUpgradeTower:
		return "upgrade_tower"
	case CmdStartWave:
		return "start_wave"
	default:
		return "unknown"
	}
}

// Command is a request from a front end. It is applied between ticks.
type Command struct {
	Kind     CommandKind
	Tower    TowerKind
	Col, Row int
	Modifier ModifierKind

	// Reply, when set, receives exactly one Result. It should be buffered;
	// the engine never blocks on it.
	Reply chan<- Result
}

// Result reports the outcome of a command. Err is nil when it was applied.
type Result struct {
	Command Command
	Err     error
}

// Reset returns a command that starts a fresh run.
func Reset() Command {
	return Command{Kind: CmdReset}
}

// PlaceTower returns a command that builds a tower of kind on (col, row).
func PlaceTower(kind TowerKind, col, row int) Command {
	return Command{Kind: CmdPlaceTower, Tower: kind, Col: col, Row: row}
}

// UpgradeTower returns a command that upgrades the tower on (col, row).
func UpgradeTower(col, row int, mod ModifierKind) Command {
	return Command{Kind: CmdUpgradeTower, Col: col, Row: row, Modifier: mod}
}

// StartWave returns a command that starts the next wave.
func StartWave() Command {
	return Command{Kind: CmdStartWave}
}

// WithReply attaches a reply channel.
func (c Command) WithReply(ch chan<- Result) Command {
	c.Reply = ch
	return c
}

// Apply executes a command directly against the state and returns the
// rejection, if any.
func (s *State) Apply(c Command) error {
	switch c.Kind {
	case CmdReset:
		s.Reset()
		return nil
	case CmdPlaceTower:
		_, err := s.PlaceTower(c.Tower, c.Col, c.Row)
		return err
	case CmdUpgradeTower:
		_, err := s.UpgradeTower(c.Col, c.Row, c.Modifier)
		return err
	case CmdStartWave:
		return s.StartWave()
	default:
		return ErrUnknownCommand
	}
}
