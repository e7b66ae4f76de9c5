// Package defense adapts the tower-defense simulation to the platform: it
// maps input actions to simulation commands, renders the battlefield into a
// core.Screen and journals simulation events.
package defense

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
	"github.com/vovakirdan/tui-defense/internal/registry"
)

// messageSeconds is how long a status message stays on screen.
const messageSeconds = 2

var (
	// configPath stores the custom config path set via CLI
	configPath string

	logger = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes the event journal of every new game to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game is one tower-defense session in a given mode.
type Game struct {
	mode  string
	title string
	desc  string

	cfg     config.DefenseConfig
	engine  *sim.Engine
	stats        sim.Stats
	achievements *sim.Achievements
	journal      *Journal

	cursorCol, cursorRow int
	selected             int // index into sim.Presets()
	presets              []sim.TowerPreset

	paused       bool
	message      string
	messageColor core.Color
	messageTicks int

	screenW, screenH int
}

// New creates a classic-mode game.
func New() *Game {
	return newGame(config.ModeClassic, "Classic", "120 gold, 10 lives, escalating waves")
}

// NewSandbox creates a sandbox-mode game with effectively unlimited money.
func NewSandbox() *Game {
	return newGame(config.ModeSandbox, "Sandbox", "10,000,000 gold and 100 lives to experiment")
}

func newGame(mode, title, desc string) *Game {
	g := &Game{
		mode:    mode,
		title:   title,
		desc:    desc,
		presets: sim.Presets(),
	}
	g.achievements = sim.NewAchievements(g.onAchievement)
	return g
}

func init() {
	registry.Register(config.ModeClassic, func() registry.Game {
		return New()
	})
	registry.Register(config.ModeSandbox, func() registry.Game {
		return NewSandbox()
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return g.desc
}

// Reset builds a fresh simulation and starts the first run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadDefense(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultDefenseConfig()
	}
	g.cfg = cfg

	mode, _ := cfg.Mode(g.mode)
	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = cfg.Runtime.TickRate
	}

	state := sim.NewState(sim.Options{
		StartingMoney: mode.StartingMoney,
		StartingLives: mode.StartingLives,
		TickRate:      tickRate,
		Seed:          rc.Seed,
		Path:          sim.DefaultPath(),
	})

	g.engine = sim.NewEngine(state, cfg.Runtime.CommandQueue)
	g.journal = NewJournal(logger, g.mode)
	g.engine.Subscribe(g.stats.Listen)
	g.engine.Subscribe(g.journal.Listen)
	g.engine.Subscribe(g.onEvent)
	g.engine.Subscribe(g.achievements.Listen)

	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.cursorCol = sim.Cols / 2
	g.cursorRow = sim.Rows / 2
	g.selected = 0
	g.paused = false
	g.message = ""
	g.messageTicks = 0

	//nolint:errcheck // a fresh queue always has room
	g.engine.Submit(sim.Reset())
	g.engine.Flush()
}

// Engine exposes the underlying simulation engine.
func (g *Game) Engine() *sim.Engine {
	return g.engine
}

// Stats returns the counters of the current run.
func (g *Game) Stats() sim.Stats {
	return g.stats
}

// Achievements returns the awards unlocked since the game was created.
func (g *Game) Achievements() []sim.Achievement {
	return g.achievements.Unlocked()
}

// Cursor returns the grid cell under the cursor.
func (g *Game) Cursor() (col, row int) {
	return g.cursorCol, g.cursorRow
}

// SelectedTower returns the preset that Place builds.
func (g *Game) SelectedTower() sim.TowerPreset {
	return g.presets[g.selected]
}

// Step applies the frame's actions and advances the simulation one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	state := g.engine.State()

	if in.Has(core.ActionRestart) && state.Phase == sim.PhaseGameOver {
		g.submit(sim.Reset())
	}
	if in.Has(core.ActionPause) && state.Playing() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.engine.Step()

	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	return core.StepResult{State: g.State()}
}

// State returns the platform view of the game. Score is the kill count.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.stats.Kills,
		GameOver: g.engine.State().Phase == sim.PhaseGameOver,
		Paused:   g.paused,
	}
}

// Summary describes the current run for the run history.
func (g *Game) Summary() core.RunSummary {
	state := g.engine.State()
	return core.RunSummary{
		Mode:        g.mode,
		WaveReached: state.Wave,
		Kills:       g.stats.Kills,
		MoneyEarned: g.stats.MoneyEarned,
		MoneySpent:  g.stats.MoneySpent,
		TowersBuilt: g.stats.TowersBuilt,
		Ticks:       state.Tick,
	}
}

func (g *Game) submit(c sim.Command) {
	if err := g.engine.Submit(c); err != nil {
		g.setMessage("Too many commands, slow down", core.ColorRed)
	}
}

func (g *Game) setMessage(text string, c core.Color) {
	g.message = text
	g.messageColor = c
	g.messageTicks = messageSeconds * g.engine.State().Options().TickRate
}

// onEvent turns simulation events into status messages.
func (g *Game) onEvent(ev sim.Event) {
	switch ev.Kind {
	case sim.EventCommandRejected:
		g.setMessage(capitalize(strings.TrimPrefix(ev.Err.Error(), "sim: ")), core.ColorRed)
	case sim.EventWaveStarted:
		g.setMessage(fmt.Sprintf("Wave %d incoming", ev.Value), core.ColorYellow)
	case sim.EventWaveCompleted:
		g.setMessage(fmt.Sprintf("Wave %d cleared, +%d gold", ev.Value, ev.Delta), core.ColorGreen)
	case sim.EventGameOver:
		g.setMessage(fmt.Sprintf("The base has fallen on wave %d", ev.Value), core.ColorBrightRed)
	case sim.EventGameReset:
		g.paused = false
		g.setMessage("New run: build towers, then press n", core.ColorCyan)
	}
}

// onAchievement runs after onEvent for the same event, so an unlock
// replaces the wave message.
func (g *Game) onAchievement(a sim.Achievement) {
	g.journal.Achievement(a)
	g.setMessage("Achievement unlocked: "+a.Name, core.ColorBrightYellow)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
