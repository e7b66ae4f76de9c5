package defense

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
)

// Board layout: each grid tile is tileW characters wide and one row high.
const (
	tileW  = 3
	boardX = 0
	boardY = 1
	boardW = sim.Cols*tileW + 2
	boardH = sim.Rows + 2
	panelX = boardW + 1
	panelW = 17

	// MinWidth and MinHeight are the smallest screen the game renders in.
	MinWidth  = boardW + 1 + panelW
	MinHeight = boardY + boardH + 2
)

// world units per character on each axis
const (
	unitsPerCol = sim.TileSize / tileW
	unitsPerRow = sim.TileSize
)

var towerGlyphs = map[sim.TowerKind]rune{
	sim.TowerArcher: 'A',
	sim.TowerCannon: 'C',
	sim.TowerSniper: 'S',
	sim.TowerLaser:  'L',
}

var towerColors = map[sim.TowerKind]core.Color{
	sim.TowerArcher: core.ColorGreen,
	sim.TowerCannon: core.ColorOrange,
	sim.TowerSniper: core.ColorMagenta,
	sim.TowerLaser:  core.ColorBrightCyan,
}

var enemyGlyphs = map[sim.EnemyType]rune{
	sim.EnemyNormal:     'o',
	sim.EnemyFast:       '>',
	sim.EnemyTank:       'O',
	sim.EnemyIce:        '*',
	sim.EnemyBlizzard:   '~',
	sim.EnemyFrostGiant: '@',
}

// Render draws the battlefield, HUD and side panel.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() < MinWidth || dst.Height() < MinHeight {
		g.renderTooSmall(dst)
		return
	}
	state := g.engine.State()

	g.renderHUD(dst, state)
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)
	g.renderTiles(dst, state)
	g.renderRange(dst, state)
	g.renderTowers(dst, state)
	g.renderEnemies(dst, state)
	g.renderProjectiles(dst, state)
	g.renderCursor(dst, state)
	g.renderPanel(dst, state)
	g.renderFooter(dst, state)

	switch {
	case state.Phase == sim.PhaseGameOver:
		g.renderBanner(dst, []string{
			"GAME OVER",
			fmt.Sprintf("Reached wave %d with %d kills", state.Wave, g.stats.Kills),
			"r: restart   esc: menu",
		}, core.ColorBrightRed)
	case g.paused:
		g.renderBanner(dst, []string{"PAUSED", "p: resume"}, core.ColorYellow)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Terminal too small", core.ColorRed)
	dst.DrawTextCentered(y+1, fmt.Sprintf("need %dx%d, have %dx%d", MinWidth, MinHeight, dst.Width(), dst.Height()), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, s *sim.State) {
	dst.DrawTextColor(0, 0, "TUI DEFENSE", core.ColorBrightCyan)
	dst.DrawTextColor(12, 0, "["+g.title+"]", core.ColorGray)

	x := 24
	x = hudField(dst, x, fmt.Sprintf("Wave %d", s.Wave), core.ColorWhite)
	x = hudField(dst, x, fmt.Sprintf("Gold %d", s.Money), core.ColorYellow)
	livesColor := core.ColorGreen
	if s.Lives <= 3 {
		livesColor = core.ColorRed
	}
	x = hudField(dst, x, fmt.Sprintf("Lives %d", s.Lives), livesColor)
	hudField(dst, x, phaseLabel(s.Phase), phaseColor(s.Phase))
}

func hudField(dst *core.Screen, x int, text string, c core.Color) int {
	dst.DrawTextColor(x, 0, text, c)
	return x + len(text) + 3
}

func phaseLabel(p sim.Phase) string {
	switch p {
	case sim.PhasePrep:
		return "BUILD"
	case sim.PhaseWave:
		return "ATTACK"
	case sim.PhaseGameOver:
		return "DEFEAT"
	default:
		return "MENU"
	}
}

func phaseColor(p sim.Phase) core.Color {
	switch p {
	case sim.PhasePrep:
		return core.ColorCyan
	case sim.PhaseWave:
		return core.ColorYellow
	case sim.PhaseGameOver:
		return core.ColorRed
	default:
		return core.ColorGray
	}
}

// tileOrigin returns the screen position of the left character of a tile.
func tileOrigin(col, row int) (x, y int) {
	return boardX + 1 + col*tileW, boardY + 1 + row
}

// worldToScreen maps a world position onto a board character.
func worldToScreen(p sim.Point) (x, y int) {
	cx := core.Clamp(int(p.X)/unitsPerCol, 0, sim.Cols*tileW-1)
	cy := core.Clamp(int(p.Y)/unitsPerRow, 0, sim.Rows-1)
	return boardX + 1 + cx, boardY + 1 + cy
}

func (g *Game) renderTiles(dst *core.Screen, s *sim.State) {
	for row := range sim.Rows {
		for col := range sim.Cols {
			x, y := tileOrigin(col, row)
			if s.Grid.OnPath(col, row) {
				dst.DrawHLine(x, y, tileW, '░', core.ColorGray)
				continue
			}
			dst.SetColored(x+1, y, '·', core.ColorGray)
		}
	}
}

// renderRange marks free tiles whose centre lies inside the range of the
// tower under the cursor, or of the selected preset when the cell is free.
func (g *Game) renderRange(dst *core.Screen, s *sim.State) {
	center := sim.CellCenter(g.cursorCol, g.cursorRow)
	radius := g.SelectedTower().Range
	if t := s.TowerAt(g.cursorCol, g.cursorRow); t != nil {
		radius = t.Range()
	} else if !s.Grid.CanPlace(g.cursorCol, g.cursorRow) {
		return
	}

	for row := range sim.Rows {
		for col := range sim.Cols {
			if s.Grid.OnPath(col, row) || s.Grid.Occupied(col, row) {
				continue
			}
			if sim.CellCenter(col, row).Dist(center) <= radius {
				x, y := tileOrigin(col, row)
				dst.SetColored(x+1, y, '∙', core.ColorBlue)
			}
		}
	}
}

func (g *Game) renderTowers(dst *core.Screen, s *sim.State) {
	for _, t := range s.Towers {
		x, y := tileOrigin(t.Col, t.Row)
		c := towerColors[t.Kind]
		left, right := '[', ']'
		if t.Upgraded() {
			left, right = '{', '}'
		}
		dst.SetColored(x, y, left, c)
		dst.SetColored(x+1, y, towerGlyphs[t.Kind], c)
		dst.SetColored(x+2, y, right, c)
	}
}

func (g *Game) renderEnemies(dst *core.Screen, s *sim.State) {
	for _, e := range s.Enemies {
		if !e.Targetable() {
			continue
		}
		x, y := worldToScreen(e.Pos)
		glyph, ok := enemyGlyphs[e.Type]
		if !ok {
			glyph = 'o'
		}
		dst.SetColored(x, y, glyph, healthColor(e))
	}
}

func healthColor(e *sim.Enemy) core.Color {
	if e.MaxHealth <= 0 {
		return core.ColorRed
	}
	switch frac := float64(e.Health) / float64(e.MaxHealth); {
	case frac > 0.66:
		return core.ColorBrightGreen
	case frac > 0.33:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightRed
	}
}

func (g *Game) renderProjectiles(dst *core.Screen, s *sim.State) {
	for _, p := range s.Projectiles {
		x, y := worldToScreen(p.Pos)
		dst.SetColored(x, y, '•', core.ColorYellow)
	}
}

// renderCursor highlights the cursor tile and previews the selected tower
// on free cells: green when it can be built, red when gold is short.
func (g *Game) renderCursor(dst *core.Screen, s *sim.State) {
	x, y := tileOrigin(g.cursorCol, g.cursorRow)
	if s.Grid.CanPlace(g.cursorCol, g.cursorRow) && s.Playing() {
		preset := g.SelectedTower()
		c := core.ColorGreen
		if s.Money < preset.Cost {
			c = core.ColorRed
		}
		dst.SetColored(x, y, '(', c)
		dst.SetColored(x+1, y, towerGlyphs[preset.Kind], c)
		dst.SetColored(x+2, y, ')', c)
	}
	for i := range tileW {
		dst.Highlight(x+i, y)
	}
}

func (g *Game) renderPanel(dst *core.Screen, s *sim.State) {
	y := boardY
	dst.DrawTextColor(panelX, y, "TOWERS", core.ColorWhite)
	y++
	for i, p := range g.presets {
		marker := ' '
		if i == g.selected {
			marker = '>'
		}
		c := core.ColorGray
		if s.Money >= p.Cost {
			c = towerColors[p.Kind]
		}
		dst.DrawTextColor(panelX, y, fmt.Sprintf("%c%d %-7s$%d", marker, i+1, p.Name, p.Cost), c)
		y++
	}

	y++
	dst.DrawTextColor(panelX, y, fmt.Sprintf("CELL %d,%d", g.cursorCol, g.cursorRow), core.ColorWhite)
	y++
	switch t := s.TowerAt(g.cursorCol, g.cursorRow); {
	case t != nil:
		preset, _ := sim.Preset(t.Kind)
		dst.DrawTextColor(panelX, y, preset.Name, towerColors[t.Kind])
		dst.DrawTextColor(panelX, y+1, fmt.Sprintf("DMG %d RNG %.0f", t.Damage(), t.Range()), core.ColorDefault)
		dst.DrawTextColor(panelX, y+2, fmt.Sprintf("CD %dms", t.Cooldown()), core.ColorDefault)
		dst.DrawTextColor(panelX, y+3, "MOD "+modifierList(t), core.ColorGray)
	case s.Grid.OnPath(g.cursorCol, g.cursorRow):
		dst.DrawTextColor(panelX, y, "Enemy path", core.ColorGray)
	default:
		dst.DrawTextColor(panelX, y, "Free", core.ColorGray)
	}

	y = boardY + boardH - 3
	dst.DrawTextColor(panelX, y, fmt.Sprintf("ENEMIES %d", len(s.Enemies)), core.ColorWhite)
	dst.DrawTextColor(panelX, y+1, fmt.Sprintf("TO SPAWN %d", s.Waves.Remaining), core.ColorWhite)
	dst.DrawTextColor(panelX, y+2, fmt.Sprintf("KILLS %d", g.stats.Kills), core.ColorWhite)
}

func modifierList(t *sim.Tower) string {
	if !t.Upgraded() {
		return "none"
	}
	names := make([]string, len(t.Modifiers))
	for i, m := range t.Modifiers {
		names[i] = m.Kind.String()
	}
	return strings.Join(names, ",")
}

func (g *Game) renderFooter(dst *core.Screen, s *sim.State) {
	y := boardY + boardH
	if g.message != "" {
		dst.DrawTextColor(0, y, g.message, g.messageColor)
	}
	dst.DrawTextColor(panelX, y, fmt.Sprintf("AWARDS %d/%d",
		len(g.achievements.Unlocked()), len(sim.AllAchievements())), core.ColorBrightYellow)

	if s.Phase == sim.PhasePrep {
		w := s.Wave
		dst.DrawTextColor(0, y+1, fmt.Sprintf("Next: wave %d, %d enemies, +%d hp, reward %d",
			w, sim.SpawnCount(w), sim.HealthBuff(w), sim.CompletionReward(w)), core.ColorGray)
	}
}

func (g *Game) renderBanner(dst *core.Screen, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	width += 4
	height := len(lines) + 2
	x := boardX + (boardW-width)/2
	y := boardY + (boardH-height)/2

	for row := range height {
		dst.DrawHLine(x, y+row, width, ' ', core.ColorDefault)
	}
	dst.DrawBox(core.NewRect(x, y, width, height), c)
	for i, l := range lines {
		dst.DrawTextColor(x+(width-len(l))/2, y+1+i, l, c)
	}
}
