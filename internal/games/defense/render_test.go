package defense

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
)

func render(g *Game, w, h int) *core.Screen {
	s := core.NewScreen(w, h)
	g.Render(s)
	return s
}

func TestRenderHUDAndBoard(t *testing.T) {
	g := newTestGame(t, New())
	scr := render(g, 80, 24)

	hud := scr.Row(0)
	for _, want := range []string{"TUI DEFENSE", "[Classic]", "Wave 1", "Gold 120", "Lives 10", "BUILD"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	if scr.Get(0, boardY) != '┌' || scr.Get(boardW-1, boardY+boardH-1) != '┘' {
		t.Error("board border not drawn")
	}

	// Tile (0, 2) is the path entry.
	x, y := tileOrigin(0, 2)
	if scr.Get(x, y) != '░' {
		t.Errorf("expected path at tile (0,2), got %q", scr.Get(x, y))
	}
	// Tile (0, 0) is buildable ground.
	x, y = tileOrigin(0, 0)
	if scr.Get(x+1, y) != '·' {
		t.Errorf("expected ground dot at tile (0,0), got %q", scr.Get(x+1, y))
	}
}

func TestRenderCursorPreview(t *testing.T) {
	g := newTestGame(t, New())
	scr := render(g, 80, 24)

	x, y := tileOrigin(10, 6)
	cell := scr.GetCell(x+1, y)
	if cell.Rune != 'A' || cell.Color != core.ColorGreen || !cell.Reverse {
		t.Errorf("cursor preview = %+v, expected highlighted green A", cell)
	}

	// A sniper costs more than the starting gold: red preview.
	g.Step(frame(core.ActionSelect3))
	scr = render(g, 80, 24)
	if cell := scr.GetCell(x+1, y); cell.Rune != 'S' || cell.Color != core.ColorRed {
		t.Errorf("unaffordable preview = %+v", cell)
	}
}

func TestRenderTowerAndRange(t *testing.T) {
	g := newTestGame(t, New())
	g.Step(frame(core.ActionPlace))
	g.Step(frame(core.ActionLeft))

	scr := render(g, 80, 24)
	x, y := tileOrigin(10, 6)
	if got := string([]rune{scr.Get(x, y), scr.Get(x+1, y), scr.Get(x+2, y)}); got != "[A]" {
		t.Errorf("tower tile = %q, expected [A]", got)
	}

	// The free cursor cell previews the archer range: the neighbour tile
	// (8, 6) is 48 units away and inside the 120 radius.
	nx, ny := tileOrigin(8, 6)
	if scr.Get(nx+1, ny) != '∙' {
		t.Errorf("expected range marker at (8,6), got %q", scr.Get(nx+1, ny))
	}
	// (9, 11) is on neither path nor in range.
	fx, fy := tileOrigin(9, 11)
	if scr.Get(fx+1, fy) != '·' {
		t.Errorf("expected plain ground at (9,11), got %q", scr.Get(fx+1, fy))
	}

	panel := scr.String()
	if !strings.Contains(panel, "CELL 9,6") {
		t.Error("panel should show the cursor cell")
	}
}

func TestRenderEnemies(t *testing.T) {
	g := newTestGame(t, New())
	g.Step(frame(core.ActionStartWave))

	s := g.Engine().State()
	if len(s.Enemies) != 1 {
		t.Fatalf("expected one spawned enemy, got %d", len(s.Enemies))
	}
	scr := render(g, 80, 24)
	x, y := worldToScreen(s.Enemies[0].Pos)
	if cell := scr.GetCell(x, y); cell.Rune != 'o' || cell.Color != core.ColorBrightGreen {
		t.Errorf("enemy cell = %+v", cell)
	}
	if !strings.Contains(scr.Row(0), "ATTACK") {
		t.Errorf("HUD should show the attack phase: %q", scr.Row(0))
	}
}

func TestWorldToScreenClamps(t *testing.T) {
	x, y := worldToScreen(sim.Point{X: sim.WorldWidth, Y: -5})
	if x != boardX+sim.Cols*tileW || y != boardY+1 {
		t.Errorf("worldToScreen = %d,%d", x, y)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, New())
	scr := render(g, 40, 10)

	if !strings.Contains(scr.String(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestRenderGameOverBanner(t *testing.T) {
	g := newTestGame(t, New())
	runUntilGameOver(t, g)

	scr := render(g, 80, 24)
	out := scr.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Reached wave 1") {
		t.Errorf("missing game over banner:\n%s", out)
	}
	if !strings.Contains(scr.Row(0), "DEFEAT") {
		t.Errorf("HUD = %q", scr.Row(0))
	}
}
