package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// HUDHeight is the number of rows Draw reserves above the playfield.
const HUDHeight = 2

// headGlyphs orients the head by the committed direction.
var headGlyphs = [...]rune{
	DirRight: '>',
	DirDown:  'v',
	DirLeft:  '<',
	DirUp:    '^',
}

const (
	bodyGlyph  = '█'
	appleGlyph = '@'
)

// Draw renders s into dst: a HUD line, a bordered playfield centered below
// it and an overlay for paused, finished or unusable sessions.
func Draw(dst *core.Screen, s Snapshot) {
	dst.Clear()
	drawHUD(dst, s)

	if !s.Ready() {
		drawOverlay(dst, "Waiting for the terminal", "Resize to start")
		return
	}

	field, ok := playfield(dst, s)
	if !ok {
		drawOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(field, core.ColorGray)
	inner := field.Inset(1)

	drawCell(dst, inner, s.Apple, s.CellWidth, appleGlyph, core.ColorBrightRed)
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(dst, inner, s.Snake[0], s.CellWidth, headGlyph(s.Direction), core.ColorBrightYellow)
			continue
		}
		drawCell(dst, inner, s.Snake[i], s.CellWidth, bodyGlyph, core.ColorBrightGreen)
	}

	switch s.State {
	case StatePaused:
		drawOverlay(dst, "Paused", "Press P to continue")
	case StateGameOver:
		drawOverlay(dst, fmt.Sprintf("Game Over - Score: %d", s.Score), "Press R to play again")
	}
}

// playfield returns the bordered area for the grid, or false when the
// screen cannot hold it.
func playfield(dst *core.Screen, s Snapshot) (core.Rect, bool) {
	cellW := max(1, s.CellWidth)
	w := s.Cols*cellW + 2
	h := s.Rows + 2
	if w > dst.Width() || HUDHeight+h > dst.Height() {
		return core.Rect{}, false
	}
	return core.NewRect((dst.Width()-w)/2, HUDHeight, w, h), true
}

func headGlyph(d Direction) rune {
	if !d.Valid() {
		return 'O'
	}
	return headGlyphs[d]
}

// drawCell paints one grid cell, which is cellW terminal columns wide.
func drawCell(dst *core.Screen, inner core.Rect, p Position, cellW int, r rune, c core.Color) {
	cellW = max(1, cellW)
	x := inner.X + p.Col*cellW
	for i := range cellW {
		dst.SetColored(x+i, inner.Y+p.Row, r, c)
	}
}

func drawHUD(dst *core.Screen, s Snapshot) {
	hud := fmt.Sprintf(" Snake | Score: %d  Length: %d  Speed: %dms",
		s.Score, len(s.Snake), s.TickInterval.Milliseconds())
	dst.DrawText(0, 0, hud, core.ColorWhite)
	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// drawOverlay draws a centered two-line message box.
func drawOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(width, 5)

	dst.Fill(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}
