package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Position is a cell on the grid. Col grows to the right, Row grows down.
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Move returns the neighbouring cell in direction d. The result may lie
// outside the grid; callers fold it back with Wrap.
func (p Position) Move(d Direction) Position {
	dc, dr := d.Delta()
	return Position{Col: p.Col + dc, Row: p.Row + dr}
}

// Wrap folds p into a cols*rows grid so that leaving one edge re-enters
// from the opposite one.
func (p Position) Wrap(cols, rows int) Position {
	return Position{Col: core.Wrap(p.Col, cols), Row: core.Wrap(p.Row, rows)}
}

// In reports whether p lies inside a cols*rows grid.
func (p Position) In(cols, rows int) bool {
	return p.Col >= 0 && p.Col < cols && p.Row >= 0 && p.Row < rows
}
