package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SwipeDetector turns a mouse drag into a steering request.
// Distances are measured in grid cells, so a horizontal drag has to cover
// cellWidth terminal columns per cell.
type SwipeDetector struct {
	threshold int // Drag must be longer than this many cells
	cellWidth int

	active         bool
	startX, startY int
}

// NewSwipeDetector creates a detector. Values below 1 are raised to 1.
func NewSwipeDetector(threshold, cellWidth int) *SwipeDetector {
	return &SwipeDetector{
		threshold: max(1, threshold),
		cellWidth: max(1, cellWidth),
	}
}

// Press records where a drag starts.
func (d *SwipeDetector) Press(x, y int) {
	d.active = true
	d.startX, d.startY = x, y
}

// Release ends a drag and returns the swiped heading, if any. The dominant
// axis wins; short drags are ignored.
func (d *SwipeDetector) Release(x, y int) (snake.Direction, bool) {
	if !d.active {
		return 0, false
	}
	d.active = false

	dx := x - d.startX
	dy := y - d.startY
	// Compare in grid cells: cellWidth columns make one cell
	adx := float64(core.Abs(dx)) / float64(d.cellWidth)
	ady := float64(core.Abs(dy))
	limit := float64(d.threshold)

	if adx > ady {
		if adx <= limit {
			return 0, false
		}
		if dx > 0 {
			return snake.DirRight, true
		}
		return snake.DirLeft, true
	}

	if ady <= limit {
		return 0, false
	}
	if dy > 0 {
		return snake.DirDown, true
	}
	return snake.DirUp, true
}

// Handle feeds a Bubble Tea mouse event through the detector. Only the
// left button starts a drag; some terminals report releases without a
// button, so any release ends one.
func (d *SwipeDetector) Handle(msg tea.MouseMsg) (snake.Direction, bool) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			d.Press(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		return d.Release(msg.X, msg.Y)
	}
	return 0, false
}
