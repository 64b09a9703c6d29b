package snake

import "time"

// Snapshot is a read-only copy of a GridModel taken at one instant.
// Renderers and remote viewers work from snapshots so they never race the
// game loop.
type Snapshot struct {
	Snake        []Position // Head first
	Apple        Position
	Direction    Direction // Committed heading, used to orient the head
	Cols         int
	Rows         int
	CellWidth    int // Terminal columns per grid cell
	Score        int
	TickInterval time.Duration
	State        State
	Tick         uint64 // Moves made since the last reset
}

// Ready reports whether the snapshot describes an initialized grid.
func (s Snapshot) Ready() bool {
	return s.Cols > 0 && s.Rows > 0 && len(s.Snake) > 0
}

// Head returns the head position, or false for an empty snake.
func (s Snapshot) Head() (Position, bool) {
	if len(s.Snake) == 0 {
		return Position{}, false
	}
	return s.Snake[0], true
}

// Occupies reports whether the snake covers p.
func (s Snapshot) Occupies(p Position) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}
