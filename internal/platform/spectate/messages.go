package spectate

import (
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Message types pushed to spectators.
const (
	TypeFrame    = "frame"
	TypeScore    = "score"
	TypeGameOver = "game_over"
)

// Message is the envelope of everything sent over the feed.
type Message struct {
	Type     string `json:"type"`
	Snapshot *Frame `json:"snapshot,omitempty"`
	Score    *int   `json:"score,omitempty"`
}

// Frame is the wire form of a snake.Snapshot.
type Frame struct {
	Snake          []snake.Position `json:"snake"`
	Apple          snake.Position   `json:"apple"`
	Direction      snake.Direction  `json:"direction"`
	Cols           int              `json:"cols"`
	Rows           int              `json:"rows"`
	Score          int              `json:"score"`
	TickIntervalMS int64            `json:"tick_interval_ms"`
	State          snake.State      `json:"state"`
	Tick           uint64           `json:"tick"`
}

// NewFrame converts a snapshot for the wire.
func NewFrame(s snake.Snapshot) *Frame {
	body := s.Snake
	if body == nil {
		body = []snake.Position{}
	}
	return &Frame{
		Snake:          body,
		Apple:          s.Apple,
		Direction:      s.Direction,
		Cols:           s.Cols,
		Rows:           s.Rows,
		Score:          s.Score,
		TickIntervalMS: s.TickInterval.Milliseconds(),
		State:          s.State,
		Tick:           s.Tick,
	}
}
