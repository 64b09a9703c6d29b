package snake

import (
	"fmt"
	"strings"
)

// Direction is the heading of the snake's head.
// The zero value is DirRight, the heading every game starts with.
type Direction int32

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// opposites maps each direction to its 180° reversal.
var opposites = [...]Direction{
	DirRight: DirLeft,
	DirDown:  DirUp,
	DirLeft:  DirRight,
	DirUp:    DirDown,
}

// deltas holds the (column, row) step for each direction. Rows grow downwards.
var deltas = [...][2]int{
	DirRight: {1, 0},
	DirDown:  {0, 1},
	DirLeft:  {-1, 0},
	DirUp:    {0, -1},
}

var directionNames = [...]string{
	DirRight: "right",
	DirDown:  "down",
	DirLeft:  "left",
	DirUp:    "up",
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Opposite returns the reversed heading.
func (d Direction) Opposite() Direction {
	if !d.Valid() {
		return d
	}
	return opposites[d]
}

// IsOpposite reports whether other is the 180° reversal of d.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Valid() && other.Valid() && opposites[d] == other
}

// Delta returns the column and row offset of one step in direction d.
func (d Direction) Delta() (dc, dr int) {
	if !d.Valid() {
		return 0, 0
	}
	return deltas[d][0], deltas[d][1]
}

func (d Direction) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("snake: invalid direction %d", int32(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts "up", "down", "left" or "right" in any case.
// It backs UnmarshalText, which reads the direction field of spectator
// frames back into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("snake: unknown direction %q", s)
}
