package core

import "time"

// RuntimeConfig describes the session a game is started in.
// The host builds it from the terminal it owns and the loaded config file.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in terminal columns
	ScreenH   int   // Screen height in terminal rows
	CellWidth int   // Terminal columns per grid cell (cells are one row tall)
	HUDHeight int   // Rows reserved above the playfield
	Seed      int64 // RNG seed, 0 means derive from the clock

	FrameInterval time.Duration // Sleep between loop iterations
	IdleInterval  time.Duration // Sleep while the render target is not ready
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		CellWidth:     2,
		HUDHeight:     2,
		FrameInterval: 16 * time.Millisecond,
		IdleInterval:  16 * time.Millisecond,
	}
}

// GridSize returns how many grid cells fit in the screen once the HUD and
// the playfield border are taken out. Either value may be zero or negative
// when the screen is too small; callers treat that as "not ready yet".
func (c RuntimeConfig) GridSize() (cols, rows int) {
	cellW := max(1, c.CellWidth)
	cols = (c.ScreenW - 2) / cellW
	rows = c.ScreenH - c.HUDHeight - 2
	return cols, rows
}
