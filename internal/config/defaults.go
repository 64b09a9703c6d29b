package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultSnakeYAML))
	copy(out, defaultSnakeYAML)
	return out
}

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Gameplay: GameplayConfig{
			StartIntervalMS:     150,
			IntervalDecrementMS: 3,
			MinIntervalMS:       50,
			AppleReward:         10,
			SpawnAttempts:       100,
			InitialLength:       3,
		},
		Grid: GridConfig{
			CellWidth:  2,
			SwipeCells: 3,
		},
		Loop: LoopConfig{
			FrameMS: 16,
			IdleMS:  16,
		},
		Log: LogConfig{
			File:       "~/.snake/snake.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Spectate: SpectateConfig{
			Addr:           "",
			SendBuffer:     8,
			WriteTimeoutMS: 2000,
			MaxClients:     32,
		},
		SSH: SSHConfig{
			Addr:               ":23234",
			HostKeyPath:        "",
			IdleTimeoutMinutes: 30,
		},
	}
}
