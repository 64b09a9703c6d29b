// Package config provides YAML-based configuration loading for the snake
// game: gameplay tuning, grid layout, loop timing, logging and the network
// surfaces.
package config

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SnakeConfig contains all configuration for a snake session.
type SnakeConfig struct {
	Gameplay GameplayConfig `yaml:"gameplay"`
	Grid     GridConfig     `yaml:"grid"`
	Loop     LoopConfig     `yaml:"loop"`
	Log      LogConfig      `yaml:"log"`
	Spectate SpectateConfig `yaml:"spectate"`
	SSH      SSHConfig      `yaml:"ssh"`
}

// GameplayConfig defines speed and scoring.
type GameplayConfig struct {
	StartIntervalMS     int `yaml:"start_interval_ms"`
	IntervalDecrementMS int `yaml:"interval_decrement_ms"` // Speed-up per apple
	MinIntervalMS       int `yaml:"min_interval_ms"`
	AppleReward         int `yaml:"apple_reward"`
	SpawnAttempts       int `yaml:"spawn_attempts"` // Random probes before the occupied fallback
	InitialLength       int `yaml:"initial_length"`
}

// GridConfig defines how terminal cells map to grid cells.
type GridConfig struct {
	CellWidth  int `yaml:"cell_width"`  // Terminal columns per grid cell
	SwipeCells int `yaml:"swipe_cells"` // A drag longer than this many cells is a swipe
}

// LoopConfig defines the frame timing of the game loop.
type LoopConfig struct {
	FrameMS int `yaml:"frame_ms"`
	IdleMS  int `yaml:"idle_ms"` // Sleep while the terminal is unusable
}

// LogConfig defines the rotating log file.
type LogConfig struct {
	File       string `yaml:"file"` // Empty disables the file
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// SpectateConfig defines the WebSocket spectator feed.
type SpectateConfig struct {
	Addr           string `yaml:"addr"` // Empty disables the feed
	SendBuffer     int    `yaml:"send_buffer"`
	WriteTimeoutMS int    `yaml:"write_timeout_ms"`
	MaxClients     int    `yaml:"max_clients"`
}

// SSHConfig defines the SSH server started by "snake serve".
type SSHConfig struct {
	Addr               string `yaml:"addr"`
	HostKeyPath        string `yaml:"host_key_path"` // Empty means ~/.snake/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// SnakeOptions converts the gameplay and grid sections into model options.
func (c SnakeConfig) SnakeOptions() snake.Options {
	return snake.Options{
		StartInterval:     ms(c.Gameplay.StartIntervalMS),
		IntervalDecrement: ms(c.Gameplay.IntervalDecrementMS),
		MinInterval:       ms(c.Gameplay.MinIntervalMS),
		AppleReward:       c.Gameplay.AppleReward,
		SpawnAttempts:     c.Gameplay.SpawnAttempts,
		InitialLength:     c.Gameplay.InitialLength,
		CellWidth:         c.Grid.CellWidth,
	}
}

// Runtime builds the session description for a screen of the given size.
func (c SnakeConfig) Runtime(screenW, screenH int, seed int64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ScreenW, rc.ScreenH = screenW, screenH
	rc.CellWidth = c.Grid.CellWidth
	rc.HUDHeight = snake.HUDHeight
	rc.Seed = seed
	rc.FrameInterval = ms(c.Loop.FrameMS)
	rc.IdleInterval = ms(c.Loop.IdleMS)
	return rc
}

// SpectateWriteTimeout returns the per-message write deadline.
func (c SnakeConfig) SpectateWriteTimeout() time.Duration {
	return ms(c.Spectate.WriteTimeoutMS)
}

// SSHIdleTimeout returns how long an idle SSH session may stay connected.
func (c SnakeConfig) SSHIdleTimeout() time.Duration {
	return time.Duration(c.SSH.IdleTimeoutMinutes) * time.Minute
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
