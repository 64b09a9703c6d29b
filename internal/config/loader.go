package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
//
// Every file is decoded over DefaultSnakeConfig, so a partial file only
// overrides the keys it names.
func LoadSnake(customPath string) (SnakeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandPath(customPath))
		if err != nil {
			return DefaultSnakeConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseSnake(data)
		if err != nil {
			return DefaultSnakeConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSnake(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "snake.yaml")); err == nil {
		if cfg, err := parseSnake(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSnake(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSnake decodes data on top of the hardcoded defaults and validates
// the result.
func parseSnake(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// ExpandPath replaces a leading "~" with the user's home directory.
// The path is returned unchanged when home cannot be determined.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Validate reports every setting that would make the game unplayable.
func (c SnakeConfig) Validate() error {
	var errs []error
	g := c.Gameplay

	if g.StartIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.start_interval_ms must be positive, got %d", g.StartIntervalMS))
	}
	if g.MinIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.min_interval_ms must be positive, got %d", g.MinIntervalMS))
	}
	if g.MinIntervalMS > g.StartIntervalMS {
		errs = append(errs, fmt.Errorf("gameplay.min_interval_ms (%d) exceeds start_interval_ms (%d)", g.MinIntervalMS, g.StartIntervalMS))
	}
	if g.IntervalDecrementMS <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.interval_decrement_ms must be positive, got %d", g.IntervalDecrementMS))
	}
	if g.AppleReward < 0 {
		errs = append(errs, fmt.Errorf("gameplay.apple_reward must not be negative, got %d", g.AppleReward))
	}
	if g.SpawnAttempts < 1 {
		errs = append(errs, fmt.Errorf("gameplay.spawn_attempts must be at least 1, got %d", g.SpawnAttempts))
	}
	if g.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("gameplay.initial_length must be at least 1, got %d", g.InitialLength))
	}
	if c.Grid.CellWidth < 1 {
		errs = append(errs, fmt.Errorf("grid.cell_width must be at least 1, got %d", c.Grid.CellWidth))
	}
	if c.Grid.SwipeCells < 1 {
		errs = append(errs, fmt.Errorf("grid.swipe_cells must be at least 1, got %d", c.Grid.SwipeCells))
	}
	if c.Loop.FrameMS <= 0 || c.Loop.IdleMS <= 0 {
		errs = append(errs, fmt.Errorf("loop.frame_ms and loop.idle_ms must be positive, got %d and %d", c.Loop.FrameMS, c.Loop.IdleMS))
	}
	if c.Spectate.SendBuffer < 1 {
		errs = append(errs, fmt.Errorf("spectate.send_buffer must be at least 1, got %d", c.Spectate.SendBuffer))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid snake config: %w", errors.Join(errs...))
	}
	return nil
}
