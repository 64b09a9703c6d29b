package config

import (
	"math"
	"time"
)

// SpeedCurve describes how the tick interval shrinks as apples are eaten.
type SpeedCurve struct {
	start     time.Duration
	decrement time.Duration
	min       time.Duration
	reward    int
}

// NewSpeedCurve creates a curve from the gameplay settings.
func NewSpeedCurve(g GameplayConfig) SpeedCurve {
	return SpeedCurve{
		start:     ms(g.StartIntervalMS),
		decrement: ms(g.IntervalDecrementMS),
		min:       ms(g.MinIntervalMS),
		reward:    g.AppleReward,
	}
}

// IntervalAfter returns the tick interval once n apples have been eaten.
func (c SpeedCurve) IntervalAfter(apples int) time.Duration {
	if apples <= 0 {
		return c.start
	}
	return max(c.start-time.Duration(apples)*c.decrement, c.min)
}

// ApplesToMax returns how many apples it takes to reach the speed cap,
// or -1 when the game never speeds up.
func (c SpeedCurve) ApplesToMax() int {
	if c.decrement <= 0 || c.start <= c.min {
		return -1
	}
	return int(math.Ceil(float64(c.start-c.min) / float64(c.decrement)))
}

// Level returns the current difficulty level (0.0 to 1.0) for a tick
// interval: 0 at the starting speed, 1 at the cap.
func (c SpeedCurve) Level(interval time.Duration) float64 {
	span := c.start - c.min
	if span <= 0 {
		return 0
	}
	return clampF(float64(c.start-interval)/float64(span), 0.0, 1.0)
}

// Apples returns how many apples a score represents.
func (c SpeedCurve) Apples(score int) int {
	if c.reward <= 0 {
		return 0
	}
	return score / c.reward
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
