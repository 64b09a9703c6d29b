package snake

import "fmt"

// State is the lifecycle phase of a game session.
type State int32

const (
	StateRunning State = iota
	StatePaused
	StateGameOver
)

// Trigger is a request that may move the session to another State.
type Trigger int

const (
	TriggerPause Trigger = iota
	TriggerResume
	TriggerCollide
	TriggerReset
)

// transitions lists every legal move. Anything missing is rejected.
var transitions = map[State]map[Trigger]State{
	StateRunning: {
		TriggerPause:   StatePaused,
		TriggerCollide: StateGameOver,
		TriggerReset:   StateRunning,
	},
	StatePaused: {
		TriggerResume: StateRunning,
		TriggerReset:  StateRunning,
	},
	StateGameOver: {
		TriggerReset: StateRunning,
	},
}

// On returns the state reached by applying t to s, and false when the
// transition is not allowed (s is then returned unchanged).
func (s State) On(t Trigger) (State, bool) {
	next, ok := transitions[s][t]
	if !ok {
		return s, false
	}
	return next, true
}

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "running":
		*s = StateRunning
	case "paused":
		*s = StatePaused
	case "game_over":
		*s = StateGameOver
	default:
		return fmt.Errorf("snake: unknown state %q", text)
	}
	return nil
}
