// Package snake implements the grid snake game: the model that owns the
// snake, apple, score and speed, the snapshot handed to renderers, and a
// terminal drawing routine. It has no dependency on Bubble Tea; the host
// drives it through GridModel's methods and the loop package.
package snake

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kamstrup/intmap"
)

// Options holds the gameplay tunables of a GridModel.
type Options struct {
	StartInterval     time.Duration // Tick interval of a fresh game
	IntervalDecrement time.Duration // Speed-up applied per apple
	MinInterval       time.Duration // Fastest allowed tick interval
	AppleReward       int           // Score added per apple
	SpawnAttempts     int           // Random probes before accepting an occupied cell
	InitialLength     int           // Segments of a fresh snake
	CellWidth         int           // Reported in snapshots for renderers
}

// DefaultOptions returns the classic tuning: 150ms start, 3ms faster per
// apple down to 50ms, 10 points per apple.
func DefaultOptions() Options {
	return Options{
		StartInterval:     150 * time.Millisecond,
		IntervalDecrement: 3 * time.Millisecond,
		MinInterval:       50 * time.Millisecond,
		AppleReward:       10,
		SpawnAttempts:     100,
		InitialLength:     3,
		CellWidth:         2,
	}
}

// GridModel owns the complete state of one snake session.
//
// SetPendingDirection may be called from any goroutine at any time and never
// waits for a step in progress. Every other mutation happens under mu and
// observers are notified after mu is released.
type GridModel struct {
	opts Options

	// Cross-goroutine direction handoff
	pending   atomic.Int32
	committed atomic.Int32

	mu        sync.RWMutex
	rng       *rand.Rand
	observers Observers
	cols      int
	rows      int
	snake     []Position                  // Head at index 0
	occupied  *intmap.Map[int, struct{}] // Mirror of snake keyed by cell index
	apple     Position
	score     int
	interval  time.Duration
	state     State
	tick      uint64
}

// NewGridModel creates a model with no grid. Nothing moves until Initialize
// receives real dimensions. A nil rng is replaced by a clock-seeded one.
func NewGridModel(opts Options, rng *rand.Rand) *GridModel {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.InitialLength < 1 {
		opts.InitialLength = 1
	}
	if opts.SpawnAttempts < 1 {
		opts.SpawnAttempts = 1
	}
	return &GridModel{
		opts: opts,
		rng:  rng,
	}
}

// Subscribe registers an observer for score and game-over notifications.
func (m *GridModel) Subscribe(o Observer) {
	if o == nil {
		return
	}
	m.mu.Lock()
	m.observers = append(m.observers, o)
	m.mu.Unlock()
}

// Initialize sets up a fresh game on a cols*rows grid.
// Non-positive dimensions are ignored so the host can simply retry once the
// viewport has a real size.
func (m *GridModel) Initialize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	m.mu.Lock()
	m.cols, m.rows = cols, rows
	ev := m.resetLocked()
	obs := m.observers
	m.mu.Unlock()

	ev.deliver(obs)
}

// Reset starts a new game on the current grid. It is a no-op before the
// first successful Initialize.
func (m *GridModel) Reset() {
	m.mu.Lock()
	if m.cols <= 0 || m.rows <= 0 {
		m.mu.Unlock()
		return
	}
	ev := m.resetLocked()
	obs := m.observers
	m.mu.Unlock()

	ev.deliver(obs)
}

// resetLocked restores the starting snake, apple, score and speed.
func (m *GridModel) resetLocked() pending {
	head := Position{Col: m.cols / 2, Row: m.rows / 2}

	m.snake = m.startBody(head, m.opts.InitialLength)
	m.occupied = intmap.New[int, struct{}](len(m.snake) + 8)
	for _, p := range m.snake {
		m.occupied.Put(m.key(p), struct{}{})
	}

	m.pending.Store(int32(DirRight))
	m.committed.Store(int32(DirRight))
	m.score = 0
	m.tick = 0
	m.interval = m.opts.StartInterval
	m.state, _ = m.state.On(TriggerReset)
	m.spawnAppleLocked()

	return pending{scoreChanged: true, score: 0}
}

// startBody lays a fresh snake out to the left of the head. When a row runs
// out the body turns up one row and runs back the other way, so every
// segment stays next to the one before it. The length is capped by the
// cells that path can reach before meeting the head's row again.
func (m *GridModel) startBody(head Position, length int) []Position {
	length = min(length, head.Col+1+(m.rows-1)*m.cols)

	body := make([]Position, 0, length+8)
	p, heading := head, DirLeft
	for len(body) < length {
		body = append(body, p)
		next := p.Move(heading)
		if !next.In(m.cols, m.rows) {
			next = p.Move(DirUp).Wrap(m.cols, m.rows)
			heading = heading.Opposite()
		}
		p = next
	}
	return body
}

// SetPendingDirection requests a turn for the next tick. A request to
// reverse onto the committed heading is ignored, as is any invalid value.
func (m *GridModel) SetPendingDirection(d Direction) {
	if !d.Valid() {
		return
	}
	if d.IsOpposite(Direction(m.committed.Load())) {
		return
	}
	m.pending.Store(int32(d))
}

// Step advances the game by one tick. It does nothing unless the model has
// a grid and is running.
func (m *GridModel) Step() {
	m.mu.Lock()
	ev := m.stepLocked()
	obs := m.observers
	m.mu.Unlock()

	ev.deliver(obs)
}

func (m *GridModel) stepLocked() pending {
	if m.cols <= 0 || m.rows <= 0 || m.state != StateRunning || len(m.snake) == 0 {
		return pending{}
	}

	// The pending turn is checked again: the committed heading may have
	// moved on since the request was accepted.
	dir := Direction(m.committed.Load())
	if next := Direction(m.pending.Load()); !next.IsOpposite(dir) {
		dir = next
		m.committed.Store(int32(dir))
	}

	newHead := m.snake[0].Move(dir).Wrap(m.cols, m.rows)

	if m.occupied.Has(m.key(newHead)) {
		m.state, _ = m.state.On(TriggerCollide)
		return pending{gameOver: true, score: m.score}
	}

	m.tick++
	m.snake = append(m.snake, Position{})
	copy(m.snake[1:], m.snake)
	m.snake[0] = newHead
	m.occupied.Put(m.key(newHead), struct{}{})

	if newHead == m.apple {
		m.score += m.opts.AppleReward
		m.interval = max(m.interval-m.opts.IntervalDecrement, m.opts.MinInterval)
		m.spawnAppleLocked()
		return pending{scoreChanged: true, score: m.score}
	}

	tail := m.snake[len(m.snake)-1]
	m.snake = m.snake[:len(m.snake)-1]
	m.occupied.Del(m.key(tail))
	return pending{}
}

// SpawnApple moves the apple to a new random cell.
func (m *GridModel) SpawnApple() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spawnAppleLocked()
}

// spawnAppleLocked probes random cells until one is free. After
// SpawnAttempts misses the last probe is used even though the snake covers
// it, which keeps a nearly full grid from spinning forever.
func (m *GridModel) spawnAppleLocked() {
	if m.cols <= 0 || m.rows <= 0 {
		return
	}
	var p Position
	for range m.opts.SpawnAttempts {
		p = Position{Col: m.rng.Intn(m.cols), Row: m.rng.Intn(m.rows)}
		if !m.occupied.Has(m.key(p)) {
			break
		}
	}
	m.apple = p
}

// Pause stops Step from advancing. Pausing twice is the same as once.
func (m *GridModel) Pause() {
	m.mu.Lock()
	m.state, _ = m.state.On(TriggerPause)
	m.mu.Unlock()
}

// Resume lets a paused game run again. It cannot revive a finished game;
// use Reset for that.
func (m *GridModel) Resume() {
	m.mu.Lock()
	m.state, _ = m.state.On(TriggerResume)
	m.mu.Unlock()
}

// TogglePause flips between running and paused and returns the new state.
func (m *GridModel) TogglePause() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StatePaused {
		m.state, _ = m.state.On(TriggerResume)
	} else {
		m.state, _ = m.state.On(TriggerPause)
	}
	return m.state
}

// State returns the current lifecycle phase.
func (m *GridModel) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Paused reports whether the game is paused.
func (m *GridModel) Paused() bool {
	return m.State() == StatePaused
}

// Initialized reports whether the model has a usable grid.
func (m *GridModel) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cols > 0 && m.rows > 0
}

// Score returns the current score.
func (m *GridModel) Score() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.score
}

// TickInterval returns the current time between ticks. It shrinks as the
// snake eats.
func (m *GridModel) TickInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.interval
}

// Direction returns the committed heading.
func (m *GridModel) Direction() Direction {
	return Direction(m.committed.Load())
}

// Snapshot returns a copy of everything a renderer needs.
func (m *GridModel) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	body := make([]Position, len(m.snake))
	copy(body, m.snake)

	return Snapshot{
		Snake:        body,
		Apple:        m.apple,
		Direction:    Direction(m.committed.Load()),
		Cols:         m.cols,
		Rows:         m.rows,
		CellWidth:    m.opts.CellWidth,
		Score:        m.score,
		TickInterval: m.interval,
		State:        m.state,
		Tick:         m.tick,
	}
}

// key maps a position to its row-major cell index.
func (m *GridModel) key(p Position) int {
	return p.Row*m.cols + p.Col
}
