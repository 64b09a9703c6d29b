package tui

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/loop"
)

// FrameSink receives every snapshot the loop renders. Implementations must
// not block; they run on the loop goroutine.
type FrameSink interface {
	Publish(s snake.Snapshot)
}

// eventBuffer bounds the notifications queued for the UI.
const eventBuffer = 32

// Session owns one game and the loop driving it. It is the loop's render
// target and the game's observer, and forwards both to Bubble Tea through
// channels so the UI never shares state with the loop goroutine.
type Session struct {
	game   *snake.GridModel
	loop   *loop.Loop
	logger *log.Logger
	sinks  []FrameSink

	ready  atomic.Bool
	frames chan snake.Snapshot // Capacity 1, newest frame wins
	events chan uiEvent
	done   chan struct{}

	stopOnce sync.Once
}

// uiEvent is a game notification waiting for the UI.
type uiEvent struct {
	gameOver bool
	score    int
}

// NewSession creates a game from cfg. A zero seed picks a random one.
// Sinks that also implement snake.Observer are subscribed to the game.
func NewSession(cfg config.SnakeConfig, seed int64, logger *log.Logger, sinks ...FrameSink) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	s := &Session{
		game:   snake.NewGridModel(cfg.SnakeOptions(), rng),
		logger: logger,
		sinks:  sinks,
		frames: make(chan snake.Snapshot, 1),
		events: make(chan uiEvent, eventBuffer),
		done:   make(chan struct{}),
	}

	s.game.Subscribe(s)
	for _, sink := range sinks {
		if o, ok := sink.(snake.Observer); ok {
			s.game.Subscribe(o)
		}
	}

	rc := cfg.Runtime(0, 0, seed)
	s.loop = loop.New(s.game, s,
		loop.WithFrameInterval(rc.FrameInterval),
		loop.WithIdleInterval(rc.IdleInterval),
		loop.WithLogger(logger),
	)
	return s
}

// Game returns the model driven by this session.
func (s *Session) Game() *snake.GridModel {
	return s.game
}

// Start launches the loop. It is safe to call more than once.
func (s *Session) Start() {
	select {
	case <-s.done:
		return
	default:
	}
	s.loop.Start()
}

// Stop halts the loop and releases anything waiting on the session.
// Only the first call has an effect.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.loop.Stop()
		close(s.done)
		s.logger.Debug("session stopped", "ticks", s.loop.Ticks(), "frames", s.loop.Frames())
	})
}

// SetReady tells the loop whether the terminal can show the grid.
func (s *Session) SetReady(ready bool) {
	if s.ready.Swap(ready) != ready {
		s.logger.Debug("render target readiness changed", "ready", ready)
	}
}

// Ready implements loop.Target.
func (s *Session) Ready() bool {
	return s.ready.Load()
}

// Render implements loop.Target. It never blocks: an unread frame is
// replaced by the newer one.
func (s *Session) Render() {
	snap := s.game.Snapshot()
	for _, sink := range s.sinks {
		sink.Publish(snap)
	}

	select {
	case s.frames <- snap:
		return
	default:
	}
	select {
	case <-s.frames:
	default:
	}
	select {
	case s.frames <- snap:
	default:
	}
}

// ScoreChanged implements snake.Observer.
func (s *Session) ScoreChanged(score int) {
	s.queue(uiEvent{score: score})
}

// GameOver implements snake.Observer.
func (s *Session) GameOver(finalScore int) {
	s.logger.Info("game over", "score", finalScore)
	s.queue(uiEvent{gameOver: true, score: finalScore})
}

func (s *Session) queue(ev uiEvent) {
	select {
	case s.events <- ev:
	default:
		s.logger.Debug("ui event dropped", "game_over", ev.gameOver, "score", ev.score)
	}
}
