package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

type recordingSink struct {
	frames []snake.Snapshot
	scores []int
}

func (r *recordingSink) Publish(s snake.Snapshot) { r.frames = append(r.frames, s) }
func (r *recordingSink) ScoreChanged(score int)   { r.scores = append(r.scores, score) }
func (r *recordingSink) GameOver(int)             {}

func newTestHost(t *testing.T, sinks ...FrameSink) (Model, *Session) {
	t.Helper()
	return newTestHostWith(t, config.DefaultSnakeConfig(), sinks...)
}

func newTestHostWith(t *testing.T, cfg config.SnakeConfig, sinks ...FrameSink) (Model, *Session) {
	t.Helper()
	session := NewSession(cfg, 7, nil, sinks...)
	t.Cleanup(session.Stop)
	return NewModel(session, cfg, 7, nil), session
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestFirstResizeInitializesGrid(t *testing.T) {
	m, session := newTestHost(t)
	assert.False(t, session.Ready())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	snap := m.Snapshot()
	assert.True(t, session.Game().Initialized())
	assert.Equal(t, 39, snap.Cols)
	assert.Equal(t, 25, snap.Rows, "30 rows minus footer, HUD and border")
	assert.True(t, session.Ready())
	assert.Contains(t, m.View(), "Score: 0")
}

func TestTinyTerminalWaits(t *testing.T) {
	m, session := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 3, Height: 4})

	assert.False(t, session.Game().Initialized())
	assert.False(t, session.Ready())
}

func TestShrinkingSuspendsGame(t *testing.T) {
	m, session := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})

	assert.False(t, session.Ready())
	assert.Contains(t, m.View(), "Window too small")
	assert.Equal(t, 39, m.Snapshot().Cols, "grid keeps its size")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.True(t, session.Ready())
}

func TestSteeringKeys(t *testing.T) {
	m, session := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	session.Game().Step()
	assert.Equal(t, snake.DirUp, session.Game().Direction())

	// Reversal is rejected
	_, _ = update(t, m, runeKey('j'))
	session.Game().Step()
	assert.Equal(t, snake.DirUp, session.Game().Direction())
}

func TestPauseKeyAndOverlay(t *testing.T) {
	m, session := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m, _ = update(t, m, runeKey('p'))
	assert.True(t, session.Game().Paused())
	assert.Contains(t, m.View(), "Paused")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.False(t, session.Game().Paused())
	assert.NotContains(t, m.View(), "Press P to continue")
}

func TestBlurPauses(t *testing.T) {
	m, session := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	_, _ = update(t, m, tea.BlurMsg{})
	assert.True(t, session.Game().Paused())
}

func TestFocusResumesAfterBlur(t *testing.T) {
	m, session := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m, _ = update(t, m, tea.BlurMsg{})
	require.True(t, session.Game().Paused())

	_, _ = update(t, m, tea.FocusMsg{})
	assert.Equal(t, snake.StateRunning, session.Game().State())
}

func TestFocusKeepsManualPause(t *testing.T) {
	m, session := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m, _ = update(t, m, runeKey('p'))
	require.True(t, session.Game().Paused())

	m, _ = update(t, m, tea.BlurMsg{})
	_, _ = update(t, m, tea.FocusMsg{})
	assert.True(t, session.Game().Paused(), "a pause the player chose survives a focus round trip")
}

func TestFocusAfterBlurThenManualResume(t *testing.T) {
	m, session := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	m, _ = update(t, m, tea.BlurMsg{})
	m, _ = update(t, m, runeKey('p')) // resume by hand
	m, _ = update(t, m, runeKey('p')) // and pause again
	_, _ = update(t, m, tea.FocusMsg{})
	assert.True(t, session.Game().Paused())
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Gameplay.InitialLength = 5 // long enough to bite itself
	m, session := newTestHostWith(t, cfg)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	game := session.Game()

	for range 3 {
		game.Step()
	}
	before := game.Snapshot()
	m, _ = update(t, m, runeKey('r'))
	assert.Equal(t, before.Tick, game.Snapshot().Tick, "r does nothing mid-game")

	// Turn back onto the body: down, left, up
	for _, d := range []snake.Direction{snake.DirDown, snake.DirLeft, snake.DirUp} {
		game.SetPendingDirection(d)
		game.Step()
	}
	require.Equal(t, snake.StateGameOver, game.State())

	m, _ = update(t, m, GameOverMsg(game.Score()))
	assert.Contains(t, m.View(), "Game Over")

	m, _ = update(t, m, runeKey('r'))
	assert.Equal(t, snake.StateRunning, game.State())
	assert.Zero(t, m.Snapshot().Tick)
}

func TestHelpToggleRelayouts(t *testing.T) {
	m, _ := newTestHost(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	short := m.footerHeight()

	m, _ = update(t, m, runeKey('?'))
	assert.Greater(t, m.footerHeight(), short)
	assert.Contains(t, m.View(), "play again")
}

func TestQuitStopsSession(t *testing.T) {
	m, session := newTestHost(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())

	select {
	case <-session.done:
	default:
		t.Fatal("session should be stopped")
	}
	assert.Nil(t, waitForFrame(session)(), "waiters are released on stop")
}

func TestRenderKeepsNewestFrame(t *testing.T) {
	sink := &recordingSink{}
	m, session := newTestHost(t, sink)
	_, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	session.Render()
	session.Game().Step()
	session.Render()

	assert.Len(t, session.frames, 1)
	msg := waitForFrame(session)()
	frame, ok := msg.(FrameMsg)
	require.True(t, ok)
	assert.EqualValues(t, 1, frame.Tick)

	assert.Len(t, sink.frames, 2, "sinks see every frame")
	assert.Equal(t, []int{0}, sink.scores, "observer sinks are subscribed")
}

func TestEventsReachTheUI(t *testing.T) {
	m, session := newTestHost(t)
	_, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	msg := waitForEvent(session)()
	assert.Equal(t, ScoreMsg(0), msg)

	session.GameOver(30)
	assert.Equal(t, GameOverMsg(30), waitForEvent(session)())
}

func TestServerConfigFrom(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.SSH.Addr = ":2222"
	cfg.SSH.HostKeyPath = "/tmp/key"
	cfg.SSH.IdleTimeoutMinutes = 5

	sc := ServerConfigFrom(cfg)
	assert.Equal(t, ":2222", sc.Address)
	assert.Equal(t, "/tmp/key", sc.HostKeyPath)
	assert.Equal(t, 5*time.Minute, sc.IdleTimeout)
	assert.Equal(t, cfg, sc.Game)
}
