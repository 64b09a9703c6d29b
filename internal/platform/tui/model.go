package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/logging"
)

// Model is the Bubble Tea model for a snake session.
type Model struct {
	session *Session
	cfg     config.SnakeConfig
	seed    int64
	logger  *log.Logger

	screen *core.Screen
	keys   KeyMap
	help   help.Model
	swipe  *SwipeDetector
	curve  config.SpeedCurve

	snap     snake.Snapshot
	width    int
	height   int
	quitting bool

	// Set when focus loss paused a running game
	blurPaused bool
}

// NewModel creates the host model for session. The grid is sized from the
// first usable WindowSizeMsg.
func NewModel(session *Session, cfg config.SnakeConfig, seed int64, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		session: session,
		cfg:     cfg,
		seed:    seed,
		logger:  logger,
		screen:  core.NewScreen(0, 0),
		keys:    DefaultKeyMap(),
		help:    h,
		swipe:   NewSwipeDetector(cfg.Grid.SwipeCells, cfg.Grid.CellWidth),
		curve:   config.NewSpeedCurve(cfg.Gameplay),
	}
}

// Init starts the loop and subscribes to its frames and events.
func (m Model) Init() tea.Cmd {
	m.session.Start()
	return tea.Batch(waitForFrame(m.session), waitForEvent(m.session))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if d, ok := m.swipe.Handle(msg); ok {
			m.session.Game().SetPendingDirection(d)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m.layout(), nil

	case tea.BlurMsg:
		// Losing focus pauses, like a phone app going to the background
		game := m.session.Game()
		if game.State() == snake.StateRunning {
			game.Pause()
			m.blurPaused = true
		}
		m.snap = game.Snapshot()
		return m, nil

	case tea.FocusMsg:
		// Only undo a pause that focus loss caused
		if m.blurPaused {
			m.session.Game().Resume()
			m.blurPaused = false
		}
		m.snap = m.session.Game().Snapshot()
		return m, nil

	case FrameMsg:
		m.snap = snake.Snapshot(msg)
		return m, waitForFrame(m.session)

	case ScoreMsg:
		m.logger.Debug("score changed", "score", int(msg))
		return m, waitForEvent(m.session)

	case GameOverMsg:
		m.snap = m.session.Game().Snapshot()
		return m, waitForEvent(m.session)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	game := m.session.Game()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.layout(), nil

	case key.Matches(msg, m.keys.Pause):
		game.TogglePause()
		m.blurPaused = false

	case key.Matches(msg, m.keys.Restart):
		if game.State() == snake.StateGameOver {
			game.Reset()
			m.logger.Debug("game restarted")
		}

	default:
		if d, ok := m.keys.Direction(msg); ok {
			game.SetPendingDirection(d)
		}
		return m, nil
	}

	m.snap = game.Snapshot()
	return m, nil
}

// layout sizes the screen to the space above the footer, creates the grid
// on the first usable size and tells the loop whether the grid still fits.
// The grid keeps its size for the whole session; shrinking the terminal
// only suspends the game until it is large enough again.
func (m Model) layout() Model {
	h := max(0, m.height-m.footerHeight())
	m.screen.Resize(m.width, h)

	cols, rows := m.cfg.Runtime(m.width, h, m.seed).GridSize()
	game := m.session.Game()
	if !game.Initialized() && cols > 0 && rows > 0 {
		game.Initialize(cols, rows)
		m.logger.Info("grid initialized", "cols", cols, "rows", rows)
	}

	m.snap = game.Snapshot()
	m.session.SetReady(m.snap.Ready() && cols >= m.snap.Cols && rows >= m.snap.Rows)
	return m
}

func (m Model) footerHeight() int {
	return lipgloss.Height(m.footer())
}

// footer renders the status and help lines below the playfield.
func (m Model) footer() string {
	status := fmt.Sprintf("apples %d  level %d%%",
		m.curve.Apples(m.snap.Score), core.Clamp(int(m.curve.Level(m.snap.TickInterval)*100), 0, 100))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		statusStyle.Render(status),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snake.Draw(m.screen, m.snap)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

// Snapshot returns the frame the model will draw next.
func (m Model) Snapshot() snake.Snapshot {
	return m.snap
}

// IsQuitting reports whether the user asked to leave.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts a local game in the current terminal and blocks until the
// user quits. Sinks receive every rendered frame.
func Run(cfg config.SnakeConfig, seed int64, logger *log.Logger, sinks ...FrameSink) error {
	session := NewSession(cfg, seed, logger, sinks...)
	defer session.Stop()

	p := tea.NewProgram(
		NewModel(session, cfg, seed, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
