// Package tui provides the Bubble Tea host for the snake game. The game
// runs on its own loop goroutine; the host forwards keys, mouse swipes and
// focus changes to it and redraws from the snapshots the loop publishes.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// FrameMsg carries the snapshot rendered by one loop iteration.
type FrameMsg snake.Snapshot

// ScoreMsg reports a new score.
type ScoreMsg int

// GameOverMsg reports the final score of a finished game.
type GameOverMsg int

// waitForFrame blocks until the loop publishes a frame or the session ends.
func waitForFrame(s *Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-s.frames:
			return FrameMsg(snap)
		case <-s.done:
			return nil
		}
	}
}

// waitForEvent blocks until the game emits a notification or the session
// ends.
func waitForEvent(s *Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-s.events:
			if ev.gameOver {
				return GameOverMsg(ev.score)
			}
			return ScoreMsg(ev.score)
		case <-s.done:
			return nil
		}
	}
}
