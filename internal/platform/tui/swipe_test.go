package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func TestSwipeDirections(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   snake.Direction
		ok     bool
	}{
		{"right", 10, 1, snake.DirRight, true},
		{"left", -10, 0, snake.DirLeft, true},
		{"down", 1, 5, snake.DirDown, true},
		{"up", 0, -5, snake.DirUp, true},
		{"too short horizontal", 6, 0, 0, false}, // 3 cells at width 2
		{"too short vertical", 0, 3, 0, false},
		{"horizontal wins by cells", 10, 4, snake.DirRight, true},
		{"vertical wins by cells", 8, 5, snake.DirDown, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewSwipeDetector(3, 2)
			d.Press(20, 10)
			got, ok := d.Release(20+tc.dx, 10+tc.dy)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSwipeReleaseWithoutPress(t *testing.T) {
	d := NewSwipeDetector(1, 1)
	_, ok := d.Release(50, 50)
	assert.False(t, ok)

	d.Press(0, 0)
	_, ok = d.Release(10, 0)
	assert.True(t, ok)
	_, ok = d.Release(20, 0)
	assert.False(t, ok, "a drag is consumed by its release")
}

func TestSwipeHandleMouseMsg(t *testing.T) {
	d := NewSwipeDetector(3, 2)

	_, ok := d.Handle(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.False(t, ok)
	_, ok = d.Handle(tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionRelease})
	assert.False(t, ok, "right button does not start a swipe")

	d.Handle(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	d.Handle(tea.MouseMsg{X: 12, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	got, ok := d.Handle(tea.MouseMsg{X: 10, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	assert.True(t, ok)
	assert.Equal(t, snake.DirUp, got)
}
