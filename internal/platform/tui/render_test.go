package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorBrightRed)
	s.DrawText(2, 0, "cd", core.ColorGreen)
	s.SetColored(5, 1, '@', core.Color(200)) // unknown colors fall back to default

	out := ansi.Strip(RenderScreen(s))
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "abcd  ", lines[0])
	assert.Equal(t, "     @", lines[1])
}
