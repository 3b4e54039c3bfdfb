package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBarWidth(t *testing.T) {
	for _, pct := range []float64{-10, 0, 42, 100, 250} {
		bar := NewProgressBar("", pct, false, 20)
		assert.Equal(t, 20, lipgloss.Width(bar.View()), "percent %v", pct)
	}
}

func TestProgressBarShowsPercent(t *testing.T) {
	bar := NewProgressBar("Level", 55, true, 40)
	out := bar.View()
	assert.Contains(t, out, "Level")
	assert.Contains(t, out, "55%")
}

func TestChoices(t *testing.T) {
	c := NewChoices("1/3", "What does ephemeral mean?", []string{"lasting", "brief", "heavy"}, 1)
	assert.False(t, c.Answered())
	assert.False(t, c.IsCorrect())

	out := c.View()
	assert.True(t, strings.Contains(out, "1) lasting"))
	assert.True(t, strings.Contains(out, "3) heavy"))

	c.Chosen = 1
	assert.True(t, c.IsCorrect())
	c.Chosen = 2
	assert.True(t, c.Answered())
	assert.False(t, c.IsCorrect())
}
