package maze

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatePredicates(t *testing.T) {
	tests := []struct {
		state                               State
		terminator, transversible, openable bool
	}{
		{Wall, false, false, false},
		{Open, false, true, false},
		{Start, true, true, false},
		{End, true, true, false},
		{Searched, false, false, true},
		{Route, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminator, tt.state.IsTerminator())
			assert.Equal(t, tt.transversible, tt.state.IsTransversible())
			assert.Equal(t, tt.openable, tt.state.IsOpenable())
		})
	}
}

func TestStateColorsAreDistinct(t *testing.T) {
	seen := map[color.RGBA]State{}
	for s := Wall; s < stateCount; s++ {
		c := s.Color()
		assert.Equal(t, uint8(255), c.A, "%s", s)
		other, dup := seen[c]
		assert.False(t, dup, "%s and %s share a color", s, other)
		seen[c] = s
		assert.NotEqual(t, HighlightColor, c)
	}
}

func TestUnknownState(t *testing.T) {
	s := State(42)
	assert.Equal(t, "Unknown State: 42", s.String())
	assert.Equal(t, color.RGBA{}, s.Color())
	assert.False(t, s.IsTransversible())
}
