package maze

import (
	"fmt"
	"image/color"
)

// The state of a single cell. The zero value is Wall, so a freshly allocated
// grid is solid rock until it's carved.
type State uint8

const (
	Wall State = iota
	Open
	Start
	End
	Searched
	Route
	stateCount
)

var stateNames = [stateCount]string{
	Wall:     "wall",
	Open:     "open",
	Start:    "start",
	End:      "end",
	Searched: "searched",
	Route:    "route",
}

// Maps each state to the color used when drawing it.
var stateColors = [stateCount]color.RGBA{
	Wall:     {0, 0, 0, 255},
	Open:     {255, 255, 255, 255},
	Start:    {0, 0, 255, 255},
	End:      {255, 20, 147, 255},
	Searched: {255, 0, 0, 255},
	Route:    {0, 255, 0, 255},
}

// Used for the highlighted cell while free-drawing. Not shared with any state.
var HighlightColor = color.RGBA{255, 200, 0, 255}

func (s State) String() string {
	if s < stateCount {
		return stateNames[s]
	}
	return fmt.Sprintf("Unknown State: %d", uint8(s))
}

// Returns the color a renderer should use for the state. Unknown states are
// drawn transparent.
func (s State) Color() color.RGBA {
	if s < stateCount {
		return stateColors[s]
	}
	return color.RGBA{}
}

// Returns true for the start and end states.
func (s State) IsTerminator() bool {
	return (s == Start) || (s == End)
}

// Returns true if a path may pass through a cell in this state.
func (s State) IsTransversible() bool {
	return s.IsTerminator() || (s == Open)
}

// Returns true for the states left behind by a search. These are the only
// states that get reverted to Open when clearing a search.
func (s State) IsOpenable() bool {
	return (s == Searched) || (s == Route)
}
