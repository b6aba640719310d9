package console

import (
	"fmt"
	"io"
)

// The help text for the interactive viewer's key bindings.
const Controls = `Controls:
m - Re-generate maze
f - Find path with current maze (start and end points will be generated if not done so already)
p - Generate random start and end points
c - Clear maze colors and reset start and end points
x - Clear path, but not start and end colors
k (during path find) - Stop pathfinding
z - Toggle drawboard (free drawing)
left click - Select start, then end
arrows / wasd - Move the highlighted cell
space - Select the highlighted cell
v / right click - Draw a wall (drawboard only)
b - Erase a wall (drawboard only)
esc / q - Quit
`

func PrintControls(w io.Writer) {
	fmt.Fprint(w, Controls)
}
