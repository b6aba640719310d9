package maze

import (
	"fmt"
	"image"
)

// A single node in a Grid. Cells are only created by NewGrid; their position
// and neighbors never change afterwards, and their state may only be changed
// using Grid.Mark.
type Cell struct {
	// The cell's column and row in the grid.
	X, Y int
	// The box occupied by the cell on screen, in pixels. The algorithms don't
	// care about this, it's only here for renderers.
	Bounds image.Rectangle
	state  State
	// Adjacent cells, in the order up, down, left, right, followed by
	// up-right, down-right, up-left and down-left if diagonals are enabled.
	neighbors []*Cell
}

func (c *Cell) State() State {
	return c.state
}

// Returns the cell's adjacent cells. The returned slice must not be modified.
func (c *Cell) Neighbors() []*Cell {
	return c.neighbors
}

func (c *Cell) IsTerminator() bool {
	return c.state.IsTerminator()
}

func (c *Cell) IsTransversible() bool {
	return c.state.IsTransversible()
}

func (c *Cell) IsOpenable() bool {
	return c.state.IsOpenable()
}

// Returns true if the given cell is in this cell's neighbor list.
func (c *Cell) IsNeighbor(other *Cell) bool {
	for _, n := range c.neighbors {
		if n == other {
			return true
		}
	}
	return false
}

// Sets the state, returning true if it actually changed.
func (c *Cell) setState(s State) bool {
	if c.state == s {
		return false
	}
	c.state = s
	return true
}

// Returns the number of neighbors that are currently Open.
func (c *Cell) openNeighborCount() int {
	count := 0
	for _, n := range c.neighbors {
		if n.state == Open {
			count++
		}
	}
	return count
}

// A cell can be carved if it's still a wall and touches at most one open
// cell. Carving it therefore can't join two existing passages.
func (c *Cell) isCarvable() bool {
	return (c.state == Wall) && (c.openNeighborCount() <= 1)
}

func (c *Cell) String() string {
	return fmt.Sprintf("Cell(%d, %d)", c.X, c.Y)
}
