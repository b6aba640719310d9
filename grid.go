// This defines a library for carving 2D grid mazes and searching them using
// A*. A Grid holds the cells, a Generator carves passages into it, and a
// PathFinder searches the carved passages. Every state change is reported
// through a single "dirty" flag on the Grid, so a renderer can redraw the
// grid live while the algorithms run. A Session ties these together behind a
// small command-driven state machine.
package maze

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"strings"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

var (
	// Returned when a grid would end up with no rows or no columns.
	ErrDegenerateGrid = errors.New("grid has no rows or columns")
	// Returned when a random cell is requested, but no cell can be used.
	// This usually means the maze hasn't been generated yet.
	ErrNoTransversibleCells = errors.New("no transversible cells")
)

// Offsets to the up, down, left and right neighbors.
var cardinalOffsets = [4]image.Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Offsets to the up-right, down-right, up-left and down-left neighbors.
var diagonalOffsets = [4]image.Point{{1, -1}, {1, 1}, {-1, -1}, {-1, 1}}

// A rectangular array of cells, partitioning an area of pixels. Create using
// NewGrid. Grids are never resized; build a new one instead.
type Grid struct {
	// The size of the partitioned area, in pixels.
	width  int
	height int
	// The size of a single cell, in pixels.
	cellWidth  int
	cellHeight int
	// The number of cells across and down.
	cols int
	rows int
	// True if cells are 8-connected rather than 4-connected.
	diagonals bool
	// Cells are stored in row-major order.
	cells []Cell
	// Pointers into cells, in the same order, so callers can range over the
	// cells without copying them.
	all []*Cell
	// Set whenever any cell's state changes. Cleared by ConsumeDirty.
	dirty bool
}

// Partitions a width x height pixel area into cells of the given pixel size.
// Every cell starts out as a Wall. Returns an error wrapping
// ErrDegenerateGrid if either dimension contains no cells.
func NewGrid(width, height, cellWidth, cellHeight int, diagonals bool) (*Grid,
	error) {
	if (cellWidth < 1) || (cellHeight < 1) {
		return nil, fmt.Errorf("%w: cell size %dx%d is not positive",
			ErrDegenerateGrid, cellWidth, cellHeight)
	}
	if (width < 0) || (height < 0) {
		return nil, fmt.Errorf("%w: area %dx%d is negative",
			ErrDegenerateGrid, width, height)
	}
	cols := width / cellWidth
	rows := height / cellHeight
	if (cols == 0) || (rows == 0) {
		return nil, fmt.Errorf("%w: %dx%d pixels holds %dx%d cells of %dx%d",
			ErrDegenerateGrid, width, height, cols, rows, cellWidth,
			cellHeight)
	}
	cellCount := cols * rows
	// Check for overflow.
	if cellCount <= 0 {
		return nil, fmt.Errorf("the grid's size was too big")
	}
	toReturn := &Grid{
		width:      width,
		height:     height,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		cols:       cols,
		rows:       rows,
		diagonals:  diagonals,
		cells:      make([]Cell, cellCount),
		all:        make([]*Cell, cellCount),
	}
	for i := range toReturn.cells {
		c := &(toReturn.cells[i])
		c.X = i % cols
		c.Y = i / cols
		c.Bounds = image.Rect(c.X*cellWidth, c.Y*cellHeight,
			(c.X+1)*cellWidth, (c.Y+1)*cellHeight)
		toReturn.all[i] = c
	}
	toReturn.linkNeighbors()
	return toReturn, nil
}

// Fills in every cell's neighbor list. Only called by NewGrid.
func (g *Grid) linkNeighbors() {
	offsetCount := len(cardinalOffsets)
	if g.diagonals {
		offsetCount += len(diagonalOffsets)
	}
	offsets := make([]image.Point, 0, offsetCount)
	offsets = append(offsets, cardinalOffsets[:]...)
	if g.diagonals {
		offsets = append(offsets, diagonalOffsets[:]...)
	}
	for i := range g.cells {
		c := &(g.cells[i])
		c.neighbors = make([]*Cell, 0, len(offsets))
		for _, d := range offsets {
			// Out-of-bounds directions are simply skipped.
			n := g.Cell(c.X+d.X, c.Y+d.Y)
			if n != nil {
				c.neighbors = append(c.neighbors, n)
			}
		}
	}
}

// Returns the number of columns of cells.
func (g *Grid) Cols() int {
	return g.cols
}

// Returns the number of rows of cells.
func (g *Grid) Rows() int {
	return g.rows
}

// Returns the size of the pixel area the grid was built from.
func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

// Returns the width and height of a single cell, in pixels.
func (g *Grid) CellSize() (int, int) {
	return g.cellWidth, g.cellHeight
}

func (g *Grid) Diagonals() bool {
	return g.diagonals
}

// Returns every cell in row-major order. The slice must not be modified.
func (g *Grid) Cells() []*Cell {
	return g.all
}

// Returns the cell at the given column and row, or nil if it's out of
// bounds.
func (g *Grid) Cell(x, y int) *Cell {
	if (x < 0) || (y < 0) || (x >= g.cols) || (y >= g.rows) {
		return nil
	}
	return &(g.cells[y*g.cols+x])
}

// Returns the cell containing the given pixel. Returns false if the pixel
// doesn't fall on the grid.
func (g *Grid) CellAt(pixelX, pixelY int) (*Cell, bool) {
	if (pixelX < 0) || (pixelY < 0) {
		return nil, false
	}
	c := g.Cell(pixelX/g.cellWidth, pixelY/g.cellHeight)
	return c, c != nil
}

// The only way to change a cell's state. Returns true if the state changed,
// in which case the grid is flagged as needing a redraw.
func (g *Grid) Mark(c *Cell, s State) bool {
	if !c.setState(s) {
		return false
	}
	g.dirty = true
	return true
}

// Returns true if any cell changed since the last call to ConsumeDirty.
func (g *Grid) Dirty() bool {
	return g.dirty
}

// Returns the dirty flag and clears it. Renderers should call this once per
// frame and only repaint if it returns true.
func (g *Grid) ConsumeDirty() bool {
	toReturn := g.dirty
	g.dirty = false
	return toReturn
}

// Sets every cell that's Searched or Route back to Open. If openableOnly is
// false, every cell that isn't a Wall is set to Open instead, including the
// start and end cells. Returns the number of cells that changed.
func (g *Grid) Reopen(openableOnly bool) int {
	changed := 0
	for i := range g.cells {
		c := &(g.cells[i])
		if openableOnly && !c.IsOpenable() {
			continue
		}
		if c.state == Wall {
			continue
		}
		if g.Mark(c, Open) {
			changed++
		}
	}
	return changed
}

// Sets every cell in the grid to the given state.
func (g *Grid) Fill(s State) {
	for i := range g.cells {
		g.Mark(&(g.cells[i]), s)
	}
}

// Returns the number of cells currently in the given state.
func (g *Grid) CountState(s State) int {
	count := 0
	for i := range g.cells {
		if g.cells[i].state == s {
			count++
		}
	}
	return count
}

// Returns a uniformly chosen cell for which keep returns true. Returns nil if
// no cell qualifies.
func (g *Grid) randomCell(rng *rand.Rand, keep func(c *Cell) bool) *Cell {
	candidates := make([]*Cell, 0, len(g.cells)/2)
	for _, c := range g.all {
		if keep(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[rng.Intn(len(candidates))]
}

// Returns a uniformly chosen cell that a path could pass through. Returns an
// error wrapping ErrNoTransversibleCells if there aren't any, which is the
// case for a grid that hasn't been carved yet.
func (g *Grid) RandomTransversibleCell(rng *rand.Rand) (*Cell, error) {
	toReturn := g.randomCell(rng, (*Cell).IsTransversible)
	if toReturn == nil {
		return nil, fmt.Errorf("%w in %dx%d grid", ErrNoTransversibleCells,
			g.cols, g.rows)
	}
	return toReturn, nil
}

// Summarizes the graph formed by the grid's non-wall cells and the adjacency
// links between them.
type TreeStats struct {
	// The number of cells that aren't walls.
	OpenCells int
	// The number of neighbor links joining two non-wall cells.
	Edges int
	// The number of connected groups of non-wall cells.
	Components int
	// True if some group of non-wall cells contains a loop.
	HasCycle bool
}

// Returns true if the non-wall cells form a single tree: exactly one simple
// path between any two of them.
func (s TreeStats) IsSpanningTree() bool {
	return (s.OpenCells > 0) && (s.Components == 1) && !s.HasCycle &&
		(s.Edges == s.OpenCells-1)
}

// Computes TreeStats for the current cell states. Each group of non-wall
// cells is flooded from its first cell; a group is a tree exactly when it has
// one less link than it has cells.
func (g *Grid) TreeStats() TreeStats {
	var toReturn TreeStats
	visited := mapset.New[*Cell]()
	toVisit := queue.New[*Cell]()
	for _, c := range g.all {
		if c.state == Wall {
			continue
		}
		toReturn.OpenCells++
		for _, n := range c.neighbors {
			if n.state != Wall {
				toReturn.Edges++
			}
		}
		if visited.Has(c) {
			continue
		}
		toReturn.Components++
		visited.Put(c)
		toVisit.Enqueue(c)
		for !toVisit.Empty() {
			current := toVisit.Dequeue()
			for _, n := range current.neighbors {
				if (n.state == Wall) || visited.Has(n) {
					continue
				}
				visited.Put(n)
				toVisit.Enqueue(n)
			}
		}
	}
	// Every link was counted from both of its ends.
	toReturn.Edges /= 2
	toReturn.HasCycle = toReturn.Edges > toReturn.OpenCells-toReturn.Components
	return toReturn
}

var stateRunes = [stateCount]byte{
	Wall:     '#',
	Open:     ' ',
	Start:    'S',
	End:      'E',
	Searched: '.',
	Route:    '*',
}

// Returns a text picture of the grid, one line per row.
func (g *Grid) String() string {
	var output strings.Builder
	output.Grow((g.cols + 1) * g.rows)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			s := g.cells[row*g.cols+col].state
			if s < stateCount {
				output.WriteByte(stateRunes[s])
			} else {
				output.WriteByte('?')
			}
		}
		output.WriteByte('\n')
	}
	return output.String()
}
