package maze

import (
	"fmt"
	"math/rand"
)

// Tracks the start and end cells of a grid. There's at most one of each, and
// both are always cells of the grid the pair was created for.
type StartEnd struct {
	grid  *Grid
	start *Cell
	end   *Cell
}

func NewStartEnd(grid *Grid) *StartEnd {
	return &StartEnd{grid: grid}
}

func (p *StartEnd) Start() *Cell {
	return p.start
}

func (p *StartEnd) End() *Cell {
	return p.end
}

// Returns true if both the start and end have been chosen.
func (p *StartEnd) Complete() bool {
	return (p.start != nil) && (p.end != nil)
}

// Returns true if neither the start nor the end have been chosen.
func (p *StartEnd) Empty() bool {
	return (p.start == nil) && (p.end == nil)
}

// Turns the start and end back into Open cells and forgets them.
func (p *StartEnd) Reset() {
	if p.start != nil {
		p.grid.Mark(p.start, Open)
	}
	if p.end != nil {
		p.grid.Mark(p.end, Open)
	}
	p.start = nil
	p.end = nil
}

// Uses the given cell as the next endpoint: the start if there isn't one yet,
// otherwise the end. If both are already set they're cleared first, so the
// cell becomes the new start. Does nothing unless c is an Open cell. Returns
// true if the cell was used.
func (p *StartEnd) Progress(c *Cell) bool {
	if (c == nil) || (c.State() != Open) {
		return false
	}
	if p.Complete() {
		p.Reset()
	}
	if p.start == nil {
		p.start = c
		p.grid.Mark(c, Start)
		Logger().Info("start selected", "cell", c.String())
		return true
	}
	p.end = c
	p.grid.Mark(c, End)
	Logger().Info("end selected", "cell", c.String())
	return true
}

// Clears the current endpoints and picks two new, distinct ones at random.
// The grid needs at least two Open cells; if it doesn't, this returns an
// error wrapping ErrNoTransversibleCells and leaves no endpoints set.
func (p *StartEnd) Randomize(rng *rand.Rand) error {
	p.Reset()
	start, e := p.grid.RandomTransversibleCell(rng)
	if e != nil {
		return fmt.Errorf("error choosing start: %w", e)
	}
	p.grid.Mark(start, Start)
	// Once marked, the start is a terminator, so it can't be picked again.
	end := p.grid.randomCell(rng, func(c *Cell) bool {
		return c.State() == Open
	})
	if end == nil {
		p.grid.Mark(start, Open)
		return fmt.Errorf("error choosing end: %w: only one open cell",
			ErrNoTransversibleCells)
	}
	p.grid.Mark(end, End)
	p.start = start
	p.end = end
	Logger().Info("new points generated", "start", start.String(),
		"end", end.String())
	return nil
}
