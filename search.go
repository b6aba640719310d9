package maze

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

var (
	// Returned when a search is requested without both endpoints.
	ErrMissingEndpoints = errors.New("start and end must both be set")
	// Returned by FindPath when a checkpoint asked for the search to stop.
	ErrSearchHalted = errors.New("search halted")
)

// Returns the straight-line distance between two cells, in cells. Used as
// both the step cost and the heuristic.
func Distance(a, b *Cell) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Returns the total length of a path, starting from the given cell. The path
// is expected to exclude from, as returned by FindPath.
func PathCost(from *Cell, path []*Cell) float64 {
	total := 0.0
	previous := from
	for _, c := range path {
		total += Distance(previous, c)
		previous = c
	}
	return total
}

// An entry in the open set. Nodes form a linked list back to the start
// through their parents.
type node struct {
	cell   *Cell
	parent *node
	gCost  float64
	hCost  float64
	// Insertion order, used to break ties between equal fCosts.
	sequence int
}

func (n *node) fCost() float64 {
	return n.gCost + n.hCost
}

func nodeLess(a, b *node) bool {
	fa, fb := a.fCost(), b.fCost()
	if fa != fb {
		return fa < fb
	}
	return a.sequence < b.sequence
}

// An A* search between two cells of a grid that runs one expansion at a
// time. Cells are painted Searched as they're expanded and the final path is
// painted Route; the start and end cells keep their states. Cells in the
// closed set are never reopened, even if a cheaper route to them turns up
// later. Create using NewSearch.
type Search struct {
	grid     *Grid
	start    *Cell
	goal     *Cell
	open     *heap.Heap[*node]
	closed   mapset.Set[*Cell]
	sequence int
	current  *Cell
	expanded int
	done     bool
	found    bool
	path     []*Cell
}

// Prepares a search from start to goal. Nothing is painted until the first
// call to Step.
func NewSearch(grid *Grid, start, goal *Cell) *Search {
	toReturn := &Search{
		grid:   grid,
		start:  start,
		goal:   goal,
		open:   heap.New[*node](nodeLess),
		closed: mapset.New[*Cell](),
	}
	toReturn.push(&node{
		cell:  start,
		gCost: 0,
		hCost: Distance(start, goal),
	})
	return toReturn
}

func (s *Search) push(n *node) {
	n.sequence = s.sequence
	s.sequence++
	s.open.Push(n)
}

// Expands the cheapest node in the open set. Returns false once the search
// has finished, either by reaching the goal or by running out of cells.
func (s *Search) Step() bool {
	if s.done {
		return false
	}
	var current *node
	for {
		n, ok := s.open.Pop()
		if !ok {
			// The open set ran dry without reaching the goal.
			s.done = true
			return false
		}
		// The same cell may be in the open set more than once. Only the first
		// (cheapest) copy to come out counts.
		if !s.closed.Has(n.cell) {
			current = n
			break
		}
	}
	s.closed.Put(current.cell)
	s.current = current.cell
	s.expanded++

	if current.cell == s.goal {
		s.path = s.tracePath(current)
		s.done = true
		s.found = true
		return false
	}
	if !current.cell.IsTerminator() {
		s.grid.Mark(current.cell, Searched)
	}

	for _, n := range current.cell.neighbors {
		if !n.IsTransversible() || s.closed.Has(n) {
			continue
		}
		s.push(&node{
			cell:   n,
			parent: current,
			gCost:  current.gCost + Distance(current.cell, n),
			hCost:  Distance(n, s.goal),
		})
	}
	return true
}

// Follows the parent links back from the goal node, painting the route.
// Returns the cells in order from the start, excluding the start itself.
func (s *Search) tracePath(goal *node) []*Cell {
	toReturn := make([]*Cell, 0, 64)
	for n := goal; n.parent != nil; n = n.parent {
		if !n.cell.IsTerminator() {
			s.grid.Mark(n.cell, Route)
		}
		toReturn = append(toReturn, n.cell)
	}
	// reverse path
	for i, j := 0, len(toReturn)-1; i < j; i, j = i+1, j-1 {
		toReturn[i], toReturn[j] = toReturn[j], toReturn[i]
	}
	return toReturn
}

// Returns true once the search has finished.
func (s *Search) Done() bool {
	return s.done
}

// Returns true if the search finished by reaching the goal.
func (s *Search) Found() bool {
	return s.found
}

// Returns the path found, in order from the start (excluded) to the goal
// (included). Returns nil until the goal is reached.
func (s *Search) Path() []*Cell {
	return s.path
}

// Returns the number of cells that have been expanded so far.
func (s *Search) Expanded() int {
	return s.expanded
}

// Returns the most recently expanded cell, or nil before the first step.
func (s *Search) Current() *Cell {
	return s.current
}

// Returns the search's start and goal cells.
func (s *Search) Endpoints() (*Cell, *Cell) {
	return s.start, s.goal
}

// Settings for a PathFinder.
type Options struct {
	// Called after every expansion. Returning a non-nil error stops the
	// search, and FindPath returns that error.
	Checkpoint func(s *Search) error
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithCheckpoint sets a function to run after every expansion, e.g. to
// drain pending input or redraw the grid. Return ErrSearchHalted to stop.
func WithCheckpoint(checkpoint func(s *Search) error) Option {
	return func(options *Options) { options.Checkpoint = checkpoint }
}

// Runs complete A* searches over a grid.
type PathFinder struct {
	grid    *Grid
	options Options
}

func NewPathFinder(grid *Grid, options ...Option) *PathFinder {
	toReturn := &PathFinder{grid: grid}
	for _, option := range options {
		option(&toReturn.options)
	}
	return toReturn
}

// Searches for a route from start to goal, through transversible cells only.
// Returns the route in order from the start (excluded) to the goal
// (included). If there's no route, this returns a nil path and a nil error.
// If ctx is canceled or the checkpoint returns an error, the search stops
// and the grid keeps whatever it had painted so far.
func (p *PathFinder) FindPath(ctx context.Context, start, goal *Cell) ([]*Cell,
	error) {
	if (start == nil) || (goal == nil) {
		return nil, ErrMissingEndpoints
	}
	startTime := time.Now()
	s := NewSearch(p.grid, start, goal)
	for s.Step() {
		if e := ctx.Err(); e != nil {
			return nil, e
		}
		if p.options.Checkpoint != nil {
			if e := p.options.Checkpoint(s); e != nil {
				return nil, e
			}
		}
	}
	Logger().Debug("search finished", "start", start.String(),
		"goal", goal.String(), "found", s.Found(), "expanded", s.Expanded(),
		"length", len(s.Path()), "elapsed", time.Since(startTime))
	return s.Path(), nil
}
