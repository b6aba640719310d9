package maze

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Carves mazes into grids using a randomized depth-first search. All of the
// randomness comes from a single seeded source, so two generators created
// with the same seed produce identical mazes for identical grid sizes.
type Generator struct {
	rng        *rand.Rand
	randomSeed int64
	// Information about the most recently finished maze, for GetInfo.
	lastCols       int
	lastRows       int
	lastOpen       int
	generationTime time.Duration
}

// Creates a generator. If the given seed is not positive, a new seed will be
// selected based on the current time in nanoseconds.
func NewGenerator(seed int64) *Generator {
	toReturn := &Generator{}
	toReturn.Reseed(seed)
	return toReturn
}

// Restarts the generator's random sequence from the given seed. A seed that
// isn't positive is replaced with one based on the current time.
func (g *Generator) Reseed(seed int64) {
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	g.randomSeed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

// Returns the seed the generator was last (re)seeded with.
func (g *Generator) Seed() int64 {
	return g.randomSeed
}

// Returns the generator's random source. Endpoint selection draws from the
// same source so a whole session is reproducible from one seed.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// Builds a new grid and carves a maze into it, running the carve to
// completion. See NewGrid for the meaning of the arguments.
func (g *Generator) Generate(width, height, cellWidth, cellHeight int,
	diagonals bool) (*Grid, error) {
	grid, e := NewGrid(width, height, cellWidth, cellHeight, diagonals)
	if e != nil {
		return nil, fmt.Errorf("error generating maze: %w", e)
	}
	e = g.NewCarver(grid).Run(context.Background())
	if e != nil {
		return nil, fmt.Errorf("error generating maze: %w", e)
	}
	return grid, nil
}

// Returns a human-readable string about the last maze carved by this
// generator, for providing debug info such as the random seed.
func (g *Generator) GetInfo() string {
	return fmt.Sprintf("%dx%d grid maze (%d open cells) with random seed %d, "+
		"generated in %.03f seconds", g.lastCols, g.lastRows, g.lastOpen,
		g.randomSeed, g.generationTime.Seconds())
}

// Carves a single grid one step at a time, so the carve can be drawn as it
// happens. Create using Generator.NewCarver.
type Carver struct {
	generator *Generator
	grid      *Grid
	// Cells we may backtrack to.
	stack   []*Cell
	current *Cell
	// Reused between steps to avoid reallocating.
	carvable  []*Cell
	carved    int
	done      bool
	startTime time.Time
}

// Prepares to carve a maze into the given grid, which should be all walls.
// The origin cell (0, 0) is opened immediately.
func (g *Generator) NewCarver(grid *Grid) *Carver {
	toReturn := &Carver{
		generator: g,
		grid:      grid,
		stack:     make([]*Cell, 0, len(grid.cells)/2),
		current:   grid.Cell(0, 0),
		carvable:  make([]*Cell, 0, 8),
		startTime: time.Now(),
	}
	grid.Mark(toReturn.current, Open)
	toReturn.carved = 1
	return toReturn
}

// Performs a single iteration of the carve: either opens one new cell or
// backtracks by one cell. Returns false once there's nothing left to do.
func (c *Carver) Step() bool {
	if c.done {
		return false
	}
	c.carvable = c.carvable[:0]
	for _, n := range c.current.neighbors {
		if n.isCarvable() {
			c.carvable = append(c.carvable, n)
		}
	}
	if len(c.carvable) != 0 {
		next := c.carvable[c.generator.rng.Intn(len(c.carvable))]
		c.stack = append(c.stack, c.current)
		c.grid.Mark(next, Open)
		c.carved++
		c.current = next
		return true
	}
	if len(c.stack) != 0 {
		c.current = c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		return true
	}
	c.finish()
	return false
}

// Records the results of the finished carve in the generator.
func (c *Carver) finish() {
	c.done = true
	elapsed := time.Since(c.startTime)
	g := c.generator
	g.lastCols = c.grid.cols
	g.lastRows = c.grid.rows
	g.lastOpen = c.carved
	g.generationTime = elapsed
	Logger().Debug("maze generated", "cols", c.grid.cols,
		"rows", c.grid.rows, "open", c.carved, "seed", g.randomSeed,
		"elapsed", elapsed)
}

// Returns true once every cell reachable from the origin has been visited.
func (c *Carver) Done() bool {
	return c.done
}

// Returns the cell the carve is currently at.
func (c *Carver) Current() *Cell {
	return c.current
}

// Returns the grid being carved.
func (c *Carver) Grid() *Grid {
	return c.grid
}

// Steps until the carve is finished. Stops early, returning the context's
// error, if ctx is canceled; the grid is left partially carved in that case.
func (c *Carver) Run(ctx context.Context) error {
	for c.Step() {
		if e := ctx.Err(); e != nil {
			return e
		}
	}
	return nil
}
