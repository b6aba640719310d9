package maze

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
)

// We'll convert template colors to values of this type.
type templateCellType uint8

const (
	templateOpen templateCellType = iota
	templateWall
	templateStartCandidate
	templateEndCandidate
)

func (t templateCellType) String() string {
	switch t {
	case templateOpen:
		return "open"
	case templateWall:
		return "wall"
	case templateStartCandidate:
		return "startCandidate"
	case templateEndCandidate:
		return "endCandidate"
	}
	return fmt.Sprintf("Invalid template cell type: %d", uint8(t))
}

// Converts an arbitrary color to what the type of cell represents. See the
// comment on NewGridFromTemplate for how the mapping works.
func colorToTemplateCellType(c color.Color) templateCellType {
	r, g, b, _ := c.RGBA()
	r = r >> 8
	g = g >> 8
	b = b >> 8
	// Black pixels are walls
	if (r == 0) && (g == 0) && (b == 0) {
		return templateWall
	}
	// Green pixels are possible starting cells
	if (r == 0) && (g > 200) && (b == 0) {
		return templateStartCandidate
	}
	// Red pixels are possible ending cells
	if (r > 200) && (g == 0) && (b == 0) {
		return templateEndCandidate
	}
	// White, and any other color, is a normal open cell.
	return templateOpen
}

// A grid whose walls were drawn by hand rather than carved, along with the
// cells the drawing marked as candidate endpoints.
type Template struct {
	Grid            *Grid
	StartCandidates []*Cell
	EndCandidates   []*Cell
}

// Uses a "template" image to lay out a grid. Each pixel in the template
// corresponds to one cell, and the cells are given the specified size on
// screen. The template image must use the following format:
//   - Black pixels are walls.
//   - Green pixels are possible starting points (RGB = 0, >200, 0)
//   - Red pixels are possible ending points (RGB = >200, 0, 0)
//   - Any other color is an open cell.
//
// Unlike carved mazes, templates may contain loops and unreachable regions.
func NewGridFromTemplate(templatePic image.Image, cellWidth, cellHeight int,
	diagonals bool) (*Template, error) {
	bounds := templatePic.Bounds().Canon()
	grid, e := NewGrid(bounds.Dx()*cellWidth, bounds.Dy()*cellHeight,
		cellWidth, cellHeight, diagonals)
	if e != nil {
		return nil, fmt.Errorf("error loading template: %w", e)
	}
	toReturn := &Template{
		Grid:            grid,
		StartCandidates: make([]*Cell, 0, 16),
		EndCandidates:   make([]*Cell, 0, 16),
	}
	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for col := bounds.Min.X; col < bounds.Max.X; col++ {
			c := grid.Cell(col-bounds.Min.X, row-bounds.Min.Y)
			cellType := colorToTemplateCellType(templatePic.At(col, row))
			if cellType == templateWall {
				continue
			}
			grid.Mark(c, Open)
			switch cellType {
			case templateStartCandidate:
				toReturn.StartCandidates = append(toReturn.StartCandidates, c)
			case templateEndCandidate:
				toReturn.EndCandidates = append(toReturn.EndCandidates, c)
			}
		}
	}
	if grid.CountState(Open) == 0 {
		return nil, fmt.Errorf("error loading template: %w",
			ErrNoTransversibleCells)
	}
	return toReturn, nil
}

// Returns a random cell from candidates if there are any. Otherwise returns a
// random Open cell of the grid, or nil if there isn't one.
func (t *Template) pickCandidate(rng *rand.Rand, candidates []*Cell) *Cell {
	if len(candidates) != 0 {
		return candidates[rng.Intn(len(candidates))]
	}
	return t.Grid.randomCell(rng, func(c *Cell) bool {
		return c.State() == Open
	})
}

// Picks the endpoints for a template's grid. The start is chosen from the
// start candidates and the end from the end candidates; if the template
// didn't mark any of one kind, that endpoint is chosen from all open cells.
func (t *Template) PickEndpoints(rng *rand.Rand) (*StartEnd, error) {
	toReturn := NewStartEnd(t.Grid)
	if !toReturn.Progress(t.pickCandidate(rng, t.StartCandidates)) {
		return nil, fmt.Errorf("error choosing start: %w",
			ErrNoTransversibleCells)
	}
	if !toReturn.Progress(t.pickCandidate(rng, t.EndCandidates)) {
		toReturn.Reset()
		return nil, fmt.Errorf("error choosing end: %w: only one open cell",
			ErrNoTransversibleCells)
	}
	return toReturn, nil
}
