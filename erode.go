package maze

// Returns the number of walls directly above, below, left or right of c.
func (g *Grid) cardinalWallCount(c *Cell) int {
	count := 0
	for _, d := range cardinalOffsets {
		n := g.Cell(c.X+d.X, c.Y+d.Y)
		if (n != nil) && (n.state == Wall) {
			count++
		}
	}
	return count
}

// Opens every wall cell that sticks out from a longer wall, meaning it
// touches exactly one other wall cell. Only removes one cell from the end of
// each wall per call, so this can be called repeatedly to erode further, but
// calling it too much may eventually trivialize the entire maze. Eroded mazes
// contain loops, so they're no longer spanning trees. Returns the number of
// cells opened.
func (g *Grid) ErodeWalls() int {
	// Collect first so that walls shortened in this call aren't considered
	// again until the next one.
	toOpen := make([]*Cell, 0, len(g.cells)/8)
	for _, c := range g.all {
		if (c.state == Wall) && (g.cardinalWallCount(c) == 1) {
			toOpen = append(toOpen, c)
		}
	}
	for _, c := range toOpen {
		g.Mark(c, Open)
	}
	return len(toOpen)
}
