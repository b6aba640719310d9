package maze

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSpanningTree(t *testing.T) {
	sizes := []struct{ cols, rows int }{
		{1, 1}, {1, 10}, {10, 1}, {2, 2}, {10, 10}, {31, 17},
	}
	for _, diagonals := range []bool{false, true} {
		for _, size := range sizes {
			for seed := int64(1); seed <= 5; seed++ {
				name := fmt.Sprintf("%dx%d/seed%d/diagonals=%v", size.cols,
					size.rows, seed, diagonals)
				t.Run(name, func(t *testing.T) {
					grid, e := NewGenerator(seed).Generate(size.cols*4,
						size.rows*4, 4, 4, diagonals)
					require.NoError(t, e)
					stats := grid.TreeStats()
					assert.True(t, stats.IsSpanningTree(), "%+v\n%s", stats,
						grid)
					assert.Equal(t, stats.OpenCells-1, stats.Edges)
					assert.Equal(t, Open, grid.Cell(0, 0).State())
				})
			}
		}
	}
}

func TestGenerateOnlyOpenAndWall(t *testing.T) {
	grid, e := NewGenerator(9).Generate(40, 30, 2, 2, false)
	require.NoError(t, e)
	total := grid.CountState(Open) + grid.CountState(Wall)
	assert.Equal(t, grid.Cols()*grid.Rows(), total)
	assert.True(t, grid.Dirty())
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, e := NewGenerator(42).Generate(300, 200, 10, 10, false)
	require.NoError(t, e)
	b, e := NewGenerator(42).Generate(300, 200, 10, 10, false)
	require.NoError(t, e)
	assert.Equal(t, a.String(), b.String())

	c, e := NewGenerator(43).Generate(300, 200, 10, 10, false)
	require.NoError(t, e)
	assert.NotEqual(t, a.String(), c.String())
}

func TestReseedRepeatsMaze(t *testing.T) {
	g := NewGenerator(5)
	first, e := g.Generate(50, 50, 5, 5, true)
	require.NoError(t, e)
	g.Reseed(5)
	second, e := g.Generate(50, 50, 5, 5, true)
	require.NoError(t, e)
	assert.Equal(t, first.String(), second.String())
}

func TestNonPositiveSeedIsReplaced(t *testing.T) {
	for _, seed := range []int64{0, -1} {
		g := NewGenerator(seed)
		assert.Positive(t, g.Seed())
	}
	assert.Equal(t, int64(17), NewGenerator(17).Seed())
}

func TestGenerateDegenerate(t *testing.T) {
	grid, e := NewGenerator(1).Generate(5, 100, 10, 10, false)
	assert.Nil(t, grid)
	assert.ErrorIs(t, e, ErrDegenerateGrid)
}

func TestCarverMatchesGenerate(t *testing.T) {
	want, e := NewGenerator(3).Generate(60, 40, 4, 4, false)
	require.NoError(t, e)

	grid, e := NewGrid(60, 40, 4, 4, false)
	require.NoError(t, e)
	carver := NewGenerator(3).NewCarver(grid)
	assert.Equal(t, grid.Cell(0, 0), carver.Current())
	assert.Equal(t, grid, carver.Grid())
	steps := 0
	for carver.Step() {
		steps++
		// Every step either opens a cell or backtracks, and the stack can't
		// hold more than every cell, so this is a generous bound.
		require.Less(t, steps, 2*grid.Cols()*grid.Rows())
	}
	assert.True(t, carver.Done())
	assert.False(t, carver.Step())
	assert.Equal(t, want.String(), grid.String())
}

func TestCarverStepOpensAtMostOneCell(t *testing.T) {
	grid, e := NewGrid(20, 20, 1, 1, false)
	require.NoError(t, e)
	carver := NewGenerator(8).NewCarver(grid)
	open := grid.CountState(Open)
	assert.Equal(t, 1, open)
	for carver.Step() {
		now := grid.CountState(Open)
		assert.Contains(t, []int{open, open + 1}, now)
		open = now
	}
}

func TestCarverRunCanceled(t *testing.T) {
	grid, e := NewGrid(50, 50, 1, 1, false)
	require.NoError(t, e)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	carver := NewGenerator(2).NewCarver(grid)
	e = carver.Run(ctx)
	assert.ErrorIs(t, e, context.Canceled)
	assert.False(t, carver.Done())
	assert.Less(t, grid.CountState(Open), 10)
}

func TestGetInfo(t *testing.T) {
	g := NewGenerator(1234)
	_, e := g.Generate(100, 50, 10, 10, false)
	require.NoError(t, e)
	info := g.GetInfo()
	assert.Contains(t, info, "10x5 grid maze")
	assert.Contains(t, info, "random seed 1234")
}
