package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, config Config) *Session {
	t.Helper()
	s, e := NewSession(config)
	require.NoError(t, e)
	return s
}

func syncConfig() Config {
	return Config{
		Width:      100,
		Height:     100,
		CellWidth:  10,
		CellHeight: 10,
		Seed:       1,
	}
}

// Ticks the session with no input until it's neither carving nor searching.
func runUntilIdle(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; s.Carving() || s.Searching(); i++ {
		require.Less(t, i, 100000, "session never went idle")
		require.NoError(t, s.Tick(nil))
	}
}

// Returns the open cell furthest down and to the right.
func farthestOpenCell(g *Grid) *Cell {
	var toReturn *Cell
	for _, c := range g.Cells() {
		if c.State() != Open {
			continue
		}
		if (toReturn == nil) || (c.X+c.Y > toReturn.X+toReturn.Y) {
			toReturn = c
		}
	}
	return toReturn
}

func TestNewSessionCarvesImmediately(t *testing.T) {
	s := newTestSession(t, syncConfig())
	assert.Equal(t, ModeAuto, s.Mode())
	assert.False(t, s.Carving())
	assert.False(t, s.Searching())
	assert.True(t, s.Grid().TreeStats().IsSpanningTree())
	assert.True(t, s.Endpoints().Empty())
	assert.Equal(t, int64(1), s.Generator().Seed())
	assert.Equal(t, "auto | 10x10 | seed 1 | idle", s.Status())
	assert.NotEqual(t, [16]byte{}, [16]byte(s.ID()))
}

func TestNewSessionDegenerate(t *testing.T) {
	config := syncConfig()
	config.Width = 5
	s, e := NewSession(config)
	assert.Nil(t, s)
	assert.ErrorIs(t, e, ErrDegenerateGrid)
}

func TestRunSearchPicksEndpoints(t *testing.T) {
	s := newTestSession(t, syncConfig())
	require.NoError(t, s.Tick([]Command{NewCommand(CmdRunSearch)}))
	require.True(t, s.Endpoints().Complete())
	path, found := s.LastPath()
	require.True(t, found)
	require.NotEmpty(t, path)
	assert.Equal(t, s.Endpoints().End(), path[len(path)-1])
	assert.Equal(t, len(path)-1, s.Grid().CountState(Route))
	assert.Contains(t, s.Status(), "path length")

	// Running again keeps the endpoints and repaints the same route.
	before := s.Grid().String()
	require.NoError(t, s.Tick([]Command{NewCommand(CmdRunSearch)}))
	assert.Equal(t, before, s.Grid().String())
}

func TestClearCommands(t *testing.T) {
	s := newTestSession(t, syncConfig())
	require.NoError(t, s.Tick([]Command{NewCommand(CmdRunSearch)}))
	start := s.Endpoints().Start()

	require.NoError(t, s.Tick([]Command{
		NewCommand(CmdClearKeepEndpoints),
	}))
	assert.Equal(t, 0, s.Grid().CountState(Route))
	assert.Equal(t, 0, s.Grid().CountState(Searched))
	assert.Equal(t, start, s.Endpoints().Start())
	assert.Equal(t, Start, start.State())
	_, found := s.LastPath()
	assert.False(t, found)

	require.NoError(t, s.Tick([]Command{NewCommand(CmdRunSearch),
		NewCommand(CmdClear)}))
	assert.True(t, s.Endpoints().Empty())
	assert.Equal(t, 0, s.Grid().CountState(Start))
	assert.Equal(t, 0, s.Grid().CountState(End))
	assert.True(t, s.Grid().TreeStats().IsSpanningTree())
}

func TestRandomEndpointsCommand(t *testing.T) {
	s := newTestSession(t, syncConfig())
	require.NoError(t, s.Tick([]Command{NewCommand(CmdRandomEndpoints)}))
	assert.True(t, s.Endpoints().Complete())
	assert.Equal(t, 1, s.Grid().CountState(Start))
	assert.Equal(t, 1, s.Grid().CountState(End))
}

func TestRegenerateReplacesGrid(t *testing.T) {
	s := newTestSession(t, syncConfig())
	first := s.Grid()
	require.NoError(t, s.Tick([]Command{NewCommand(CmdRunSearch),
		NewCommand(CmdRegenerate)}))
	assert.NotSame(t, first, s.Grid())
	assert.True(t, s.Endpoints().Empty())
	assert.True(t, s.Grid().TreeStats().IsSpanningTree())
	_, found := s.LastPath()
	assert.False(t, found)
}

func TestManualMode(t *testing.T) {
	s := newTestSession(t, syncConfig())
	require.NoError(t, s.Tick([]Command{NewCommand(CmdRandomEndpoints),
		NewCommand(CmdToggleMode)}))
	require.Equal(t, ModeManual, s.Mode())
	g := s.Grid()
	assert.Equal(t, 100, g.CountState(Open))
	assert.True(t, s.Endpoints().Empty())

	// Paint with the pointer, and through the highlighted cell.
	require.NoError(t, s.Tick([]Command{
		PaintAt(CmdPaintWall, 15, 5),
		NewCommand(CmdPaintWall),
		MoveHighlight(DirDown),
		NewCommand(CmdPaintWall),
		NewCommand(CmdPaintOpen),
	}))
	assert.Equal(t, Wall, g.Cell(1, 0).State())
	assert.Equal(t, Wall, g.Cell(0, 0).State())
	assert.Equal(t, Open, g.Cell(0, 1).State())
	assert.Equal(t, 2, g.CountState(Wall))

	// Painting never removes an endpoint.
	require.NoError(t, s.Tick([]Command{NewCommand(CmdSelectHighlighted)}))
	assert.Equal(t, g.Cell(0, 1), s.Endpoints().Start())
	require.NoError(t, s.Tick([]Command{NewCommand(CmdPaintWall)}))
	assert.Equal(t, Start, g.Cell(0, 1).State())

	// Selecting a wall does nothing.
	require.NoError(t, s.Tick([]Command{SelectCellAt(5, 5)}))
	assert.Nil(t, s.Endpoints().End())

	require.NoError(t, s.Tick([]Command{SelectCellAt(95, 95),
		NewCommand(CmdRunSearch)}))
	path, found := s.LastPath()
	require.True(t, found)
	assert.Equal(t, g.Cell(9, 9), path[len(path)-1])

	// Switching back carves a fresh maze.
	require.NoError(t, s.Tick([]Command{NewCommand(CmdToggleMode)}))
	assert.Equal(t, ModeAuto, s.Mode())
	assert.NotSame(t, g, s.Grid())
	assert.True(t, s.Grid().TreeStats().IsSpanningTree())
}

func TestPaintIgnoredInAutoMode(t *testing.T) {
	s := newTestSession(t, syncConfig())
	before := s.Grid().String()
	var cmds []Command
	for y := 5; y < 100; y += 10 {
		for x := 5; x < 100; x += 10 {
			cmds = append(cmds, PaintAt(CmdPaintWall, x, y),
				PaintAt(CmdPaintOpen, x, y))
		}
	}
	cmds = append(cmds, NewCommand(CmdPaintOpen))
	require.NoError(t, s.Tick(cmds))
	assert.Equal(t, before, s.Grid().String())
}

func TestMoveHighlightStaysOnGrid(t *testing.T) {
	s := newTestSession(t, syncConfig())
	assert.Equal(t, s.Grid().Cell(0, 0), s.Highlight())
	require.NoError(t, s.Tick([]Command{MoveHighlight(DirLeft),
		MoveHighlight(DirUp)}))
	assert.Equal(t, s.Grid().Cell(0, 0), s.Highlight())

	cmds := make([]Command, 0, 30)
	for i := 0; i < 15; i++ {
		cmds = append(cmds, MoveHighlight(DirRight), MoveHighlight(DirDown))
	}
	require.NoError(t, s.Tick(cmds))
	assert.Equal(t, s.Grid().Cell(9, 9), s.Highlight())
}

func TestAnimatedCarve(t *testing.T) {
	config := syncConfig()
	config.StepsPerTick = 1
	s := newTestSession(t, config)
	require.True(t, s.Carving())
	assert.Equal(t, 1, s.Grid().CountState(Open))
	assert.Equal(t, "auto | 10x10 | seed 1 | carving", s.Status())

	// Most commands wait for the carve to finish.
	require.NoError(t, s.Tick([]Command{NewCommand(CmdRunSearch),
		NewCommand(CmdRandomEndpoints), SelectCellAt(0, 0)}))
	assert.False(t, s.Searching())
	assert.True(t, s.Endpoints().Empty())
	assert.LessOrEqual(t, s.Grid().CountState(Open), 2)

	runUntilIdle(t, s)
	assert.True(t, s.Grid().TreeStats().IsSpanningTree())

	// The carve matches a synchronous one with the same seed.
	other := newTestSession(t, syncConfig())
	assert.Equal(t, other.Grid().String(), s.Grid().String())
}

func TestAnimatedSearch(t *testing.T) {
	config := syncConfig()
	config.Width, config.Height = 200, 200
	config.StepsPerTick = 1
	s := newTestSession(t, config)
	runUntilIdle(t, s)
	g := s.Grid()
	goal := farthestOpenCell(g)
	require.NoError(t, s.Tick([]Command{SelectCellAt(0, 0),
		SelectCellAt(goal.Bounds.Min.X, goal.Bounds.Min.Y),
		NewCommand(CmdRunSearch)}))
	require.True(t, s.Searching())
	assert.Equal(t, 1, s.ActiveSearch().Expanded())
	assert.Contains(t, s.Status(), "searching (1 expanded)")

	runUntilIdle(t, s)
	path, found := s.LastPath()
	require.True(t, found)
	assert.Equal(t, goal, path[len(path)-1])
	assert.Equal(t, len(path)-1, g.CountState(Route))
}

func TestHaltSearchKeepsPaint(t *testing.T) {
	config := syncConfig()
	config.Width, config.Height = 200, 200
	config.StepsPerTick = 1
	s := newTestSession(t, config)
	runUntilIdle(t, s)
	g := s.Grid()
	goal := farthestOpenCell(g)
	require.NoError(t, s.Tick([]Command{SelectCellAt(0, 0),
		SelectCellAt(goal.Bounds.Min.X, goal.Bounds.Min.Y),
		NewCommand(CmdRunSearch)}))
	require.NoError(t, s.Tick(nil))
	require.NoError(t, s.Tick(nil))
	require.True(t, s.Searching())

	require.NoError(t, s.Tick([]Command{NewCommand(CmdHaltSearch)}))
	assert.False(t, s.Searching())
	assert.Equal(t, 2, g.CountState(Searched))
	assert.Equal(t, 0, g.CountState(Route))
	_, found := s.LastPath()
	assert.False(t, found)
	assert.True(t, s.Endpoints().Complete())
}

func TestSelectHaltsSearch(t *testing.T) {
	config := syncConfig()
	config.Width, config.Height = 200, 200
	config.StepsPerTick = 1
	s := newTestSession(t, config)
	runUntilIdle(t, s)
	goal := farthestOpenCell(s.Grid())
	require.NoError(t, s.Tick([]Command{SelectCellAt(0, 0),
		SelectCellAt(goal.Bounds.Min.X, goal.Bounds.Min.Y),
		NewCommand(CmdRunSearch)}))
	require.True(t, s.Searching())

	other := farthestOpenCell(s.Grid())
	require.NotNil(t, other)
	require.NoError(t, s.Tick([]Command{
		SelectCellAt(other.Bounds.Min.X, other.Bounds.Min.Y),
	}))
	assert.False(t, s.Searching())
	assert.Equal(t, other, s.Endpoints().Start())
	assert.Nil(t, s.Endpoints().End())
}

func TestQuitStopsLaterCommands(t *testing.T) {
	s := newTestSession(t, syncConfig())
	g := s.Grid()
	require.NoError(t, s.Tick([]Command{NewCommand(CmdQuit),
		NewCommand(CmdRegenerate)}))
	assert.True(t, s.Quitting())
	assert.Same(t, g, s.Grid())
}

func TestSessionsAreReproducible(t *testing.T) {
	config := syncConfig()
	config.Seed = 7
	a := newTestSession(t, config)
	b := newTestSession(t, config)
	cmds := []Command{NewCommand(CmdRunSearch), NewCommand(CmdRegenerate),
		NewCommand(CmdRandomEndpoints), NewCommand(CmdRunSearch)}
	require.NoError(t, a.Tick(cmds))
	require.NoError(t, b.Tick(cmds))
	assert.Equal(t, a.Grid().String(), b.Grid().String())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestTickReportsFailures(t *testing.T) {
	config := syncConfig()
	config.Width, config.Height = 10, 10
	s := newTestSession(t, config)
	e := s.Tick([]Command{NewCommand(CmdRunSearch),
		NewCommand(CmdRandomEndpoints), MoveHighlight(DirRight)})
	assert.ErrorIs(t, e, ErrNoTransversibleCells)
	assert.True(t, s.Endpoints().Empty())
	assert.Equal(t, Open, s.Grid().Cell(0, 0).State())
}

func TestUnknownCommandIgnored(t *testing.T) {
	s := newTestSession(t, syncConfig())
	before := s.Grid().String()
	assert.NoError(t, s.Handle(Command{Kind: CommandKind(200)}))
	assert.NoError(t, s.Handle(NewCommand(CmdNone)))
	assert.Equal(t, before, s.Grid().String())
}
