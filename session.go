package maze

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/google/uuid"
)

// The Session's two modes.
type Mode uint8

const (
	// The maze is carved by the generator.
	ModeAuto Mode = iota
	// Generation is suspended and the user paints walls and passages.
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeManual:
		return "manual"
	}
	return fmt.Sprintf("Unknown Mode: %d", uint8(m))
}

// The mode's transition function: returns the mode after handling a command
// of the given kind.
func (m Mode) next(kind CommandKind) Mode {
	if kind != CmdToggleMode {
		return m
	}
	if m == ModeAuto {
		return ModeManual
	}
	return ModeAuto
}

// Settings for a Session. Front ends are expected to validate these.
type Config struct {
	// The size of the drawing area, in pixels.
	Width  int
	Height int
	// The size of one cell, in pixels.
	CellWidth  int
	CellHeight int
	// Allow moving between diagonally adjacent cells.
	Diagonals bool
	// The generator's random seed. Not positive means time-based.
	Seed int64
	// The number of carve or search iterations run per call to Tick. If this
	// isn't positive, carving and searching run to completion as soon as
	// they're requested.
	StepsPerTick int
}

// Coordinates a grid, its generator, its endpoints and at most one running
// algorithm (a carve or a search), driven by Commands. Sessions aren't safe
// for concurrent use; everything happens on the caller's goroutine.
type Session struct {
	id        uuid.UUID
	config    Config
	mode      Mode
	generator *Generator
	grid      *Grid
	endpoints *StartEnd
	// The highlighted cell's coordinates, for keyboard-driven selection.
	highlight image.Point
	// At most one of these is non-nil at a time.
	carver *Carver
	search *Search
	// The route found by the last completed search.
	lastPath  []*Cell
	lastFound bool
	quit      bool
}

// Handlers for each kind of command. Kinds without a handler are ignored.
var commandHandlers = [commandKindCount]func(s *Session, cmd Command) error{
	CmdRegenerate:         (*Session).handleRegenerate,
	CmdToggleMode:         (*Session).handleToggleMode,
	CmdRandomEndpoints:    (*Session).handleRandomEndpoints,
	CmdRunSearch:          (*Session).handleRunSearch,
	CmdHaltSearch:         (*Session).handleHaltSearch,
	CmdClear:              (*Session).handleClear,
	CmdClearKeepEndpoints: (*Session).handleClearKeepEndpoints,
	CmdSelectCell:         (*Session).handleSelectCell,
	CmdSelectHighlighted:  (*Session).handleSelectHighlighted,
	CmdMoveHighlight:      (*Session).handleMoveHighlight,
	CmdPaintWall:          (*Session).handlePaint,
	CmdPaintOpen:          (*Session).handlePaint,
	CmdQuit:               (*Session).handleQuit,
}

// Commands that may still be handled while a maze is being carved.
var allowedWhileCarving = [commandKindCount]bool{
	CmdRegenerate:    true,
	CmdToggleMode:    true,
	CmdHaltSearch:    true,
	CmdMoveHighlight: true,
	CmdQuit:          true,
}

// Creates a session in ModeAuto, and starts carving its first maze. Returns
// an error wrapping ErrDegenerateGrid if the config doesn't fit a single
// cell.
func NewSession(config Config) (*Session, error) {
	toReturn := &Session{
		id:        uuid.New(),
		config:    config,
		mode:      ModeAuto,
		generator: NewGenerator(config.Seed),
	}
	e := toReturn.regenerate()
	if e != nil {
		return nil, e
	}
	return toReturn, nil
}

func (s *Session) log() *slog.Logger {
	return Logger().With("session", s.id.String())
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Config() Config {
	return s.config
}

func (s *Session) Mode() Mode {
	return s.mode
}

// Returns the current grid. Regenerating replaces it, so don't hold on to
// it across calls to Tick.
func (s *Session) Grid() *Grid {
	return s.grid
}

func (s *Session) Endpoints() *StartEnd {
	return s.endpoints
}

func (s *Session) Generator() *Generator {
	return s.generator
}

// Returns the highlighted cell.
func (s *Session) Highlight() *Cell {
	return s.grid.Cell(s.highlight.X, s.highlight.Y)
}

// Returns true while a maze is being carved step by step.
func (s *Session) Carving() bool {
	return s.carver != nil
}

// Returns true while a search is running step by step.
func (s *Session) Searching() bool {
	return s.search != nil
}

// Returns the running search, or nil.
func (s *Session) ActiveSearch() *Search {
	return s.search
}

// Returns the route found by the most recent search that finished, and
// whether that search reached its goal.
func (s *Session) LastPath() ([]*Cell, bool) {
	return s.lastPath, s.lastFound
}

// Returns true once a quit command has been handled.
func (s *Session) Quitting() bool {
	return s.quit
}

// Returns a one-line summary for status displays.
func (s *Session) Status() string {
	activity := "idle"
	switch {
	case s.carver != nil:
		activity = "carving"
	case s.search != nil:
		activity = fmt.Sprintf("searching (%d expanded)", s.search.Expanded())
	case s.lastFound:
		activity = fmt.Sprintf("path length %d", len(s.lastPath))
	}
	return fmt.Sprintf("%s | %dx%d | seed %d | %s", s.mode, s.grid.cols,
		s.grid.rows, s.generator.Seed(), activity)
}

// Carries out a single command. Commands that don't apply right now, such as
// painting in ModeAuto or selecting a wall, are silently ignored.
func (s *Session) Handle(cmd Command) error {
	if (cmd.Kind >= commandKindCount) || (commandHandlers[cmd.Kind] == nil) {
		return nil
	}
	if (s.carver != nil) && !allowedWhileCarving[cmd.Kind] {
		return nil
	}
	s.log().Debug("handling command", "command", cmd.Kind.String(),
		"mode", s.mode.String())
	return commandHandlers[cmd.Kind](s, cmd)
}

// Handles the given commands in order, then advances the running algorithm
// by up to Config.StepsPerTick iterations. Front ends call this once per
// frame with whatever input arrived since the last frame; this is the only
// place the running algorithm gives way to input. A failing command doesn't
// stop the others. The returned error joins every failure.
func (s *Session) Tick(cmds []Command) error {
	var errs []error
	for _, cmd := range cmds {
		e := s.Handle(cmd)
		if e != nil {
			s.log().Warn("command failed", "command", cmd.Kind.String(),
				"error", e)
			errs = append(errs, e)
		}
		if s.quit {
			break
		}
	}
	s.advance()
	return errors.Join(errs...)
}

// Runs the active carve or search for one tick's worth of steps.
func (s *Session) advance() {
	steps := s.config.StepsPerTick
	if s.carver != nil {
		for i := 0; i < steps; i++ {
			if !s.carver.Step() {
				break
			}
		}
		if s.carver.Done() {
			s.carver = nil
			s.log().Info("maze ready", "info", s.generator.GetInfo())
		}
		return
	}
	if s.search != nil {
		for i := 0; i < steps; i++ {
			if !s.search.Step() {
				break
			}
		}
		if s.search.Done() {
			s.finishSearch(s.search.Path(), s.search.Found())
			s.search = nil
		}
	}
}

// Replaces the grid with a freshly carved one of the same size.
func (s *Session) regenerate() error {
	s.carver = nil
	s.search = nil
	grid, e := NewGrid(s.config.Width, s.config.Height, s.config.CellWidth,
		s.config.CellHeight, s.config.Diagonals)
	if e != nil {
		return fmt.Errorf("error generating maze: %w", e)
	}
	s.grid = grid
	s.endpoints = NewStartEnd(grid)
	s.lastPath = nil
	s.lastFound = false
	s.clampHighlight()
	carver := s.generator.NewCarver(grid)
	if s.config.StepsPerTick > 0 {
		s.carver = carver
		return nil
	}
	e = carver.Run(context.Background())
	if e != nil {
		return fmt.Errorf("error generating maze: %w", e)
	}
	s.log().Info("maze ready", "info", s.generator.GetInfo())
	return nil
}

func (s *Session) clampHighlight() {
	s.highlight.X = min(max(s.highlight.X, 0), s.grid.cols-1)
	s.highlight.Y = min(max(s.highlight.Y, 0), s.grid.rows-1)
}

// Stops a running search, leaving its paint on the grid.
func (s *Session) haltSearch() {
	if s.search == nil {
		return
	}
	s.log().Info("search halted", "expanded", s.search.Expanded())
	s.search = nil
}

// Records the outcome of a search that ran to the end.
func (s *Session) finishSearch(path []*Cell, found bool) {
	s.lastPath = path
	s.lastFound = found
	if !found {
		s.log().Info("no path found")
		return
	}
	s.log().Info("path found", "length", len(path),
		"cost", PathCost(s.endpoints.Start(), path))
}

// Removes the previous search's paint.
func (s *Session) clearSearch() {
	s.haltSearch()
	s.grid.Reopen(true)
	s.lastPath = nil
	s.lastFound = false
}

func (s *Session) handleRegenerate(Command) error {
	return s.regenerate()
}

func (s *Session) handleToggleMode(cmd Command) error {
	next := s.mode.next(cmd.Kind)
	if next == s.mode {
		return nil
	}
	s.mode = next
	s.log().Info("mode changed", "mode", next.String())
	if next == ModeAuto {
		return s.regenerate()
	}
	// Start free-drawing on a blank canvas.
	s.carver = nil
	s.clearSearch()
	s.endpoints.Reset()
	s.grid.Fill(Open)
	return nil
}

func (s *Session) handleRandomEndpoints(Command) error {
	s.clearSearch()
	return s.endpoints.Randomize(s.generator.Rand())
}

func (s *Session) handleRunSearch(Command) error {
	s.clearSearch()
	if !s.endpoints.Complete() {
		e := s.endpoints.Randomize(s.generator.Rand())
		if e != nil {
			return fmt.Errorf("error starting search: %w", e)
		}
	}
	start, end := s.endpoints.Start(), s.endpoints.End()
	if s.config.StepsPerTick > 0 {
		s.search = NewSearch(s.grid, start, end)
		return nil
	}
	path, e := NewPathFinder(s.grid).FindPath(context.Background(), start, end)
	if e != nil {
		return fmt.Errorf("error searching: %w", e)
	}
	s.finishSearch(path, path != nil)
	return nil
}

func (s *Session) handleHaltSearch(Command) error {
	s.haltSearch()
	return nil
}

func (s *Session) handleClear(Command) error {
	s.clearSearch()
	s.endpoints.Reset()
	return nil
}

func (s *Session) handleClearKeepEndpoints(Command) error {
	s.clearSearch()
	return nil
}

// Changing the endpoints invalidates a running search, so it's halted.
func (s *Session) selectCell(c *Cell) {
	if (c == nil) || (c.State() != Open) {
		return
	}
	s.haltSearch()
	s.endpoints.Progress(c)
}

func (s *Session) handleSelectCell(cmd Command) error {
	c, _ := s.grid.CellAt(cmd.Point.X, cmd.Point.Y)
	s.selectCell(c)
	return nil
}

func (s *Session) handleSelectHighlighted(Command) error {
	s.selectCell(s.Highlight())
	return nil
}

func (s *Session) handleMoveHighlight(cmd Command) error {
	s.highlight = s.highlight.Add(cmd.Direction.Offset())
	s.clampHighlight()
	return nil
}

func (s *Session) handlePaint(cmd Command) error {
	if s.mode != ModeManual {
		return nil
	}
	c := s.Highlight()
	if cmd.Pointer {
		c, _ = s.grid.CellAt(cmd.Point.X, cmd.Point.Y)
	}
	// Endpoints can only be removed by clearing them.
	if (c == nil) || c.IsTerminator() {
		return nil
	}
	target := Wall
	if cmd.Kind == CmdPaintOpen {
		target = Open
	}
	if c.State() == target {
		return nil
	}
	s.haltSearch()
	s.grid.Mark(c, target)
	return nil
}

func (s *Session) handleQuit(Command) error {
	s.haltSearch()
	s.carver = nil
	s.quit = true
	return nil
}
