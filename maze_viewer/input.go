package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	maze "github.com/yalue/maze_search"
)

// Keys that produce a command with no arguments when first pressed.
var keyBindings = []struct {
	keys []ebiten.Key
	kind maze.CommandKind
}{
	{[]ebiten.Key{ebiten.KeyM}, maze.CmdRegenerate},
	{[]ebiten.Key{ebiten.KeyZ}, maze.CmdToggleMode},
	{[]ebiten.Key{ebiten.KeyP}, maze.CmdRandomEndpoints},
	{[]ebiten.Key{ebiten.KeyF}, maze.CmdRunSearch},
	{[]ebiten.Key{ebiten.KeyK}, maze.CmdHaltSearch},
	{[]ebiten.Key{ebiten.KeyC}, maze.CmdClear},
	{[]ebiten.Key{ebiten.KeyX}, maze.CmdClearKeepEndpoints},
	{[]ebiten.Key{ebiten.KeySpace}, maze.CmdSelectHighlighted},
	{[]ebiten.Key{ebiten.KeyV}, maze.CmdPaintWall},
	{[]ebiten.Key{ebiten.KeyB}, maze.CmdPaintOpen},
	{[]ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}, maze.CmdQuit},
}

// Keys that move the highlighted cell.
var moveBindings = []struct {
	keys      []ebiten.Key
	direction maze.Direction
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, maze.DirUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, maze.DirDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, maze.DirLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, maze.DirRight},
}

func anyKeyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Polls the keyboard and mouse, returning the commands for this frame in the
// order they should be handled. Movement comes before selection so that
// pressing an arrow key and space in the same frame selects the new cell.
func pollCommands() []maze.Command {
	toReturn := make([]maze.Command, 0, 4)
	for _, b := range moveBindings {
		if anyKeyJustPressed(b.keys) {
			toReturn = append(toReturn, maze.MoveHighlight(b.direction))
		}
	}
	for _, b := range keyBindings {
		if anyKeyJustPressed(b.keys) {
			toReturn = append(toReturn, maze.NewCommand(b.kind))
		}
	}
	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		toReturn = append(toReturn, maze.SelectCellAt(x, y))
	}
	// Walls can be drawn by dragging, so this doesn't wait for a new press.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		toReturn = append(toReturn, maze.PaintAt(maze.CmdPaintWall, x, y))
	}
	return toReturn
}
