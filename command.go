package maze

import (
	"fmt"
	"image"
)

// Identifies what a Command asks the Session to do.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdRegenerate
	CmdToggleMode
	CmdRandomEndpoints
	CmdRunSearch
	CmdHaltSearch
	CmdClear
	CmdClearKeepEndpoints
	CmdSelectCell
	CmdSelectHighlighted
	CmdMoveHighlight
	CmdPaintWall
	CmdPaintOpen
	CmdQuit
	commandKindCount
)

// The token for each kind of command, as used by ParseCommand.
var commandTokens = [commandKindCount]string{
	CmdNone:               "none",
	CmdRegenerate:         "regenerate",
	CmdToggleMode:         "toggle-mode",
	CmdRandomEndpoints:    "random-endpoints",
	CmdRunSearch:          "run-search",
	CmdHaltSearch:         "halt-search",
	CmdClear:              "clear",
	CmdClearKeepEndpoints: "clear-keep-endpoints",
	CmdSelectCell:         "select-cell",
	CmdSelectHighlighted:  "select-highlighted",
	CmdMoveHighlight:      "move-highlight",
	CmdPaintWall:          "paint-wall",
	CmdPaintOpen:          "paint-open",
	CmdQuit:               "quit",
}

func (k CommandKind) String() string {
	if k < commandKindCount {
		return commandTokens[k]
	}
	return fmt.Sprintf("Unknown CommandKind: %d", uint8(k))
}

// Returns the kind of command named by token, e.g. "run-search". Returns
// false if the token isn't recognized.
func ParseCommand(token string) (CommandKind, bool) {
	for i, t := range commandTokens {
		if (CommandKind(i) != CmdNone) && (t == token) {
			return CommandKind(i), true
		}
	}
	return CmdNone, false
}

// A direction to move the highlighted cell in.
type Direction uint8

// The order matches cardinalOffsets.
const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("Unknown Direction: %d", uint8(d))
}

// Returns the change in cell coordinates for moving one step in d.
func (d Direction) Offset() image.Point {
	if int(d) < len(cardinalOffsets) {
		return cardinalOffsets[d]
	}
	return image.Point{}
}

// A single request from the user, produced by whatever polls the input.
type Command struct {
	Kind CommandKind
	// A pixel position. Used by CmdSelectCell, and by the paint commands if
	// Pointer is set.
	Point image.Point
	// If set, paint commands apply to the cell under Point instead of the
	// highlighted cell.
	Pointer bool
	// Used by CmdMoveHighlight.
	Direction Direction
}

// Returns a command with no arguments.
func NewCommand(kind CommandKind) Command {
	return Command{Kind: kind}
}

// Returns a command that selects the cell under the given pixel.
func SelectCellAt(x, y int) Command {
	return Command{Kind: CmdSelectCell, Point: image.Pt(x, y), Pointer: true}
}

// Returns a command painting the cell under the given pixel. kind must be
// CmdPaintWall or CmdPaintOpen.
func PaintAt(kind CommandKind, x, y int) Command {
	return Command{Kind: kind, Point: image.Pt(x, y), Pointer: true}
}

// Returns a command moving the highlighted cell one step.
func MoveHighlight(d Direction) Command {
	return Command{Kind: CmdMoveHighlight, Direction: d}
}
