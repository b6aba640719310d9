package main

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	maze "github.com/yalue/maze_search"
)

// Satisfies ebiten.Game. Update feeds input to the session and advances it;
// Draw shows whatever the grid currently looks like.
type game struct {
	session    *maze.Session
	renderer   *renderer
	showStatus bool
	showFPS    bool
}

func (g *game) Update() error {
	e := g.session.Tick(pollCommands())
	// The session already logged these. Only a grid that can't be built at
	// all is worth stopping for.
	if errors.Is(e, maze.ErrDegenerateGrid) {
		return e
	}
	if g.session.Quitting() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.refresh(g.session.Grid())
	screen.DrawImage(g.renderer.canvas, nil)
	if g.session.Mode() == maze.ModeManual {
		drawHighlight(screen, g.session.Highlight())
	}
	if g.showStatus {
		g.renderer.drawStatus(screen, g.session.Status())
	}
	if g.showFPS {
		drawFPS(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	config := g.session.Config()
	return config.Width, config.Height
}
