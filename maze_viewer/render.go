package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	maze "github.com/yalue/maze_search"
	"golang.org/x/image/font/gofont/goregular"
)

const statusFontSize = 14

// Keeps a copy of the grid on the GPU, and only re-uploads it when the grid
// reports a change.
type renderer struct {
	// The grid the canvas was last drawn from.
	grid   *maze.Grid
	pixels *image.RGBA
	canvas *ebiten.Image
	face   *text.GoTextFace
}

func newRenderer() (*renderer, error) {
	source, e := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if e != nil {
		return nil, fmt.Errorf("error loading status font: %w", e)
	}
	return &renderer{
		face: &text.GoTextFace{
			Source: source,
			Size:   statusFontSize,
		},
	}, nil
}

// Brings the canvas up to date with the grid. A new grid (after
// regenerating) always gets a full redraw.
func (r *renderer) refresh(grid *maze.Grid) {
	dirty := grid.ConsumeDirty()
	if grid != r.grid {
		bounds := grid.Bounds()
		if (r.canvas == nil) || (r.pixels.Bounds() != bounds) {
			if r.canvas != nil {
				r.canvas.Deallocate()
			}
			r.pixels = image.NewRGBA(bounds)
			r.canvas = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		}
		r.grid = grid
		dirty = true
	}
	if !dirty {
		return
	}
	grid.Rasterize(r.pixels)
	r.canvas.WritePixels(r.pixels.Pix)
}

// Outlines the highlighted cell.
func drawHighlight(screen *ebiten.Image, c *maze.Cell) {
	if c == nil {
		return
	}
	b := c.Bounds
	strokeWidth := float32(max(1, min(b.Dx(), b.Dy())/5))
	vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y),
		float32(b.Dx()), float32(b.Dy()), strokeWidth, maze.HighlightColor,
		false)
}

// Draws the status line in the bottom-left corner, on a dark backing so it
// stays readable over any cell color.
func (r *renderer) drawStatus(screen *ebiten.Image, status string) {
	width, height := text.Measure(status, r.face, 0)
	screenHeight := float64(screen.Bounds().Dy())
	y := screenHeight - height - 4
	vector.DrawFilledRect(screen, 0, float32(y-2), float32(width+8),
		float32(height+6), color.RGBA{0, 0, 0, 180}, false)
	op := &text.DrawOptions{}
	op.GeoM.Translate(4, y)
	op.ColorScale.ScaleWithColor(maze.HighlightColor)
	text.Draw(screen, status, r.face, op)
}

func drawFPS(screen *ebiten.Image) {
	msg := fmt.Sprintf("TPS: %0.1f FPS: %0.1f", ebiten.ActualTPS(),
		ebiten.ActualFPS())
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}
