package maze

import (
	"image"
	"image/color"
	"image/draw"
)

// The Grid satisfies go's image.Image interface, so it can be saved to a file
// or converted directly. Each cell is drawn as a solid box in its state's
// color.

func (g *Grid) ColorModel() color.Model {
	return color.RGBAModel
}

// Only covers whole cells, so this may be a little smaller than the pixel
// area the grid was built from.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.cols*g.cellWidth, g.rows*g.cellHeight)
}

func (g *Grid) At(x, y int) color.Color {
	// We delegate the color to the cell the pixel falls into.
	c, ok := g.CellAt(x, y)
	if !ok {
		return color.Transparent
	}
	return c.state.Color()
}

// Paints every cell into dst as a solid box. This is a lot faster than
// copying the grid pixel-by-pixel through At, and is what live renderers use
// every time the grid is dirty. dst should cover g.Bounds().
func (g *Grid) Rasterize(dst draw.Image) {
	for i := range g.cells {
		c := &(g.cells[i])
		fill := image.NewUniform(c.state.Color())
		draw.Draw(dst, c.Bounds, fill, image.Point{}, draw.Src)
	}
}

// Satisfies the Image interface, surrounds an image with a solid-color border.
type imageBorder struct {
	pic         image.Image
	picBounds   image.Rectangle
	borderWidth int
	fillColor   color.Color
}

func (b *imageBorder) ColorModel() color.Model {
	return b.pic.ColorModel()
}

func (b *imageBorder) Bounds() image.Rectangle {
	tmp := b.picBounds
	w := b.borderWidth * 2
	return image.Rect(0, 0, tmp.Dx()+w, tmp.Dy()+w)
}

func (b *imageBorder) At(x, y int) color.Color {
	tmp := b.picBounds
	if (x < b.borderWidth) || (y < b.borderWidth) {
		return b.fillColor
	}
	if (x >= tmp.Dx()+b.borderWidth) || (y >= tmp.Dy()+b.borderWidth) {
		return b.fillColor
	}
	return b.pic.At(x-b.borderWidth+tmp.Min.X, y-b.borderWidth+tmp.Min.Y)
}

// Returns a new image, consisting of the given image surrounded by a border
// with the given width in pixels.
func AddImageBorder(pic image.Image, width int, fill color.Color) image.Image {
	return &imageBorder{
		pic:         pic,
		picBounds:   pic.Bounds(),
		borderWidth: width,
		fillColor:   fill,
	}
}
