// This defines a basic executable for generating an image of a maze, and
// optionally the route A* finds through it.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math/rand"
	"os"

	"github.com/yalue/image_utils"
	maze "github.com/yalue/maze_search"
)

const arrowLength = 16

// Returns 0 = left, 1 = up, 2 = right, and 3 = down. The given angle must be
// between 0 and 360, if it isn't this will simply return 2.
func angleToArrowDir(angle float32) int {
	if (angle > 45) && (angle <= 135) {
		return 1
	} else if (angle > 135) && (angle <= 225) {
		return 0
	} else if (angle > 225) && (angle < 315) {
		return 3
	}
	return 2
}

func getArrowForAngle(angle float32, arrowColor color.Color) image.Image {
	var tmp image.Image
	dir := angleToArrowDir(angle)
	if dir == 1 {
		tmp = image_utils.UpArrow(arrowColor)
	} else if dir == 0 {
		tmp = image_utils.LeftArrow(arrowColor)
	} else if dir == 3 {
		tmp = image_utils.DownArrow(arrowColor)
	} else {
		tmp = image_utils.RightArrow(arrowColor)
	}
	return tmp
}

// Returns an arrow pointing in the direction of the given angle, or at least
// as close to it as we can get. The given angle must be between 0 and 360
// (inclusive).
func getOutlinedArrow(angle float32, arrowColor color.Color) image.Image {
	outerArrow := image_utils.ResizeImage(getArrowForAngle(angle, arrowColor),
		arrowLength, arrowLength)
	innerArrow := image_utils.ResizeImage(getArrowForAngle(angle, color.White),
		arrowLength/2, arrowLength/2)
	toReturn := image_utils.NewCompositeImage()
	toReturn.AddImage(outerArrow, image.Pt(0, 0))
	toReturn.AddImage(innerArrow, image.Pt(arrowLength/4, arrowLength/4))
	return image_utils.ToRGBA(toReturn)
}

// If the tip of the arrow is supposed to be at the given pt, this returns
// the top-left where the square image returned by getOutlinedArrow should be
// drawn.
func getArrowTopLeft(pt image.Point, angle float32) image.Point {
	halfLength := arrowLength / 2
	switch angleToArrowDir(angle) {
	case 0:
		// Pointing left, so the arrow sits to the right of pt.
		return image.Pt(pt.X+1, pt.Y-halfLength)
	case 1:
		// Pointing up
		return image.Pt(pt.X-halfLength, pt.Y+1)
	case 2:
		// Pointing right
		return image.Pt(pt.X-arrowLength-1, pt.Y-halfLength)
	case 3:
		// Pointing down
		return image.Pt(pt.X-halfLength, pt.Y-arrowLength-1)
	}
	panic("Invalid arrow direction!")
}

// Returns the angle of an arrow that enters the cell from the nearest edge of
// the grid, along with the point on the cell's boundary where the arrow's tip
// belongs.
func getArrowForCell(g *maze.Grid, c *maze.Cell) (float32, image.Point) {
	b := c.Bounds
	distances := [4]int{
		c.X,                // left edge, arrow points right
		c.Y,                // top edge, arrow points down
		g.Cols() - 1 - c.X, // right edge, arrow points left
		g.Rows() - 1 - c.Y, // bottom edge, arrow points up
	}
	nearest := 0
	for i, d := range distances {
		if d < distances[nearest] {
			nearest = i
		}
	}
	midX := (b.Min.X + b.Max.X) / 2
	midY := (b.Min.Y + b.Max.Y) / 2
	switch nearest {
	case 0:
		return 0, image.Pt(b.Min.X, midY)
	case 1:
		return 270, image.Pt(midX, b.Min.Y)
	case 2:
		return 180, image.Pt(b.Max.X, midY)
	}
	return 90, image.Pt(midX, b.Max.Y)
}

// Adds "decorations" to the maze: a border, and arrows pointing at the start
// and end cells. Rasterizes the maze to an image.RGBA.
func drawMazeDecorations(g *maze.Grid, endpoints *maze.StartEnd) (*image.RGBA,
	error) {
	border := arrowLength + 2
	offset := image.Pt(border, border)
	decorated := image_utils.NewCompositeImage()
	mazePic := image_utils.ToRGBA(maze.AddImageBorder(g, border, color.White))
	e := decorated.AddImage(mazePic, image.Pt(0, 0))
	if e != nil {
		return nil, fmt.Errorf("Error setting base maze image: %w", e)
	}
	blueColor := color.RGBA{100, 120, 255, 255}
	greenColor := color.RGBA{40, 180, 70, 255}

	if endpoints.Start() != nil {
		angle, tip := getArrowForCell(g, endpoints.Start())
		startArrow := getOutlinedArrow(angle, greenColor)
		e = decorated.AddImage(startArrow,
			getArrowTopLeft(tip.Add(offset), angle))
		if e != nil {
			return nil, fmt.Errorf("Error adding start arrow: %w", e)
		}
	}
	if endpoints.End() != nil {
		angle, tip := getArrowForCell(g, endpoints.End())
		endArrow := getOutlinedArrow(angle, blueColor)
		e = decorated.AddImage(endArrow, getArrowTopLeft(tip.Add(offset),
			angle))
		if e != nil {
			return nil, fmt.Errorf("Error adding end arrow: %w", e)
		}
	}
	toReturn := image_utils.ToRGBA(decorated)
	return toReturn, nil
}

// Loads a template image, and picks the endpoints it marks.
func loadTemplate(filename string, cellSize int, diagonals bool,
	rng *rand.Rand) (*maze.Grid, *maze.StartEnd, error) {
	f, e := os.Open(filename)
	if e != nil {
		return nil, nil, fmt.Errorf("Error opening template image %s: %w",
			filename, e)
	}
	defer f.Close()
	pic, _, e := image.Decode(f)
	if e != nil {
		return nil, nil, fmt.Errorf("Error parsing template image %s: %w",
			filename, e)
	}
	tmpl, e := maze.NewGridFromTemplate(pic, cellSize, cellSize, diagonals)
	if e != nil {
		return nil, nil, e
	}
	endpoints, e := tmpl.PickEndpoints(rng)
	if e != nil {
		return nil, nil, fmt.Errorf("Error choosing endpoints: %w", e)
	}
	return tmpl.Grid, endpoints, nil
}

func run() int {
	var cellsWide, cellsHigh, cellSize, erodeAmount int
	var randomSeed int64
	var showSolution, showSearched, diagonals, verbose bool
	var outFilename, templateImage string
	flag.IntVar(&cellsWide, "cells_wide", 20,
		"The width of the maze, in grid cells.")
	flag.IntVar(&cellsHigh, "cells_high", 20,
		"The height of the maze, in grid cells.")
	flag.IntVar(&cellSize, "cell_size", 10,
		"The width and height of each grid cell, in pixels.")
	flag.IntVar(&erodeAmount, "erode_amount", 0,
		"The amount by which to \"erode\" small walls. Eroded mazes have "+
			"more than one route between cells.")
	flag.BoolVar(&diagonals, "diagonals", false,
		"If set, the solution may move between diagonally adjacent cells.")
	flag.Int64Var(&randomSeed, "random_seed", -1,
		"If positive, specifies the random seed to use.")
	flag.BoolVar(&showSolution, "show_solution", false,
		"If set, shows the solution of the maze.")
	flag.BoolVar(&showSearched, "show_searched", false,
		"If set along with show_solution, also shows every cell the search "+
			"looked at.")
	flag.StringVar(&outFilename, "output_file", "",
		"The name of the .png file to which the maze will be saved.")
	flag.StringVar(&templateImage, "template_image", "",
		"An optional path to a PNG-format image to use as the layout instead "+
			"of carving a maze. Black pixels are walls, green pixels are "+
			"possible starts and red pixels are possible ends. Will ignore "+
			"cells_wide and cells_high if used.")
	flag.BoolVar(&verbose, "verbose", false,
		"If set, logs debug messages to stderr.")
	flag.Parse()
	if (cellsWide < 1) || (cellsHigh < 1) || (cellSize < 1) ||
		(outFilename == "") {
		fmt.Println("Invalid or missing argument.")
		fmt.Println("Run with -help for more information.")
		return 1
	}
	if verbose {
		maze.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	generator := maze.NewGenerator(randomSeed)
	var g *maze.Grid
	var endpoints *maze.StartEnd
	var e error
	if templateImage != "" {
		g, endpoints, e = loadTemplate(templateImage, cellSize, diagonals,
			generator.Rand())
		if e != nil {
			fmt.Printf("Failed loading template: %s\n", e)
			return 1
		}
		fmt.Printf("Loaded %dx%d template %s OK.\n", g.Cols(), g.Rows(),
			templateImage)
	} else {
		g, e = generator.Generate(cellsWide*cellSize, cellsHigh*cellSize,
			cellSize, cellSize, diagonals)
		if e != nil {
			fmt.Printf("Failed generating maze: %s\n", e)
			return 1
		}
		fmt.Printf("Generated %s OK.\n", generator.GetInfo())
		endpoints = maze.NewStartEnd(g)
		e = endpoints.Randomize(generator.Rand())
		if e != nil {
			fmt.Printf("Failed choosing start and end: %s\n", e)
			return 1
		}
	}

	if erodeAmount > 0 {
		fmt.Printf("Eroding maze walls %d steps.\n", erodeAmount)
		for i := 0; i < erodeAmount; i++ {
			g.ErodeWalls()
		}
	}
	if showSolution {
		fmt.Printf("Finding solution to the maze.\n")
		path, e := maze.NewPathFinder(g).FindPath(context.Background(),
			endpoints.Start(), endpoints.End())
		if e != nil {
			fmt.Printf("Error finding solution: %s\n", e)
			return 1
		}
		if path == nil {
			fmt.Printf("The maze has no solution.\n")
		} else {
			fmt.Printf("Found a solution through %d cells, cost %.02f.\n",
				len(path), maze.PathCost(endpoints.Start(), path))
		}
		if !showSearched {
			for _, c := range g.Cells() {
				if c.State() == maze.Searched {
					g.Mark(c, maze.Open)
				}
			}
		}
	}
	finalPic, e := drawMazeDecorations(g, endpoints)
	if e != nil {
		fmt.Printf("Error adding maze decorations: %s\n", e)
		return 1
	}
	f, e := os.Create(outFilename)
	if e != nil {
		fmt.Printf("Error creating output file %s: %s\n", outFilename, e)
		return 1
	}
	defer f.Close()
	e = png.Encode(f, finalPic)
	if e != nil {
		fmt.Printf("Error writing image to %s: %s\n", outFilename, e)
		return 1
	}
	fmt.Printf("Image %s written OK.\n", outFilename)
	return 0
}

func main() {
	os.Exit(run())
}
