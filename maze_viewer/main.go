// This defines an interactive window for carving mazes and watching A*
// search them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	maze "github.com/yalue/maze_search"
	"github.com/yalue/maze_search/console"
)

const defaultStepsPerTick = 20

func run() int {
	var width, height, cellWidth, cellHeight, stepsPerTick int
	var randomSeed int64
	var diagonals, noPrompt, hideStatus, showFPS, verbose bool
	var envFile string
	flag.IntVar(&width, "width", console.DefaultWidth,
		"The width of the window, in pixels.")
	flag.IntVar(&height, "height", console.DefaultHeight,
		"The height of the window, in pixels.")
	flag.IntVar(&cellWidth, "cell_width", console.DefaultCellWidth,
		"The width of a single maze cell, in pixels.")
	flag.IntVar(&cellHeight, "cell_height", console.DefaultCellHeight,
		"The height of a single maze cell, in pixels.")
	flag.BoolVar(&diagonals, "diagonals", false,
		"If set, allows moving between diagonally adjacent cells.")
	flag.Int64Var(&randomSeed, "random_seed", -1,
		"If positive, specifies the random seed to use.")
	flag.IntVar(&stepsPerTick, "steps_per_tick", defaultStepsPerTick,
		"The number of carve or search steps to run per frame. If 0, mazes "+
			"and paths appear all at once.")
	flag.StringVar(&envFile, "env_file", ".env",
		"A file of environment variables providing default settings.")
	flag.BoolVar(&noPrompt, "no_prompt", false,
		"If set, never prompt for missing settings.")
	flag.BoolVar(&hideStatus, "hide_status", false,
		"If set, don't draw the status line.")
	flag.BoolVar(&showFPS, "show_fps", false,
		"If set, draws the frame rate in the top-left corner.")
	flag.BoolVar(&verbose, "verbose", false,
		"If set, logs debug messages to stderr.")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	maze.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level})))

	settings, e := console.LoadEnv(envFile)
	if e != nil {
		fmt.Printf("Error reading settings: %s\n", e)
		return 1
	}
	// Flags given on the command line override the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width", "height":
			settings.Width, settings.Height = width, height
			settings.HaveWindow = true
		case "cell_width", "cell_height":
			settings.CellWidth, settings.CellHeight = cellWidth, cellHeight
			settings.HaveCell = true
		case "diagonals":
			settings.Diagonals = diagonals
			settings.HaveDiagonals = true
		case "random_seed":
			settings.Seed = randomSeed
		case "steps_per_tick":
			settings.StepsPerTick = stepsPerTick
			settings.HaveStepsPerTick = true
		}
	})
	if !settings.HaveStepsPerTick {
		settings.StepsPerTick = stepsPerTick
	}
	if !noPrompt && console.IsInteractive(os.Stdin) {
		settings, e = console.NewPrompter(os.Stdin, os.Stdout).Complete(settings)
	} else {
		settings.ApplyDefaults()
		e = console.Validate(settings.Config)
	}
	if e != nil {
		fmt.Printf("Invalid settings: %s\n", e)
		return 1
	}

	session, e := maze.NewSession(settings.Config)
	if e != nil {
		fmt.Printf("Failed creating maze: %s\n", e)
		return 1
	}
	r, e := newRenderer()
	if e != nil {
		fmt.Printf("%s\n", e)
		return 1
	}
	console.PrintControls(os.Stdout)

	ebiten.SetWindowSize(settings.Width, settings.Height)
	ebiten.SetWindowTitle("Maze Search")
	ebiten.SetTPS(60)
	e = ebiten.RunGame(&game{
		session:    session,
		renderer:   r,
		showStatus: !hideStatus,
		showFPS:    showFPS,
	})
	if (e != nil) && !errors.Is(e, ebiten.Termination) {
		fmt.Printf("Error running the maze window: %s\n", e)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
