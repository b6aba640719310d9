package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

// Returns true if f is connected to a terminal, meaning someone can answer
// prompts.
func IsInteractive(f *os.File) bool {
	return terminal.IsTerminal(int(f.Fd()))
}

// Asks questions on one stream and reads answers, one per line, from
// another. Malformed answers are explained and asked again.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Prints the prompt and returns the next line of input. Returns
// io.ErrUnexpectedEOF if the input runs out first.
func (p *Prompter) ask(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s =>", prompt)
	if !p.scanner.Scan() {
		e := p.scanner.Err()
		if e == nil {
			e = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("error reading answer: %w", e)
	}
	return p.scanner.Text(), nil
}

// Parses a "width height" answer. Returns a message for the user if it's
// malformed.
func parseDimensions(answer string) (int, int, string) {
	args := strings.Fields(answer)
	if len(args) != 2 {
		return 0, 0, "Incorrect number of args. Try again"
	}
	w, e1 := strconv.Atoi(args[0])
	h, e2 := strconv.Atoi(args[1])
	if (e1 != nil) || (e2 != nil) {
		return 0, 0, "Either width or height is not a number. No decimals " +
			"or chars please"
	}
	if (w <= 0) || (h <= 0) {
		return 0, 0, "Width and height must be positive and non-zero"
	}
	return w, h, ""
}

// Asks for the window size until a usable one is given.
func (p *Prompter) WindowSize() (int, int, error) {
	for {
		answer, e := p.ask("Window size? Separate width and height by space " +
			"eg. 1200 800")
		if e != nil {
			return 0, 0, e
		}
		w, h, problem := parseDimensions(answer)
		if problem == "" {
			return w, h, nil
		}
		fmt.Fprintf(p.out, "%s\n\n", problem)
	}
}

// Asks for the cell size until one that fits in the given window is given.
func (p *Prompter) CellSize(windowWidth, windowHeight int) (int, int, error) {
	for {
		answer, e := p.ask("Cell dimensions? Separate width and height with " +
			"space eg. 12 12")
		if e != nil {
			return 0, 0, e
		}
		w, h, problem := parseDimensions(answer)
		if (problem == "") && ((w > windowWidth) || (h > windowHeight)) {
			problem = fmt.Sprintf("Cell dimensions cannot be greater than "+
				"screen dimensions of %dx%d", windowWidth, windowHeight)
		}
		if problem == "" {
			return w, h, nil
		}
		fmt.Fprintf(p.out, "%s\n\n", problem)
	}
}

// Asks a yes or no question. An empty answer means no.
func (p *Prompter) YesNo(prompt string) (bool, error) {
	for {
		answer, e := p.ask(prompt + " Y/N (Default No)")
		if e != nil {
			return false, e
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		fmt.Fprintf(p.out, "Please answer y or n\n")
	}
}

// Prompts for every part of the settings that wasn't provided, then
// validates the result.
func (p *Prompter) Complete(s Settings) (Settings, error) {
	var e error
	if !s.HaveWindow {
		s.Width, s.Height, e = p.WindowSize()
		if e != nil {
			return s, e
		}
		s.HaveWindow = true
	}
	if !s.HaveCell {
		s.CellWidth, s.CellHeight, e = p.CellSize(s.Width, s.Height)
		if e != nil {
			return s, e
		}
		s.HaveCell = true
	}
	if !s.HaveDiagonals {
		s.Diagonals, e = p.YesNo("Would you like to give A* the ability to " +
			"move diagonally?")
		if e != nil {
			return s, e
		}
		s.HaveDiagonals = true
	}
	return s, Validate(s.Config)
}
