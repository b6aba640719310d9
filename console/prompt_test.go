package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestWindowSizeReprompts(t *testing.T) {
	p, out := newTestPrompter("1200\nwide tall\n0 800\n 1200   800 \n")
	w, h, e := p.WindowSize()
	require.NoError(t, e)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 800, h)
	text := out.String()
	assert.Equal(t, 4, strings.Count(text, "Window size?"))
	assert.Contains(t, text, "Incorrect number of args. Try again")
	assert.Contains(t, text, "Either width or height is not a number")
	assert.Contains(t, text, "must be positive and non-zero")
}

func TestCellSizeMustFit(t *testing.T) {
	p, out := newTestPrompter("20 900\n1.5 2\n20 20\n")
	w, h, e := p.CellSize(1200, 800)
	require.NoError(t, e)
	assert.Equal(t, 20, w)
	assert.Equal(t, 20, h)
	assert.Contains(t, out.String(),
		"Cell dimensions cannot be greater than screen dimensions of 1200x800")
}

func TestPromptEndOfInput(t *testing.T) {
	p, _ := newTestPrompter("1 2 3\n")
	_, _, e := p.WindowSize()
	assert.ErrorIs(t, e, io.ErrUnexpectedEOF)
}

func TestYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\nyes\n", true},
	}
	for _, tt := range tests {
		p, _ := newTestPrompter(tt.input)
		got, e := p.YesNo("Diagonals?")
		require.NoError(t, e, "%q", tt.input)
		assert.Equal(t, tt.want, got, "%q", tt.input)
	}
}

func TestCompleteOnlyAsksForMissing(t *testing.T) {
	s := Settings{HaveWindow: true, HaveDiagonals: true}
	s.Width, s.Height = 300, 200
	p, out := newTestPrompter("10 10\n")
	s, e := p.Complete(s)
	require.NoError(t, e)
	assert.Equal(t, 10, s.CellWidth)
	assert.Equal(t, 10, s.CellHeight)
	assert.NotContains(t, out.String(), "Window size?")
	assert.NotContains(t, out.String(), "diagonally")
}

func TestCompleteEverything(t *testing.T) {
	p, _ := newTestPrompter("640 480\n16 16\ny\n")
	s, e := p.Complete(Settings{})
	require.NoError(t, e)
	assert.Equal(t, 640, s.Width)
	assert.Equal(t, 480, s.Height)
	assert.Equal(t, 16, s.CellWidth)
	assert.True(t, s.Diagonals)
}

func TestCompleteValidatesProvidedValues(t *testing.T) {
	s := Settings{HaveWindow: true, HaveCell: true, HaveDiagonals: true}
	s.Width, s.Height, s.CellWidth, s.CellHeight = 10, 10, 20, 20
	p, _ := newTestPrompter("")
	_, e := p.Complete(s)
	assert.ErrorIs(t, e, ErrInvalidConfig)
}

func TestControls(t *testing.T) {
	var out bytes.Buffer
	PrintControls(&out)
	assert.Equal(t, Controls, out.String())
	assert.Contains(t, Controls, "m - Re-generate maze")
}
