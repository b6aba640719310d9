// This package gathers the settings for a maze session before any window is
// opened: defaults from the environment (optionally loaded from a .env file),
// and interactive prompts for whatever is still missing.
package console

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	maze "github.com/yalue/maze_search"
)

// Returned, wrapped, when a configuration can't be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Used for sizes that were never provided, when there's nobody to ask.
const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultCellWidth  = 20
	DefaultCellHeight = 20
)

// The environment variables read by LoadEnv.
const (
	EnvWidth        = "MAZE_WIDTH"
	EnvHeight       = "MAZE_HEIGHT"
	EnvCellWidth    = "MAZE_CELL_WIDTH"
	EnvCellHeight   = "MAZE_CELL_HEIGHT"
	EnvDiagonals    = "MAZE_DIAGONALS"
	EnvSeed         = "MAZE_SEED"
	EnvStepsPerTick = "MAZE_STEPS_PER_TICK"
)

// A session config along with which of its parts were actually provided.
// Anything not provided may be prompted for.
type Settings struct {
	maze.Config
	HaveWindow       bool
	HaveCell         bool
	HaveDiagonals    bool
	HaveStepsPerTick bool
}

// Loads the given .env files into the process environment (".env" if none
// are named), then reads the settings from the environment. Missing .env
// files are not an error, but malformed values are.
func LoadEnv(filenames ...string) (Settings, error) {
	e := godotenv.Load(filenames...)
	if e != nil {
		maze.Logger().Debug(".env file not loaded", "error", e)
	}
	return FromEnv()
}

// Reads the settings from the environment without loading any files.
func FromEnv() (Settings, error) {
	var toReturn Settings
	var e error
	toReturn.Width, toReturn.HaveWindow, e = getEnvAsInt(EnvWidth)
	if e != nil {
		return toReturn, e
	}
	var haveHeight bool
	toReturn.Height, haveHeight, e = getEnvAsInt(EnvHeight)
	if e != nil {
		return toReturn, e
	}
	toReturn.HaveWindow = toReturn.HaveWindow && haveHeight
	toReturn.CellWidth, toReturn.HaveCell, e = getEnvAsInt(EnvCellWidth)
	if e != nil {
		return toReturn, e
	}
	var haveCellHeight bool
	toReturn.CellHeight, haveCellHeight, e = getEnvAsInt(EnvCellHeight)
	if e != nil {
		return toReturn, e
	}
	toReturn.HaveCell = toReturn.HaveCell && haveCellHeight
	diagonals := getEnvWithDefault(EnvDiagonals, "")
	if diagonals != "" {
		toReturn.Diagonals, e = strconv.ParseBool(diagonals)
		if e != nil {
			return toReturn, fmt.Errorf("%w: %s must be a boolean: %s",
				ErrInvalidConfig, EnvDiagonals, e)
		}
		toReturn.HaveDiagonals = true
	}
	seed := getEnvWithDefault(EnvSeed, "0")
	toReturn.Seed, e = strconv.ParseInt(strings.TrimSpace(seed), 10, 64)
	if e != nil {
		return toReturn, fmt.Errorf("%w: %s must be an integer: %s",
			ErrInvalidConfig, EnvSeed, e)
	}
	toReturn.StepsPerTick, toReturn.HaveStepsPerTick, e = getEnvAsInt(
		EnvStepsPerTick)
	if e != nil {
		return toReturn, e
	}
	return toReturn, nil
}

// Retrieves the value of an environment variable or returns a default value
// if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Returns the integer value of an environment variable, and whether it was
// set at all. Returns an error if it's set but isn't an integer.
func getEnvAsInt(key string) (int, bool, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || (strings.TrimSpace(valueStr) == "") {
		return 0, false, nil
	}
	value, e := strconv.Atoi(strings.TrimSpace(valueStr))
	if e != nil {
		return 0, false, fmt.Errorf("%w: %s must be an integer: %s",
			ErrInvalidConfig, key, e)
	}
	return value, true, nil
}

// Fills in any sizes that weren't provided with the defaults.
func (s *Settings) ApplyDefaults() {
	if !s.HaveWindow {
		s.Width, s.Height = DefaultWidth, DefaultHeight
		s.HaveWindow = true
	}
	if !s.HaveCell {
		s.CellWidth, s.CellHeight = DefaultCellWidth, DefaultCellHeight
		s.HaveCell = true
	}
}

// Returns an error wrapping ErrInvalidConfig if the sizes can't hold at
// least one cell.
func Validate(config maze.Config) error {
	if (config.Width <= 0) || (config.Height <= 0) {
		return fmt.Errorf("%w: window size %dx%d must be positive",
			ErrInvalidConfig, config.Width, config.Height)
	}
	if (config.CellWidth <= 0) || (config.CellHeight <= 0) {
		return fmt.Errorf("%w: cell size %dx%d must be positive",
			ErrInvalidConfig, config.CellWidth, config.CellHeight)
	}
	if (config.CellWidth > config.Width) ||
		(config.CellHeight > config.Height) {
		return fmt.Errorf("%w: cell size %dx%d is bigger than the %dx%d "+
			"window", ErrInvalidConfig, config.CellWidth, config.CellHeight,
			config.Width, config.Height)
	}
	return nil
}
