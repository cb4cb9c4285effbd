package config

import (
	"errors"
	"fmt"
	"time"
)

// Play field
const (
	GridSize    = 20 // Cells per side
	MinGridSize = 12 // Starting snake sits at x=8..10 heading right
)

// Timing
const (
	TickInterval = 150 * time.Millisecond
)

// Scoring
const (
	ScoreIncrement = 10 // Points per food eaten
)

// Rendering
const (
	CanvasSize       = 400 // Browser/desktop canvas edge in pixels (tile = CanvasSize / GridSize)
	TerminalTileSize = 3   // Logical pixels per cell on the terminal canvas
)

// Terminal host
const (
	ResizePollInterval = 250 * time.Millisecond
)

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the tunable parameters of a game session and its hosts.
type Settings struct {
	GridSize         int
	TickInterval     time.Duration
	ScoreIncrement   int
	CanvasSize       int
	TerminalTileSize int
	LogLevel         string
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		GridSize:         GridSize,
		TickInterval:     TickInterval,
		ScoreIncrement:   ScoreIncrement,
		CanvasSize:       CanvasSize,
		TerminalTileSize: TerminalTileSize,
		LogLevel:         "info",
	}
}

// FromEnv returns the default settings overridden by SNAKE_* environment variables.
func FromEnv() (Settings, error) {
	s := Default()
	var err error

	if s.GridSize, err = GetEnvInt("SNAKE_GRID_SIZE", s.GridSize); err != nil {
		return s, err
	}
	if s.TickInterval, err = GetEnvMillis("SNAKE_TICK_MS", s.TickInterval); err != nil {
		return s, err
	}
	if s.ScoreIncrement, err = GetEnvInt("SNAKE_SCORE_INCREMENT", s.ScoreIncrement); err != nil {
		return s, err
	}
	if s.CanvasSize, err = GetEnvInt("SNAKE_CANVAS_SIZE", s.CanvasSize); err != nil {
		return s, err
	}
	if s.TerminalTileSize, err = GetEnvInt("SNAKE_TILE_SIZE", s.TerminalTileSize); err != nil {
		return s, err
	}
	s.LogLevel = GetEnv("SNAKE_LOG_LEVEL", s.LogLevel)

	return s, s.Validate()
}

// Validate checks that every parameter is usable.
func (s Settings) Validate() error {
	switch {
	case s.GridSize < MinGridSize:
		return fmt.Errorf("%w: grid size %d, need at least %d for the starting snake", ErrInvalidSettings, s.GridSize, MinGridSize)
	case s.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval %v must be positive", ErrInvalidSettings, s.TickInterval)
	case s.ScoreIncrement < 0:
		return fmt.Errorf("%w: score increment %d is negative", ErrInvalidSettings, s.ScoreIncrement)
	case s.CanvasSize < s.GridSize:
		return fmt.Errorf("%w: canvas size %d smaller than grid size %d", ErrInvalidSettings, s.CanvasSize, s.GridSize)
	case s.TerminalTileSize < 1:
		return fmt.Errorf("%w: terminal tile size %d, need at least 1", ErrInvalidSettings, s.TerminalTileSize)
	}
	return nil
}
