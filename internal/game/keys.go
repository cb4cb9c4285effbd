package game

import (
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/input"
)

// keyDirections maps steering keys to directions. Keys are case sensitive.
var keyDirections = map[input.Key]grid.Direction{
	input.KeyArrowUp:    grid.Up,
	input.KeyArrowDown:  grid.Down,
	input.KeyArrowLeft:  grid.Left,
	input.KeyArrowRight: grid.Right,
	"w":                 grid.Up,
	"s":                 grid.Down,
	"a":                 grid.Left,
	"d":                 grid.Right,
}

// DirectionForKey returns the direction bound to k.
func DirectionForKey(k input.Key) (grid.Direction, bool) {
	d, ok := keyDirections[k]
	return d, ok
}

// IsStartKey reports whether k presses the start control.
func IsStartKey(k input.Key) bool {
	return k == input.KeyEnter || k == input.KeySpace
}
