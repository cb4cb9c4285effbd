package game

import (
	"math/rand"

	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/snake"
)

// maxFoodAttempts bounds rejection sampling before falling back to enumerating free cells.
const maxFoodAttempts = 64

// foodPlacer picks food cells that do not overlap the snake.
type foodPlacer struct {
	size int
	rng  *rand.Rand
	occ  *grid.Occupancy
}

func newFoodPlacer(size int, rng *rand.Rand) *foodPlacer {
	return &foodPlacer{
		size: size,
		rng:  rng,
		occ:  grid.NewOccupancy(size),
	}
}

// place returns a uniformly random free cell. ok is false when the snake covers the whole field.
func (f *foodPlacer) place(s *snake.Snake) (p grid.Position, ok bool) {
	for range maxFoodAttempts {
		p = grid.Position{X: f.rng.Intn(f.size), Y: f.rng.Intn(f.size)}
		if !s.Occupies(p) {
			return p, true
		}
	}

	f.occ.Clear()
	s.Each(func(_ int, seg grid.Position) {
		f.occ.Mark(seg)
	})
	free := f.occ.FreeCount()
	if free == 0 {
		return grid.Position{}, false
	}
	return f.occ.NthFree(f.rng.Intn(free))
}
