package game

import (
	"fmt"

	"github.com/tomz197/snake/internal/grid"
)

// Draw renders the field: snake (head in its own colour), food and, after a
// collision, a shaded overlay with the game-over title.
// Cells are tile = width/gridSize pixels with a 1-pixel gap.
func (s *Session) Draw() error {
	width, height := s.surface.Size()
	tile := width / s.opts.GridSize

	s.surface.Clear()

	s.snake.Each(func(i int, p grid.Position) {
		c := BodyColor
		if i == 0 {
			c = HeadColor
		}
		s.surface.FillRect(p.X*tile, p.Y*tile, tile-1, tile-1, c)
	})

	s.surface.FillRect(s.food.X*tile, s.food.Y*tile, tile-1, tile-1, FoodColor)

	if s.phase == PhaseGameOver {
		s.surface.FillRect(0, 0, width, height, ShadeColor)
		s.surface.FillText(GameOverTitle, width/2, height/2, TextColor)
	}

	if err := s.surface.Present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}
