// Package snake holds the snake's body and its movement and collision rules.
package snake

import "github.com/tomz197/snake/internal/grid"

// Snake is an ordered body of cells, head first.
// The body always has at least one segment.
type Snake struct {
	body      []grid.Position
	direction grid.Direction
	pending   grid.Direction // Applied at the start of the next Move
}

// New creates the starting snake: three segments at (10,10),(9,10),(8,10) heading right.
func New() *Snake {
	return FromBody([]grid.Position{
		{X: 10, Y: 10},
		{X: 9, Y: 10},
		{X: 8, Y: 10},
	}, grid.Right)
}

// FromBody creates a snake with the given body (head first) and direction.
// The body is copied. It panics if body is empty.
func FromBody(body []grid.Position, dir grid.Direction) *Snake {
	if len(body) == 0 {
		panic("snake: empty body")
	}
	b := make([]grid.Position, len(body))
	copy(b, body)
	return &Snake{
		body:      b,
		direction: dir,
		pending:   dir,
	}
}

// SetDirection queues d for the next move unless it is the reverse of the current direction.
// Reversals are silently ignored.
func (s *Snake) SetDirection(d grid.Direction) {
	if d == s.direction.Reverse() {
		return
	}
	s.pending = d
}

// Move applies the pending direction, pushes a new head one cell ahead and
// removes the last segment, which it returns.
func (s *Snake) Move() grid.Position {
	s.direction = s.pending
	head := s.body[0].Step(s.direction)

	s.body = append(s.body, grid.Position{})
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = head

	tail := s.body[len(s.body)-1]
	s.body = s.body[:len(s.body)-1]
	return tail
}

// Grow appends a copy of the tail. The next Move truncates the copy instead of a real segment.
func (s *Snake) Grow() {
	s.body = append(s.body, s.body[len(s.body)-1])
}

// CheckCollision reports whether the head left the size x size field or overlaps another segment.
func (s *Snake) CheckCollision(size int) bool {
	head := s.body[0]
	if !head.Inside(size) {
		return true
	}
	for _, seg := range s.body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// Head returns the first segment.
func (s *Snake) Head() grid.Position {
	return s.body[0]
}

// Tail returns the last segment.
func (s *Snake) Tail() grid.Position {
	return s.body[len(s.body)-1]
}

// Len returns the number of segments, including a pending growth copy.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []grid.Position {
	b := make([]grid.Position, len(s.body))
	copy(b, s.body)
	return b
}

// Each calls fn for every segment in order, head first, without copying.
func (s *Snake) Each(fn func(i int, p grid.Position)) {
	for i, p := range s.body {
		fn(i, p)
	}
}

// Occupies reports whether any segment lies on p.
func (s *Snake) Occupies(p grid.Position) bool {
	for _, seg := range s.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Direction returns the direction used by the last Move.
func (s *Snake) Direction() grid.Direction {
	return s.direction
}

// Pending returns the direction the next Move will use.
func (s *Snake) Pending() grid.Direction {
	return s.pending
}
