package grid

// Occupancy is a square cell grid recording which cells are taken.
// The backing slice is reused between frames (Clear keeps its memory) to avoid allocations.
type Occupancy struct {
	size  int
	cells []bool // Flat slice: [y * size + x]
	taken int
}

// NewOccupancy creates an empty grid covering size x size cells.
func NewOccupancy(size int) *Occupancy {
	if size < 1 {
		size = 1
	}
	return &Occupancy{
		size:  size,
		cells: make([]bool, size*size),
	}
}

// Size returns the edge length of the grid.
func (o *Occupancy) Size() int {
	return o.size
}

// Clear marks every cell free without deallocating.
func (o *Occupancy) Clear() {
	clear(o.cells)
	o.taken = 0
}

// Mark records p as taken. Positions outside the grid are ignored.
func (o *Occupancy) Mark(p Position) {
	if !p.Inside(o.size) {
		return
	}
	idx := p.Y*o.size + p.X
	if !o.cells[idx] {
		o.cells[idx] = true
		o.taken++
	}
}

// Taken reports whether p is marked. Positions outside the grid are never taken.
func (o *Occupancy) Taken(p Position) bool {
	if !p.Inside(o.size) {
		return false
	}
	return o.cells[p.Y*o.size+p.X]
}

// FreeCount returns how many cells are still free.
func (o *Occupancy) FreeCount() int {
	return len(o.cells) - o.taken
}

// NthFree returns the n-th free cell in row-major order, n in [0, FreeCount()).
// ok is false when n is out of range.
func (o *Occupancy) NthFree(n int) (p Position, ok bool) {
	if n < 0 || n >= o.FreeCount() {
		return Position{}, false
	}
	for idx, taken := range o.cells {
		if taken {
			continue
		}
		if n == 0 {
			return Position{X: idx % o.size, Y: idx / o.size}, true
		}
		n--
	}
	return Position{}, false
}
