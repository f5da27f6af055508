package tetris

// ActivePiece is the piece under player control.
type ActivePiece struct {
	Piece    *Piece
	Position Coord
	Rotation int
}

// Shape returns the offsets of the current rotation.
func (a ActivePiece) Shape() Shape {
	return a.Piece.Rotations[a.Rotation]
}

// Moved returns a copy of the piece shifted by (dx, dy).
func (a ActivePiece) Moved(dx, dy int) ActivePiece {
	a.Position = a.Position.Add(Coord{X: dx, Y: dy})
	return a
}

// OccupiedCells returns the absolute board cells covered by the piece.
func OccupiedCells(a ActivePiece) []Coord {
	shape := a.Shape()
	cells := make([]Coord, len(shape))
	for i, offset := range shape {
		cells[i] = a.Position.Add(offset)
	}
	return cells
}

// Collides reports whether the piece reaches past the floor or overlaps a locked tile.
// Cells above row 0 are the spawn buffer and never collide.
func Collides(b Board, a ActivePiece) bool {
	for _, c := range OccupiedCells(a) {
		if c.Y >= b.Height() {
			return true
		}
		if c.Y >= 0 && c.X >= 0 && c.X < b.Width() && b.Filled(c.X, c.Y) {
			return true
		}
	}
	return false
}

// IsOutOfBounds reports whether any cell of the piece is left or right of the board.
func IsOutOfBounds(b Board, a ActivePiece) bool {
	for _, c := range OccupiedCells(a) {
		if c.X < 0 || c.X >= b.Width() {
			return true
		}
	}
	return false
}

// horizontalOverflow reports which side of the board the piece sticks out of.
func horizontalOverflow(b Board, a ActivePiece) (left, right bool) {
	for _, c := range OccupiedCells(a) {
		if c.X < 0 {
			left = true
		}
		if c.X >= b.Width() {
			right = true
		}
	}
	return left, right
}

// Lock writes the piece into a copy of the board one row above its current position.
// Lock is applied to a piece that has just moved into a collision, so row y-1 is the
// last position it legally occupied. Cells that land off the board are dropped.
func Lock(b Board, a ActivePiece) Board {
	out := b.Clone()
	tile := Cell{Filled: true, Color: a.Piece.Color}
	for _, c := range OccupiedCells(a) {
		y := c.Y - 1
		if out.InBounds(c.X, y) {
			out.cells[out.index(c.X, y)] = tile
		}
	}
	return out
}
