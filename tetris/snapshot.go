package tetris

import "slices"

// PieceView describes a piece for drawing: its cells in some coordinate space and color.
type PieceView struct {
	Label    string
	Color    Color
	Rotation int
	Cells    []Coord
}

// Snapshot is a read-only copy of a game for renderers. It shares no memory with the
// Game it was taken from.
type Snapshot struct {
	Status Status
	Width  int
	Height int
	Score  int
	Lines  int
	Pieces int

	// Cells holds the locked tiles row-major: Cells[y*Width+x].
	Cells []Cell

	// Active cells are absolute board coordinates and may have negative Y.
	Active PieceView

	// Next cells are shifted so the preview's bounding box starts at (0, 0).
	Next PieceView
}

// Snapshot returns a read-only view of the game.
func (g Game) Snapshot() Snapshot {
	s := Snapshot{
		Status: g.Status,
		Width:  g.Board.Width(),
		Height: g.Board.Height(),
		Score:  g.Score,
		Lines:  g.Lines,
		Pieces: g.Pieces,
		Cells:  append([]Cell(nil), g.Board.cells...),
	}

	if g.activeValid() {
		s.Active = PieceView{
			Label:    g.Active.Piece.Label,
			Color:    g.Active.Piece.Color,
			Rotation: g.Active.Rotation,
			Cells:    OccupiedCells(g.Active),
		}
	}

	if g.Next.valid() {
		shape := g.Next.Piece.Rotations[g.Next.Rotation]
		lo, _ := shape.Bounds()
		cells := make([]Coord, len(shape))
		for i, c := range shape {
			cells[i] = Coord{X: c.X - lo.X, Y: c.Y - lo.Y}
		}
		s.Next = PieceView{
			Label:    g.Next.Piece.Label,
			Color:    g.Next.Piece.Color,
			Rotation: g.Next.Rotation,
			Cells:    cells,
		}
	}

	return s
}

// Clone returns a snapshot that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	s.Cells = slices.Clone(s.Cells)
	s.Active.Cells = slices.Clone(s.Active.Cells)
	s.Next.Cells = slices.Clone(s.Next.Cells)
	return s
}

// At returns the locked cell at (x, y), or an empty cell off the board.
func (s Snapshot) At(x, y int) Cell {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return Cell{}
	}
	return s.Cells[y*s.Width+x]
}
