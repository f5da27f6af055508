package tetris

// Cell is one board square. The zero value is an empty cell.
type Cell struct {
	Filled bool
	Color  Color
}

// Board is a fixed-size grid of cells stored row-major. Board values share nothing:
// every method that changes cells returns a fresh copy.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard returns an empty board. Non-positive dimensions yield an empty 0x0 board.
func NewBoard(width, height int) Board {
	if width <= 0 || height <= 0 {
		return Board{}
	}
	return Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// BoardFromRows builds a board from text rows, where '.' or ' ' is empty and any other
// byte is a tile of the given color. Rows shorter than the widest row are padded empty.
func BoardFromRows(color Color, rows ...string) Board {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	b := NewBoard(width, len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] != '.' && row[x] != ' ' {
				b.cells[b.index(x, y)] = Cell{Filled: true, Color: color}
			}
		}
	}
	return b
}

func (b Board) Width() int  { return b.width }
func (b Board) Height() int { return b.height }

func (b Board) index(x, y int) int {
	return y*b.width + x
}

// InBounds reports whether (x, y) lies on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y). Coordinates off the board read as empty.
func (b Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.cells[b.index(x, y)]
}

// Filled reports whether (x, y) holds a locked tile.
func (b Board) Filled(x, y int) bool {
	return b.At(x, y).Filled
}

// With returns a copy of the board with (x, y) set to cell. Coordinates off the board
// are ignored and the copy is returned unchanged.
func (b Board) With(x, y int, cell Cell) Board {
	out := b.Clone()
	if out.InBounds(x, y) {
		out.cells[out.index(x, y)] = cell
	}
	return out
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := b
	out.cells = append([]Cell(nil), b.cells...)
	return out
}

// Row returns a copy of row y, or nil when y is off the board.
func (b Board) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	start := b.index(0, y)
	return append([]Cell(nil), b.cells[start:start+b.width]...)
}

// RowFull reports whether every cell in row y is filled.
func (b Board) RowFull(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for x := 0; x < b.width; x++ {
		if !b.cells[b.index(x, y)].Filled {
			return false
		}
	}
	return true
}

// FilledCount returns the number of locked tiles on the board.
func (b Board) FilledCount() int {
	n := 0
	for _, c := range b.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Equal reports whether two boards have the same dimensions and cells.
func (b Board) Equal(o Board) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String draws the board with '#' for filled and '.' for empty cells, one row per line.
func (b Board) String() string {
	buf := make([]byte, 0, (b.width+1)*b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.cells[b.index(x, y)].Filled {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
