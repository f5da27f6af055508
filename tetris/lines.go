package tetris

// ClearLines removes every full row, shifting the rows above each one down and leaving
// empty rows at the top. It returns the new board and the number of rows removed.
func ClearLines(b Board) (Board, int) {
	out := b.Clone()
	cleared := 0

	for y := out.height - 1; y >= 0; {
		if !out.RowFull(y) {
			y--
			continue
		}

		// row y takes the contents of y-1 and so on; row 0 becomes empty
		copy(out.cells[out.width:out.index(0, y+1)], out.cells[:out.index(0, y)])
		clear(out.cells[:out.width])
		cleared++
	}

	return out, cleared
}

var lineScores = [...]int{0, 100, 250, 500, 1000}

// ScoreDelta returns the points awarded for clearing the given number of rows at once.
// Counts outside 0..4 score nothing.
func ScoreDelta(lines int) int {
	if lines < 0 || lines >= len(lineScores) {
		return 0
	}
	return lineScores[lines]
}
