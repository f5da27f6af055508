package tetris_test

import "github.com/plus3/blockfall/tetris"

// scriptedRand replays fixed choices, wrapped into range. It returns 0 once exhausted.
type scriptedRand struct {
	values []int
	calls  int
}

func script(values ...int) *scriptedRand {
	return &scriptedRand{values: values}
}

func (r *scriptedRand) IntN(n int) int {
	r.calls++
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func mustPiece(label string) *tetris.Piece {
	p, ok := tetris.Standard.Lookup(label)
	if !ok {
		panic("no piece " + label)
	}
	return p
}

// gameWith builds a playing game on the given board with a fixed active piece and an
// X block as the preview.
func gameWith(board tetris.Board, active tetris.ActivePiece) tetris.Game {
	rules := tetris.DefaultRules()
	rules.Width = board.Width()
	rules.Height = board.Height()
	return tetris.Game{
		Status: tetris.Playing,
		Rules:  rules,
		Board:  board,
		Active: active,
		Next:   tetris.Preview{Piece: mustPiece("X")},
	}
}

func emptyRows(width, height int) []string {
	rows := make([]string, height)
	for i := range rows {
		row := make([]byte, width)
		for x := range row {
			row[x] = '.'
		}
		rows[i] = string(row)
	}
	return rows
}
