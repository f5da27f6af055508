package tetris_test

import (
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	board := tetris.NewBoard(10, 20).With(0, 19, tetris.Cell{Filled: true, Color: tetris.Red})
	g := gameWith(board, tetris.ActivePiece{Piece: mustPiece("I"), Position: tetris.Coord{X: 3, Y: 0}})
	g.Next = tetris.Preview{Piece: mustPiece("L"), Rotation: 1}
	g.Score = 250

	s := g.Snapshot()

	assert.Equal(t, tetris.Playing, s.Status)
	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 20, s.Height)
	assert.Equal(t, 250, s.Score)
	assert.Len(t, s.Cells, 200)
	assert.True(t, s.At(0, 19).Filled)
	assert.False(t, s.At(-1, 0).Filled)

	assert.Equal(t, "I", s.Active.Label)
	assert.Equal(t, tetris.Cyan, s.Active.Color)
	assert.ElementsMatch(t, []tetris.Coord{{3, -1}, {3, 0}, {3, 1}, {3, 2}}, s.Active.Cells)

	// L rotation 1 is {-1,-1} {0,-1} {0,0} {0,1}; normalized to its bounding box
	assert.Equal(t, "L", s.Next.Label)
	assert.Equal(t, 1, s.Next.Rotation)
	assert.ElementsMatch(t, []tetris.Coord{{0, 0}, {1, 0}, {1, 1}, {1, 2}}, s.Next.Cells)
}

func TestSnapshotIsACopy(t *testing.T) {
	g := gameWith(tetris.NewBoard(4, 4), tetris.ActivePiece{Piece: mustPiece("X"), Position: tetris.Coord{X: 1, Y: 0}})

	s := g.Snapshot()
	s.Cells[0] = tetris.Cell{Filled: true}
	s.Active.Cells[0] = tetris.Coord{X: 99, Y: 99}

	assert.False(t, g.Board.Filled(0, 0))
	assert.Equal(t, tetris.Coord{X: 1, Y: 0}, tetris.OccupiedCells(g.Active)[0])
}

func TestSnapshotClone(t *testing.T) {
	g := gameWith(tetris.NewBoard(4, 4), tetris.ActivePiece{Piece: mustPiece("X"), Position: tetris.Coord{X: 1, Y: 0}})

	s := g.Snapshot()
	c := s.Clone()
	c.Cells[0] = tetris.Cell{Filled: true}
	c.Next.Cells[0] = tetris.Coord{X: 9, Y: 9}

	assert.False(t, s.Cells[0].Filled)
	assert.Equal(t, tetris.Coord{}, s.Next.Cells[0])
	assert.Equal(t, s.Active, g.Snapshot().Active)
}
