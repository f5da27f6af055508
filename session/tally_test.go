package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/blockfall/tetris"
)

func TestTally(t *testing.T) {
	tally := newTally(tetris.Trio)

	i, _ := tetris.Trio.Lookup("I")
	x, _ := tetris.Trio.Lookup("X")
	foreign, _ := tetris.Standard.Lookup("T")

	tally.spawned(i)
	tally.spawned(i)
	tally.spawned(x)
	tally.spawned(foreign)
	tally.cleared(0)
	tally.cleared(2)
	tally.cleared(4)
	tally.cleared(2)
	tally.processed(Tick)
	tally.processed(Tick)
	tally.processed(Rotate)

	s := tally.Snapshot()
	assert.Equal(t, map[string]int64{"I": 2, "X": 1}, s.Spawns)
	assert.Equal(t, int64(3), s.TotalSpawns())
	assert.Equal(t, map[int]int64{2: 2, 4: 1}, s.Clears)
	assert.Equal(t, map[string]int64{"tick": 2, "rotate": 1}, s.Actions)

	s.Spawns["I"] = 99
	assert.Equal(t, int64(2), tally.Snapshot().Spawns["I"])
}
