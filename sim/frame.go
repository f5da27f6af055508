package sim

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// Frame carries one event through the registered systems. Systems read and replace
// *Game; the fields below it record what earlier systems did this frame.
type Frame struct {
	Event     Event
	DeltaTime time.Duration
	Game      *tetris.Game
	Rand      tetris.Rand
	Commands  *Commands

	// Landed is set when gravity moved the active piece into a collision.
	Landed bool
	// Spawned is set once the landed piece is locked and the preview became active.
	Spawned bool
	// Cleared is the number of rows removed this frame.
	Cleared int
}

// NewFrame creates a frame for the given event and game.
func NewFrame(event Event, dt time.Duration, game *tetris.Game, rng tetris.Rand) *Frame {
	return &Frame{
		Event:     event,
		DeltaTime: dt,
		Game:      game,
		Rand:      rng,
		Commands:  newCommands(),
	}
}
