package sim_test

import (
	"fmt"

	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/tetris"
)

type FallSystem struct{}

func (s *FallSystem) Execute(frame *sim.Frame) {
	if frame.Event.Gravity() {
		*frame.Game, frame.Landed = tetris.Fall(*frame.Game)
	}
}

type ReportSystem struct{}

func (s *ReportSystem) Execute(frame *sim.Frame) {
	row := frame.Game.Active.Position.Y
	frame.Commands.Defer(func() {
		fmt.Printf("%s: piece at row %d\n", frame.Event, row)
	})
}

// ExampleScheduler builds a two-stage pipeline. Systems run in registration order
// and deferred commands run after the last system.
func ExampleScheduler() {
	game := tetris.NewGame(tetris.DefaultRules(), tetris.NewRand(1))

	scheduler := sim.NewScheduler(nil)
	scheduler.Register(&FallSystem{})
	scheduler.Register(&ReportSystem{})

	rng := tetris.NewRand(2)
	for _, ev := range []sim.Event{sim.EventTick, sim.EventRotate, sim.EventSpeedUp} {
		scheduler.Once(sim.NewFrame(ev, 0, &game, rng))
	}

	fmt.Println("frames:", scheduler.Stats().FrameCount)
	// Output:
	// tick: piece at row 1
	// rotate: piece at row 1
	// speed-up: piece at row 2
	// frames: 3
}
