package sim_test

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

type recordingSystem struct {
	name  string
	trace *[]string
}

func (s *recordingSystem) Execute(frame *sim.Frame) {
	*s.trace = append(*s.trace, s.name+":"+frame.Event.String())
}

type emittingSystem struct {
	ExecuteCount int
}

func (s *emittingSystem) Execute(frame *sim.Frame) {
	s.ExecuteCount++
	frame.Commands.Emit(sim.Notice{Kind: sim.NoticeLocked, Piece: frame.Game.Active.Piece.Label})
	frame.Commands.Defer(func() {
		frame.Game.Score += 10
	})
}

func newGame() tetris.Game {
	return tetris.NewGame(tetris.DefaultRules(), tetris.NewRand(1))
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in registration order", func(t *testing.T) {
		var trace []string
		scheduler := sim.NewScheduler(nil)
		scheduler.Register(&recordingSystem{name: "a", trace: &trace})
		scheduler.Register(&recordingSystem{name: "b", trace: &trace})

		game := newGame()
		scheduler.Once(sim.NewFrame(sim.EventTick, 0, &game, tetris.NewRand(1)))
		scheduler.Once(sim.NewFrame(sim.EventRotate, 0, &game, tetris.NewRand(1)))

		assert.Equal(t, []string{"a:tick", "b:tick", "a:rotate", "b:rotate"}, trace)
	})

	t.Run("commands flush after every system", func(t *testing.T) {
		var notices []sim.Notice
		scheduler := sim.NewScheduler(func(n sim.Notice) {
			notices = append(notices, n)
		})
		emitter := &emittingSystem{}
		scheduler.Register(emitter)

		game := newGame()
		frame := sim.NewFrame(sim.EventTick, 0, &game, tetris.NewRand(1))
		scheduler.Once(frame)

		assert.Equal(t, 1, emitter.ExecuteCount)
		assert.Len(t, notices, 1)
		assert.Equal(t, sim.NoticeLocked, notices[0].Kind)
		assert.Equal(t, game.Active.Piece.Label, notices[0].Piece)
		assert.Equal(t, 10, game.Score)
		assert.Equal(t, 0, frame.Commands.Pending())
	})
}

func TestSchedulerStats(t *testing.T) {
	var trace []string
	scheduler := sim.NewScheduler(nil)
	scheduler.Register(&recordingSystem{name: "a", trace: &trace})
	scheduler.Register(&emittingSystem{})

	stats := scheduler.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, "recordingSystem", stats.Systems[0].Name)
	assert.Equal(t, "emittingSystem", stats.Systems[1].Name)
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

	game := newGame()
	for range 3 {
		scheduler.Once(sim.NewFrame(sim.EventTick, time.Millisecond, &game, tetris.NewRand(1)))
	}

	stats = scheduler.Stats()
	assert.Equal(t, int64(3), stats.FrameCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
		assert.Equal(t, s.TotalDuration/3, s.AvgDuration)
	}
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "tick", sim.EventTick.String())
	assert.Equal(t, "speed-up", sim.EventSpeedUp.String())
	assert.Equal(t, "unknown", sim.Event(42).String())
	assert.True(t, sim.EventSpeedUp.Gravity())
	assert.False(t, sim.EventRotate.Gravity())
}
