package session

import (
	"sync"
	"time"

	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/tetris"
)

// InputSystem applies player moves, rotations and pause requests.
type InputSystem struct{}

func (s *InputSystem) Execute(frame *sim.Frame) {
	g := *frame.Game

	switch frame.Event {
	case MoveLeft:
		g = tetris.Move(g, -1)
	case MoveRight:
		g = tetris.Move(g, 1)
	case Rotate:
		g = tetris.Rotate(g)
	case Pause:
		g = tetris.Pause(g)
		if g.Status != frame.Game.Status {
			frame.Commands.Emit(sim.Notice{Kind: sim.NoticePaused, Score: g.Score})
		}
	case Resume:
		g = tetris.Resume(g)
		if g.Status != frame.Game.Status {
			frame.Commands.Emit(sim.Notice{Kind: sim.NoticeResumed, Score: g.Score})
		}
	default:
		return
	}

	*frame.Game = g
}

// GravitySystem moves the active piece one row down on ticks and speed-ups.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *sim.Frame) {
	if !frame.Event.Gravity() {
		return
	}
	*frame.Game, frame.Landed = tetris.Fall(*frame.Game)
}

// LockSystem locks a landed piece and brings the preview into play.
type LockSystem struct{}

func (s *LockSystem) Execute(frame *sim.Frame) {
	if !frame.Landed {
		return
	}

	label := frame.Game.Active.Piece.Label
	*frame.Game = tetris.LockPiece(*frame.Game, frame.Rand)
	frame.Spawned = true

	frame.Commands.Emit(sim.Notice{Kind: sim.NoticeLocked, Piece: label, Score: frame.Game.Score})
}

// LineClearSystem removes completed rows after gravity has run.
type LineClearSystem struct{}

func (s *LineClearSystem) Execute(frame *sim.Frame) {
	if !frame.Event.Gravity() || frame.Game.Status == tetris.Paused {
		return
	}

	*frame.Game, frame.Cleared = tetris.ClearRows(*frame.Game)
	if frame.Cleared > 0 {
		frame.Commands.Emit(sim.Notice{
			Kind:  sim.NoticeLinesCleared,
			Lines: frame.Cleared,
			Score: frame.Game.Score,
		})
	}
}

// TimingSystem owns the tick interval. Every gravity step of a playing game shortens
// the interval by Decay, never below Min.
type TimingSystem struct {
	Decay float64
	Min   time.Duration

	mu       sync.Mutex
	interval time.Duration
}

func newTimingSystem(opts Options) *TimingSystem {
	return &TimingSystem{
		Decay:    opts.Decay,
		Min:      opts.MinInterval,
		interval: opts.InitialInterval,
	}
}

func (s *TimingSystem) Execute(frame *sim.Frame) {
	if !frame.Event.Gravity() || frame.Game.Status != tetris.Playing {
		return
	}

	s.mu.Lock()
	s.interval = max(time.Duration(float64(s.interval)*s.Decay), s.Min)
	s.mu.Unlock()
}

// Interval is the delay before the next scheduled tick.
func (s *TimingSystem) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// TallySystem feeds the session counters.
type TallySystem struct {
	Tally *Tally
}

func (s *TallySystem) Execute(frame *sim.Frame) {
	s.Tally.processed(frame.Event)
	if frame.Spawned {
		s.Tally.spawned(frame.Game.Active.Piece)
	}
	s.Tally.cleared(frame.Cleared)
}

// PublishSystem stores the snapshot readers see and reports the end of the game.
type PublishSystem struct {
	mu       sync.RWMutex
	snapshot tetris.Snapshot
	status   tetris.Status
}

func newPublishSystem(g tetris.Game) *PublishSystem {
	return &PublishSystem{snapshot: g.Snapshot(), status: g.Status}
}

func (s *PublishSystem) Execute(frame *sim.Frame) {
	g := frame.Game
	if g.Status == tetris.Ended && s.status != tetris.Ended {
		frame.Commands.Emit(sim.Notice{
			Kind:  sim.NoticeGameOver,
			Lines: g.Lines,
			Score: g.Score,
		})
	}

	snap := g.Snapshot()

	s.mu.Lock()
	s.snapshot = snap
	s.status = g.Status
	s.mu.Unlock()
}

// Snapshot returns a copy of the last published game view.
func (s *PublishSystem) Snapshot() tetris.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}
