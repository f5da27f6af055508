// Package session runs one game: it owns the tick timer, queues player actions and
// pushes every event through the system pipeline.
package session

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/tetris"
)

var ErrAlreadyStarted = errors.New("session already started")

// Session is a single game driven either by its own loop (Start) or synchronously
// (Dispatch). Do not mix the two on one session.
type Session struct {
	id  uuid.UUID
	log *log.Entry

	rng       *rand.Rand
	game      tetris.Game
	lastFrame time.Time

	scheduler *sim.Scheduler
	timing    *TimingSystem
	publish   *PublishSystem
	tally     *Tally

	actions chan Action

	mu       sync.Mutex
	started  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	done     chan struct{}
	doneOnce sync.Once
}

// New creates a session with a fresh game. A nil logger discards log output.
func New(opts Options, logger *log.Entry) (*Session, error) {
	if opts.Rules.Catalog == nil {
		opts.Rules.Catalog = tetris.Standard
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if logger == nil {
		discard := log.New()
		discard.SetOutput(io.Discard)
		logger = log.NewEntry(discard)
	}

	id := uuid.New()
	seed := opts.seed()
	s := &Session{
		id:      id,
		log:     logger.WithField("session", id.String()),
		rng:     tetris.NewRand(seed),
		actions: make(chan Action, opts.QueueSize),
		done:    make(chan struct{}),
		tally:   newTally(opts.Rules.Catalog),
	}

	s.game = tetris.NewGame(opts.Rules, s.rng)
	s.tally.spawned(s.game.Active.Piece)

	s.timing = newTimingSystem(opts)
	s.publish = newPublishSystem(s.game)

	s.scheduler = sim.NewScheduler(s.notice)
	s.scheduler.Register(&InputSystem{})
	s.scheduler.Register(&GravitySystem{})
	s.scheduler.Register(&LockSystem{})
	s.scheduler.Register(&LineClearSystem{})
	s.scheduler.Register(s.timing)
	s.scheduler.Register(&TallySystem{Tally: s.tally})
	s.scheduler.Register(s.publish)

	s.log.WithFields(log.Fields{
		"seed":    seed,
		"width":   opts.Rules.Width,
		"height":  opts.Rules.Height,
		"catalog": opts.Rules.Catalog.Len(),
	}).Debug("session created")

	return s, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

// Snapshot returns the last published state of the game.
func (s *Session) Snapshot() tetris.Snapshot { return s.publish.Snapshot() }

// Interval is the current delay between ticks.
func (s *Session) Interval() time.Duration { return s.timing.Interval() }

func (s *Session) Tally() TallySnapshot { return s.tally.Snapshot() }

func (s *Session) SchedulerStats() *sim.SchedulerStats { return s.scheduler.Stats() }

// Done is closed when the game ends or the loop stops.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) closeDone() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Start launches the event loop. It returns immediately; the loop runs until ctx is
// cancelled, Stop is called or the game ends.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.lastFrame = time.Now()

	s.wg.Add(1)
	go s.run(ctx)

	s.log.WithField("interval", s.timing.Interval()).Info("session started")
	return nil
}

// Stop ends the loop and waits for it to exit. It is safe to call more than once.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.closeDone()
}

// Send queues an action for the loop. It never blocks and reports false when the
// queue is full or the session is over.
func (s *Session) Send(a Action) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.actions <- a:
		return true
	default:
		return false
	}
}

// Dispatch runs one event synchronously and returns the delay until the next tick.
// It is meant for tests and headless runners that drive the clock themselves.
func (s *Session) Dispatch(a Action) time.Duration {
	s.step(a)
	if s.game.Status == tetris.Ended {
		s.closeDone()
	}
	return s.timing.Interval()
}

func (s *Session) step(a Action) tetris.Status {
	before := s.game.Status

	now := time.Now()
	var dt time.Duration
	if !s.lastFrame.IsZero() {
		dt = now.Sub(s.lastFrame)
	}
	s.lastFrame = now

	interval := s.timing.Interval()
	s.scheduler.Once(sim.NewFrame(a, dt, &s.game, s.rng))

	if next := s.timing.Interval(); next != interval {
		s.log.WithField("interval", next).Debug("tick interval changed")
	}
	return before
}

func (s *Session) run(ctx context.Context) {
	defer s.wg.Done()
	defer s.closeDone()

	timer := time.NewTimer(s.timing.Interval())
	defer timer.Stop()

	for {
		var a Action
		select {
		case <-ctx.Done():
			s.log.Info("session stopped")
			return
		case <-timer.C:
			a = Tick
		case a = <-s.actions:
		}

		before := s.step(a)

		switch status := s.game.Status; {
		case status == tetris.Ended:
			return
		case status == tetris.Paused:
			timer.Stop()
		case a.Gravity():
			// a speed-up replaces the pending tick
			timer.Reset(s.timing.Interval())
		case a == Resume && before == tetris.Paused:
			timer.Reset(s.timing.Interval())
		}
	}
}

func (s *Session) notice(n sim.Notice) {
	entry := s.log.WithField("score", n.Score)

	switch n.Kind {
	case sim.NoticeLocked:
		entry.WithField("piece", n.Piece).Debug("piece locked")
	case sim.NoticeLinesCleared:
		entry.WithField("lines", n.Lines).Debug("lines cleared")
	case sim.NoticePaused:
		entry.Info("game paused")
	case sim.NoticeResumed:
		entry.Info("game resumed")
	case sim.NoticeGameOver:
		entry.WithFields(log.Fields{
			"lines":  n.Lines,
			"pieces": s.game.Pieces,
		}).Info("game over")
	}
}
