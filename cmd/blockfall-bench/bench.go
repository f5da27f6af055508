package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/tetris"
)

// inputActions are the actions a simulated player picks from between ticks.
var inputActions = []session.Action{
	session.MoveLeft,
	session.MoveRight,
	session.Rotate,
	session.SpeedUp,
}

// GameResult summarizes one headless game.
type GameResult struct {
	Seed        uint64
	Ticks       int
	Actions     int
	Ended       bool
	Score       int
	Lines       int
	Pieces      int
	Clears      map[int]int64
	Systems     []sim.SystemStats
	UpdateTimes []time.Duration
}

// Plan describes a benchmark run.
type Plan struct {
	Options  session.Options
	Games    int
	MaxTicks int
	Seed     uint64
	// InputRate is the number of random player actions sent per tick.
	InputRate int
	Workers   int
}

// runGame plays until the game ends or maxTicks gravity steps have run.
func runGame(ctx context.Context, opts session.Options, seed uint64, plan Plan, logger *log.Entry) (GameResult, error) {
	opts.Seed = seed
	s, err := session.New(opts, logger)
	if err != nil {
		return GameResult{}, err
	}

	player := tetris.NewRand(seed ^ 0x5eed)
	result := GameResult{Seed: seed}

	dispatch := func(a session.Action) {
		start := time.Now()
		s.Dispatch(a)
		result.UpdateTimes = append(result.UpdateTimes, time.Since(start))
	}

Loop:
	for result.Ticks < plan.MaxTicks {
		select {
		case <-ctx.Done():
			return GameResult{}, ctx.Err()
		case <-s.Done():
			break Loop
		default:
		}

		for range plan.InputRate {
			dispatch(inputActions[player.IntN(len(inputActions))])
			result.Actions++
		}
		dispatch(session.Tick)
		result.Ticks++
	}

	snap := s.Snapshot()
	result.Ended = snap.Status == tetris.Ended
	result.Score = snap.Score
	result.Lines = snap.Lines
	result.Pieces = snap.Pieces
	result.Clears = s.Tally().Clears
	result.Systems = s.SchedulerStats().Systems
	return result, nil
}

// runPlan plays every game of the plan on a bounded worker pool.
func runPlan(ctx context.Context, plan Plan, logger *log.Entry) ([]GameResult, error) {
	results := make([]GameResult, plan.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(plan.Workers, 1))

	for i := range plan.Games {
		seed := plan.Seed + uint64(i)
		g.Go(func() error {
			r, err := runGame(ctx, plan.Options, seed, plan, logger.WithField("game", i))
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
