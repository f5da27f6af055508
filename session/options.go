package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/tetris"
)

const defaultQueueSize = 32

// Options configures a session.
type Options struct {
	Rules tetris.Rules

	InitialInterval time.Duration
	Decay           float64
	MinInterval     time.Duration

	// Seed of 0 picks a time based seed.
	Seed uint64
	// QueueSize bounds the number of pending actions; 0 uses a default.
	QueueSize int
}

// DefaultOptions returns a 10x20 standard game starting at one tick per second.
func DefaultOptions() Options {
	return Options{
		Rules:           tetris.DefaultRules(),
		InitialInterval: time.Second,
		Decay:           0.999,
		MinInterval:     100 * time.Millisecond,
	}
}

// OptionsFromConfig converts loaded settings into session options.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Rules:           rules,
		InitialInterval: cfg.Timing.InitialInterval,
		Decay:           cfg.Timing.Decay,
		MinInterval:     cfg.Timing.MinInterval,
		Seed:            cfg.Seed,
	}, nil
}

func (o Options) validate() error {
	switch {
	case o.Rules.Width <= 0 || o.Rules.Height <= 0:
		return fmt.Errorf("invalid board %dx%d", o.Rules.Width, o.Rules.Height)
	case o.Decay <= 0 || o.Decay > 1:
		return fmt.Errorf("invalid decay %g", o.Decay)
	case o.MinInterval <= 0 || o.InitialInterval < o.MinInterval:
		return errors.New("interval floor must be positive and not above the initial interval")
	}
	return nil
}

func (o Options) seed() uint64 {
	if o.Seed != 0 {
		return o.Seed
	}
	return uint64(time.Now().UnixNano())
}
