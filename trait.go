package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Config controls cache instance.
type Config struct {
	// Logger is an instance of contextualized logger, can be nil.
	Logger ctxd.Logger

	// Stats is metrics collector, can be nil.
	Stats stats.Tracker

	// Name is cache instance name, used in stats and logging.
	Name string

	// Expire is a minimal guaranteed lifetime of a written entry, required.
	Expire time.Duration

	// Bias is a delay between two consecutive sweeps, required.
	//
	// Entry is removed not later than Expire + Bias after last write.
	// Smaller Bias gives more accurate expiration at cost of more frequent sweeps.
	Bias time.Duration

	// Now is a clock, default time.Now.
	Now func() time.Time
}

// trait holds configuration and sweeper lifecycle shared by cache flavours.
type trait struct {
	config Config
	log    ctxd.Logger
	stat   stats.Tracker
	now    func() time.Time

	closed    chan struct{}
	closeOnce sync.Once
}

func newTrait(config Config) (*trait, error) {
	if config.Expire <= 0 {
		return nil, fmt.Errorf("%w: expire must be positive, %s given", ErrInvalidConfig, config.Expire)
	}

	if config.Bias <= 0 {
		return nil, fmt.Errorf("%w: bias must be positive, %s given", ErrInvalidConfig, config.Bias)
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	return &trait{
		config: config,
		log:    config.Logger,
		stat:   config.Stats,
		now:    config.Now,
		closed: make(chan struct{}),
	}, nil
}

// close stops sweeper, it is safe to call multiple times.
func (t *trait) close() bool {
	done := false

	t.closeOnce.Do(func() {
		close(t.closed)

		done = true
	})

	return done
}
