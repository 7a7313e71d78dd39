package searcher

import (
	"time"

	"mctsgames/experiments/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

type Option func(c *config)

type config struct {
	rng      *rand.Rand
	episodes int
	metrics  metrics.Collector
	logger   zerolog.Logger
}

// WithSeed makes the search reproducible by drawing expansion and rollout
// moves from a generator seeded with seed.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand draws expansion and rollout moves from rng. The generator is
// used by a single search at a time.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithEpisodes caps the number of playout iterations in addition to the
// deadline.
func WithEpisodes(episodes int) Option {
	return func(c *config) {
		if episodes > 0 {
			c.episodes = episodes
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(c *config) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(options []Option) *config {
	c := &config{ // Default values
		metrics: metrics.NewCollector(),
		logger:  zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return c
}
