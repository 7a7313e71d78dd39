package agent

import (
	"time"

	"mctsgames/experiments/metrics"
	"mctsgames/game"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Agent picks moves for one side of a game and follows the moves played by
// both sides.
type Agent[M comparable, S game.State[M, S]] interface {
	// Reset starts the agent from state, dropping anything it learned before.
	Reset(state S)
	// FindMove returns a move for the current position and the metrics of the
	// search behind it (zero if the agent does not search).
	FindMove() (M, metrics.SearchMetric, error)
	// Observe advances the agent's position by a move played by either side.
	Observe(move M) error
}

type Option func(s *settings)

type settings struct {
	duration time.Duration
	episodes int
	rng      *rand.Rand
	logger   zerolog.Logger
}

func WithDuration(duration time.Duration) Option {
	return func(s *settings) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(s *settings) {
		if episodes > 0 {
			s.episodes = episodes
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func newSettings(options []Option) settings {
	s := settings{logger: zerolog.Nop()}
	for _, option := range options {
		option(&s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if s.duration <= 0 && s.episodes <= 0 {
		panic("Must specify search episodes or duration")
	}
	return s
}
