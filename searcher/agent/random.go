package agent

import (
	"time"

	"mctsgames/experiments/metrics"
	"mctsgames/game"

	"golang.org/x/exp/rand"
)

type randomAgent[M comparable, S game.State[M, S]] struct {
	state S
	ready bool
	rng   *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal
// moves. A zero seed seeds from the clock.
func NewRandomAgent[M comparable, S game.State[M, S]](seed uint64) Agent[M, S] {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomAgent[M, S]{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[M, S]) Reset(state S) {
	a.state = state
	a.ready = true
}

func (a *randomAgent[M, S]) FindMove() (M, metrics.SearchMetric, error) {
	var move M
	if !a.ready {
		return move, metrics.SearchMetric{}, errNoPosition
	}
	moves := a.state.LegalMoves()
	if len(moves) == 0 {
		return move, metrics.SearchMetric{}, game.ErrGameOver
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}

func (a *randomAgent[M, S]) Observe(move M) error {
	if !a.ready {
		return errNoPosition
	}
	next, err := a.state.Play(move)
	if err != nil {
		return err
	}
	a.state = next
	return nil
}
