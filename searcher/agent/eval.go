package agent

import (
	"errors"
	"time"

	"mctsgames/experiments/metrics"
	"mctsgames/game"
	"mctsgames/searcher"
)

var errNoPosition = errors.New("agent has no position, call Reset first")

type evaluationAgent[M comparable, S game.State[M, S]] struct {
	settings
	root *searcher.Node[M, S]
}

// NewEvaluationAgent returns an MCTS agent that plays the most visited move
// and keeps its tree between moves.
func NewEvaluationAgent[M comparable, S game.State[M, S]](options ...Option) Agent[M, S] {
	return &evaluationAgent[M, S]{settings: newSettings(options)}
}

func (a *evaluationAgent[M, S]) Reset(state S) {
	a.root = searcher.New[M](state)
}

func (a *evaluationAgent[M, S]) FindMove() (M, metrics.SearchMetric, error) {
	var move M
	if a.root == nil {
		return move, metrics.SearchMetric{}, errNoPosition
	}
	metric, err := search(a.root, a.settings)
	if err != nil {
		return move, metric, err
	}
	move, err = a.root.Recommend()
	return move, metric, err
}

func (a *evaluationAgent[M, S]) Observe(move M) error {
	if a.root == nil {
		return errNoPosition
	}
	next, err := a.root.Advance(move)
	if err != nil {
		return err
	}
	a.root = next
	return nil
}

func search[M comparable, S game.State[M, S]](root *searcher.Node[M, S], s settings) (metrics.SearchMetric, error) {
	deadline := time.Now().Add(s.duration)
	if s.duration <= 0 {
		deadline = time.Now().Add(24 * time.Hour) // bounded by episodes
	}
	return root.Search(deadline,
		searcher.WithRand(s.rng),
		searcher.WithEpisodes(s.episodes),
		searcher.WithLogger(s.logger),
	)
}
