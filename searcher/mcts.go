package searcher

import (
	"errors"
	"fmt"
	"time"

	"mctsgames/experiments/metrics"
	"mctsgames/game"
	"mctsgames/utils"

	"golang.org/x/exp/rand"
)

// Search runs playout iterations from n until deadline, or until the episode
// budget set with WithEpisodes is spent. The deadline is only checked between
// iterations. Searching a finished position fails with game.ErrGameOver.
func (n *Node[M, S]) Search(deadline time.Time, options ...Option) (metrics.SearchMetric, error) {
	c := newConfig(options)
	if n.IsTerminal() {
		return metrics.SearchMetric{}, fmt.Errorf("cannot search from a finished position: %w", game.ErrGameOver)
	}

	c.metrics.Start()
	c.metrics.SetTreeReused(n.playouts > 0)
	for episode := 0; c.episodes == 0 || episode < c.episodes; episode++ {
		if !time.Now().Before(deadline) {
			break
		}
		expanded, err := n.Iterate(c.rng)
		if err != nil {
			return c.metrics.Complete(n.playouts), err
		}
		c.metrics.AddEpisode()
		if expanded {
			c.metrics.AddExpansion()
		}
	}
	metric := c.metrics.Complete(n.playouts)

	if e := c.logger.Debug(); e.Enabled() {
		e.Int("episodes", metric.Episodes).
			Int("expansions", metric.Expansions).
			Int("root_playouts", metric.RootPlayouts).
			Int("tree_size", n.Size()).
			Bool("tree_reused", metric.IsTreeReused).
			Dur("duration", metric.Duration).
			Msg("search complete")
	}
	return metric, nil
}

// SearchFor runs Search with a deadline d from now.
func (n *Node[M, S]) SearchFor(d time.Duration, options ...Option) (metrics.SearchMetric, error) {
	return n.Search(time.Now().Add(d), options...)
}

// Iterate runs one playout iteration: selection, expansion, rollout and
// backup. It reports whether a new node was added to the tree.
func (n *Node[M, S]) Iterate(rng *rand.Rand) (bool, error) {
	if n.IsTerminal() {
		return false, fmt.Errorf("cannot iterate from a finished position: %w", game.ErrGameOver)
	}

	path := selects(n)
	leaf := path[len(path)-1]
	expanded := false
	if !leaf.IsTerminal() {
		child, err := expands(leaf, rng)
		if err != nil {
			return false, err
		}
		path = append(path, child)
		leaf = child
		expanded = true
	}

	result, err := rollout(leaf.state, rng)
	if err != nil {
		return expanded, err
	}
	backup(path, result)
	return expanded, nil
}

// Recommend returns the move whose child has the most playouts.
func (n *Node[M, S]) Recommend() (M, error) {
	var best M
	maxPlayouts := -1
	for _, move := range n.moves {
		child, ok := n.children[move]
		if ok && child.playouts > maxPlayouts {
			maxPlayouts = child.playouts
			best = move
		}
	}
	if maxPlayouts < 0 {
		return best, ErrEmptyTree
	}
	return best, nil
}

// Advance returns the subtree for move as a new root, keeping its statistics.
// A move that was never expanded gets a fresh root. On success n gives up
// all of its children, so sibling subtrees become garbage even while n is
// still referenced.
func (n *Node[M, S]) Advance(move M) (*Node[M, S], error) {
	next, ok := n.children[move]
	if !ok {
		state, err := n.state.Play(move)
		if err != nil {
			return nil, err
		}
		next = New[M](state)
	}
	clear(n.children)
	return next, nil
}

// selects descends from root by UCT until it reaches a leaf and returns the
// path root..leaf.
func selects[M comparable, S game.State[M, S]](root *Node[M, S]) []*Node[M, S] {
	path := []*Node[M, S]{root}
	node := root
	for !node.IsLeaf() {
		node = node.pickChild()
		path = append(path, node)
	}
	return path
}

// expands adds a child for a uniformly random unexplored move of leaf.
// A terminal leaf is returned unchanged.
func expands[M comparable, S game.State[M, S]](leaf *Node[M, S], rng *rand.Rand) (*Node[M, S], error) {
	if leaf.IsTerminal() {
		return leaf, nil
	}
	available := utils.Without(leaf.moves, leaf.children)
	if len(available) == 0 {
		panic("cannot expand a fully expanded node")
	}

	move := available[rng.Intn(len(available))]
	state, err := leaf.state.Play(move)
	if err != nil {
		return nil, fmt.Errorf("expanding move %v: %w", move, err)
	}
	child := New[M](state)
	leaf.children[move] = child
	return child, nil
}

var errNoMoves = errors.New("position in progress has no legal moves")

// rollout plays uniformly random legal moves from state until the game ends.
func rollout[M comparable, S game.State[M, S]](state S, rng *rand.Rand) (game.Result, error) {
	for state.Result() == game.InProgress {
		moves := state.LegalMoves()
		if len(moves) == 0 {
			return game.InProgress, errNoMoves
		}
		next, err := state.Play(moves[rng.Intn(len(moves))])
		if err != nil {
			return game.InProgress, fmt.Errorf("rollout: %w", err)
		}
		state = next
	}
	return state.Result(), nil
}

func backup[M comparable, S game.State[M, S]](path []*Node[M, S], result game.Result) {
	for _, node := range path {
		node.update(result)
	}
}
