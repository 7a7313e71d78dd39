package searcher

import (
	"fmt"
	"maps"

	"mctsgames/game"
)

// Node is a vertex of the search tree. It owns its state, its statistics and
// the children expanded from it. There is no parent link: a playout carries
// its own path from the root.
//
// A tree is not safe for concurrent use. Exactly one goroutine may search or
// advance it at a time.
type Node[M comparable, S game.State[M, S]] struct {
	state    S
	moves    []M
	children map[M]*Node[M, S]
	playouts int
	wins     float64
}

// New roots a tree at state with zero statistics. A finished state is a
// valid root but can never be expanded.
func New[M comparable, S game.State[M, S]](state S) *Node[M, S] {
	moves := state.LegalMoves()
	return &Node[M, S]{
		state:    state,
		moves:    moves,
		children: make(map[M]*Node[M, S], len(moves)),
	}
}

func (n *Node[M, S]) State() S {
	return n.state
}

func (n *Node[M, S]) Playouts() int {
	return n.playouts
}

func (n *Node[M, S]) Wins() float64 {
	return n.wins
}

// Ratio is the mover's win ratio at this node, 0 before any playout.
func (n *Node[M, S]) Ratio() float64 {
	if n.playouts == 0 {
		return 0
	}
	return n.wins / float64(n.playouts)
}

// IsLeaf reports whether the node has a legal move that was never expanded,
// or no legal moves at all.
func (n *Node[M, S]) IsLeaf() bool {
	return n.IsTerminal() || len(n.children) < len(n.moves)
}

func (n *Node[M, S]) IsTerminal() bool {
	return len(n.moves) == 0
}

// Child returns the subtree expanded for move.
func (n *Node[M, S]) Child(move M) (*Node[M, S], bool) {
	child, ok := n.children[move]
	return child, ok
}

// Children returns a copy of the move to child mapping.
func (n *Node[M, S]) Children() map[M]*Node[M, S] {
	return maps.Clone(n.children)
}

// Size counts the nodes of the subtree rooted at n.
func (n *Node[M, S]) Size() int {
	size := 1
	for _, child := range n.children {
		size += child.Size()
	}
	return size
}

func (n *Node[M, S]) String() string {
	return fmt.Sprintf("Node(wins=%g, playouts=%d, ratio=%.2f, children=%d)",
		n.wins, n.playouts, n.Ratio(), len(n.children))
}

// mover is the player whose move led to this node.
func (n *Node[M, S]) mover() game.Player {
	return n.state.Player().Other()
}

// pickChild returns the child with the highest UCT score. Children are
// scored in legal move order and the first maximum wins ties.
func (n *Node[M, S]) pickChild() *Node[M, S] {
	if len(n.children) == 0 {
		panic("node has no children to pick from")
	}
	policy := newUCT(CSquared, n.playouts)

	var best *Node[M, S]
	bestScore := 0.0
	for _, move := range n.moves {
		child, ok := n.children[move]
		if !ok {
			continue
		}
		score := policy.evaluate(child.wins, child.playouts)
		if best == nil || score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// update records one finished playout through this node.
func (n *Node[M, S]) update(result game.Result) {
	n.playouts++
	if result == game.Draw {
		n.wins += Draw
		return
	}
	if winner, ok := result.Winner(); ok && winner == n.mover() {
		n.wins += Win
	}
}
