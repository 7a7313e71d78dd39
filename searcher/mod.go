package searcher

import "errors"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant C = sqrt(2), squared

const (
	Win  = 1.0 // Reward for the mover of a winning node
	Draw = 0.5 // Reward for either mover on a draw
	Loss = 0.0
)

// ErrEmptyTree is returned when a move is requested from a node that has no
// expanded children.
var ErrEmptyTree = errors.New("search tree has no expanded moves")
