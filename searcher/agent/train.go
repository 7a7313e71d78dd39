package agent

import (
	"math"

	"mctsgames/experiments/metrics"
	"mctsgames/game"
	"mctsgames/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent[M comparable, S game.State[M, S]] struct {
	evaluationAgent[M, S]
	temperature float64
}

// NewTrainingAgent returns an MCTS agent that samples its move from the root
// visit counts, sharpened or flattened by temperature. It is used to vary
// self-play games.
func NewTrainingAgent[M comparable, S game.State[M, S]](temperature float64, options ...Option) Agent[M, S] {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent[M, S]{
		evaluationAgent: evaluationAgent[M, S]{settings: newSettings(options)},
		temperature:     temperature,
	}
}

func (a *trainingAgent[M, S]) FindMove() (M, metrics.SearchMetric, error) {
	var move M
	if a.root == nil {
		return move, metrics.SearchMetric{}, errNoPosition
	}
	metric, err := search(a.root, a.settings)
	if err != nil {
		return move, metric, err
	}

	moves, visits := policy(a.root)
	if len(moves) == 0 {
		return move, metric, searcher.ErrEmptyTree
	}
	probs := adjustTemperature(visits, a.temperature)
	return moves[sample(probs, a.rng)], metric, nil
}

// policy lists the expanded moves of root in legal move order with their
// visit counts.
func policy[M comparable, S game.State[M, S]](root *searcher.Node[M, S]) ([]M, []float64) {
	var moves []M
	var visits []float64
	for _, move := range root.State().LegalMoves() {
		if child, ok := root.Child(move); ok {
			moves = append(moves, move)
			visits = append(visits, float64(child.Playouts()))
		}
	}
	return moves, visits
}

func adjustTemperature(visits []float64, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(visits))
	for i, visit := range visits {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[i] = prob
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(probs []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(probs) - 1 // Fallback in case of rounding errors
}
