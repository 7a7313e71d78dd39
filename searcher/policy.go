package searcher

import "math"

// uct scores the children of a single parent against each other.
type uct struct {
	explore float64 // c^2 * ln(N) for the parent's N playouts
}

func newUCT(cSquared float64, parentPlayouts int) uct {
	if parentPlayouts <= 0 {
		panic("cannot compute UCT: parent has no playouts")
	}
	return uct{explore: cSquared * math.Log(float64(parentPlayouts))}
}

func (u uct) evaluate(wins float64, playouts int) float64 {
	if playouts <= 0 {
		panic("cannot compute UCT: child has no playouts")
	}
	n := float64(playouts)
	// UCT = w/n + sqrt(c^2*ln(N)/n)
	return wins/n + math.Sqrt(u.explore/n)
}
