package engine

import "mctsgames/experiments/metrics"

// MaxMoves bounds a game in case a rule set never terminates.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is over or MaxMoves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
