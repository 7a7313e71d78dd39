package metrics

import "time"

type AgentKind string

const (
	MCTSAgent   AgentKind = "mcts"
	RandomAgent AgentKind = "random"
)

// AgentConfig describes one player of an experiment. An MCTS agent with a
// positive Temperature samples its moves instead of playing the most
// visited one.
type AgentConfig struct {
	ID          int
	Kind        AgentKind
	Duration    time.Duration
	Episodes    int
	Temperature float64
	Seed        uint64
}
