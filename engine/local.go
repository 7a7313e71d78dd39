package engine

import (
	"fmt"
	"time"

	"mctsgames/experiments/metrics"
	"mctsgames/game"
	"mctsgames/searcher/agent"

	"github.com/rs/zerolog/log"
)

// LocalEngine plays a game between two in-process agents. Agents[0] plays
// PlayerOne and Agents[1] plays PlayerTwo.
type LocalEngine[M comparable, S game.State[M, S]] struct {
	State  S
	Agents [2]agent.Agent[M, S]
}

func NewLocalEngine[M comparable, S game.State[M, S]](start S, playerOne, playerTwo agent.Agent[M, S]) *LocalEngine[M, S] {
	if playerOne == nil || playerTwo == nil {
		panic("need two agents")
	}
	return &LocalEngine[M, S]{
		State:  start,
		Agents: [2]agent.Agent[M, S]{playerOne, playerTwo},
	}
}

// Run executes the entire game loop until the game is over. Every agent
// observes every move, so agents that keep a tree can reuse it.
func (e *LocalEngine[M, S]) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	for _, a := range e.Agents {
		a.Reset(e.State)
	}

	log.Debug().Msgf("player %v is starting", e.State.Player())

	for step := 1; e.State.Result() == game.InProgress; step++ {
		if step > MaxMoves {
			return gameMetric, moveMetrics, fmt.Errorf("game did not finish after %d moves", MaxMoves)
		}
		player := e.State.Player()
		move, searchMetric, err := e.Agents[player-game.PlayerOne].FindMove()
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %v failed to find a move: %w", player, err)
		}

		next, err := e.State.Play(move)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("player %v played %v: %w", player, move, err)
		}
		for _, a := range e.Agents {
			if err := a.Observe(move); err != nil {
				return gameMetric, moveMetrics, fmt.Errorf("observing %v: %w", move, err)
			}
		}
		e.State = next

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         fmt.Sprint(move),
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("step %d: player %v played %v", step, player, move)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Result = e.State.Result()
	return gameMetric, moveMetrics, nil
}
