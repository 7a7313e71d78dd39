package player

import (
	"context"
	"encoding/json"
	"fmt"

	"mctsgames/communication"
	"mctsgames/game"
	"mctsgames/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Controller plays the human side of sessions with an agent, so two bots
// can meet through a Communicator.
type Controller[M comparable, S game.State[M, S]] struct {
	Communicator communication.Communicator
	Agent        agent.Agent[M, S]
}

func NewController[M comparable, S game.State[M, S]](comm communication.Communicator, a agent.Agent[M, S]) *Controller[M, S] {
	return &Controller[M, S]{Communicator: comm, Agent: a}
}

// Run plays one game of kind and returns its final view. The session's
// state must decode into S.
func (c *Controller[M, S]) Run(ctx context.Context, kind string, first bool) (communication.View, error) {
	view, err := c.Communicator.NewGame(ctx, kind, first)
	if err != nil {
		return view, err
	}
	log.Info().Str("session", view.ID).Msgf("controller playing %s as %v", kind, view.Human)

	for !view.Result.Over() {
		if !view.HumanToMove() {
			if view, err = c.Communicator.State(ctx, view.ID, view.Version); err != nil {
				return view, err
			}
			continue
		}

		var state S
		if err := json.Unmarshal(view.State, &state); err != nil {
			return view, fmt.Errorf("decoding state: %w", err)
		}
		// The bot's reply is only known as a state, so search from scratch.
		c.Agent.Reset(state)
		move, metric, err := c.Agent.FindMove()
		if err != nil {
			return view, err
		}
		data, err := json.Marshal(move)
		if err != nil {
			return view, err
		}
		if view, err = c.Communicator.Play(ctx, view.ID, data); err != nil {
			return view, err
		}
		log.Debug().Str("session", view.ID).Int("episodes", metric.Episodes).Msgf("controller played %v", move)
	}

	log.Info().Str("session", view.ID).Msgf("game over: %v", view.Result)
	return view, nil
}
