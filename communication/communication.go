package communication

import (
	"context"
	"encoding/json"

	"mctsgames/game"
)

// Communicator abstracts where game sessions live: in process or behind the
// HTTP server.
type Communicator interface {
	// NewGame starts a session of kind against the bot. The human moves
	// first when humanFirst is set.
	NewGame(ctx context.Context, kind string, humanFirst bool) (View, error)
	// Games lists all open sessions.
	Games(ctx context.Context) ([]View, error)
	// State returns the session's view once its version is greater than
	// after. A negative after returns the current view without waiting.
	State(ctx context.Context, id string, after int) (View, error)
	// Play submits a human move encoded as JSON.
	Play(ctx context.Context, id string, move json.RawMessage) (View, error)
}

// View is an immutable snapshot of a session. Version increases with every
// change so clients can wait for the next one.
type View struct {
	ID       string          `json:"id"`
	Game     string          `json:"game"`
	Version  int             `json:"version"`
	Human    game.Player     `json:"human"`
	Player   game.Player     `json:"player"`
	Result   game.Result     `json:"result"`
	Thinking bool            `json:"thinking"`
	LastMove json.RawMessage `json:"last_move,omitempty"`
	State    json.RawMessage `json:"state"`
}

// HumanToMove reports whether the session waits for a human move.
func (v View) HumanToMove() bool {
	return v.Result == game.InProgress && v.Player == v.Human
}

type NewGameRequest struct {
	Game       string `json:"game"`
	HumanFirst bool   `json:"human_first"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
