package game

import "errors"

var (
	// ErrIllegalMove is returned when a move is not in the state's legal move set.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned when a move is played on a finished game.
	ErrGameOver = errors.New("game over")
)

// State is a game position. States are immutable - Play always returns a new
// state and never mutates its receiver. M is the move type of the game's rule
// set and S is the concrete state type itself.
//
// LegalMoves is empty iff Result is not InProgress. Play fails with
// ErrGameOver on a finished game and with ErrIllegalMove for a move outside
// LegalMoves.
type State[M comparable, S any] interface {
	Player() Player
	Result() Result
	LegalMoves() []M
	Play(move M) (S, error)
}

