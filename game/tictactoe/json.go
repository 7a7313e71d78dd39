package tictactoe

import (
	"encoding/json"
	"fmt"

	"mctsgames/game"
)

var cellNames = map[game.Player]string{
	0:              "empty",
	game.PlayerOne: "O",
	game.PlayerTwo: "X",
}

type stateJSON struct {
	Board  [Size][Size]string `json:"board"`
	Player game.Player        `json:"player"`
	Result game.Result        `json:"result"`
	Moves  []Move             `json:"moves"`
	Size   int                `json:"size"`
}

// MarshalJSON encodes the board and player to move. Result and legal moves
// are included for clients but are re-derived on decode.
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{
		Player: s.player,
		Result: s.result,
		Moves:  s.moves,
		Size:   Size,
	}
	if out.Moves == nil {
		out.Moves = []Move{}
	}
	for row := range s.board {
		for col, cell := range s.board[row] {
			out.Board[row][col] = cellNames[cell]
		}
	}
	return json.Marshal(out)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var in stateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var board Board
	for row := range in.Board {
		for col, name := range in.Board[row] {
			owner, err := cellOwner(name)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", row, col, err)
			}
			board[row][col] = owner
		}
	}
	decoded, err := FromBoard(board, in.Player)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

func cellOwner(name string) (game.Player, error) {
	for owner, n := range cellNames {
		if n == name {
			return owner, nil
		}
	}
	return 0, fmt.Errorf("unknown cell %q", name)
}
