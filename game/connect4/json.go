package connect4

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
	Board   [Rows][Columns]string `json:"board"`
	Player  game.Player           `json:"player"`
	Result  game.Result           `json:"result"`
	Moves   []Move                `json:"moves"`
	Rows    int                   `json:"rows"`
	Columns int                   `json:"columns"`
}

// MarshalJSON encodes the board and player to move. Result and legal moves
// are included for clients but are re-derived on decode.
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{
		Player:  s.player,
		Result:  s.result,
		Moves:   s.moves,
		Rows:    Rows,
		Columns: Columns,
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
			owner, ok := cellOwner(name)
			if !ok {
				return fmt.Errorf("cell (%d,%d): unknown cell %q", row, col, name)
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

func cellOwner(name string) (game.Player, bool) {
	for owner, n := range cellNames {
		if n == name {
			return owner, true
		}
	}
	return 0, false
}
