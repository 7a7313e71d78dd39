// Package connect4 implements 6x7 connect-four rules for the game contract.
package connect4

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"mctsgames/game"
	"mctsgames/utils"
)

const (
	Rows    = 6
	Columns = 7
	Connect = 4
)

// Move drops the current player's disc into a column.
type Move struct {
	Column int `json:"column"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d)", m.Column)
}

// ParseMove reads a column index.
func ParseMove(text string) (Move, error) {
	column, err := strconv.Atoi(strings.Trim(strings.TrimSpace(text), "()"))
	if err != nil {
		return Move{}, fmt.Errorf("invalid column %q: %w", text, err)
	}
	return Move{Column: column}, nil
}

// Board holds the owner of each cell, row 0 at the top, zero for empty cells.
type Board [Rows][Columns]game.Player

// State is an immutable connect-four position.
type State struct {
	board  Board
	player game.Player
	result game.Result
	moves  []Move
}

// New returns the empty board with PlayerOne to move.
func New() State {
	return newState(Board{}, game.PlayerOne)
}

// FromBoard returns the position with the given board and player to move.
// Discs must rest on the bottom row or on another disc.
func FromBoard(board Board, player game.Player) (State, error) {
	if player != game.PlayerOne && player != game.PlayerTwo {
		return State{}, fmt.Errorf("invalid player to move: %v", player)
	}
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			cell := board[row][col]
			if cell != 0 && cell != game.PlayerOne && cell != game.PlayerTwo {
				return State{}, fmt.Errorf("invalid cell owner: %d", int(cell))
			}
			if cell != 0 && row+1 < Rows && board[row+1][col] == 0 {
				return State{}, fmt.Errorf("floating disc at (%d,%d)", row, col)
			}
		}
	}
	return newState(board, player), nil
}

func newState(board Board, player game.Player) State {
	s := State{board: board, player: player, result: result(board)}
	if s.result == game.InProgress {
		for col := 0; col < Columns; col++ {
			if board[0][col] == 0 {
				s.moves = append(s.moves, Move{Column: col})
			}
		}
	}
	return s
}

func (s State) Player() game.Player { return s.player }

func (s State) Result() game.Result { return s.result }

func (s State) Board() Board { return s.board }

func (s State) LegalMoves() []Move {
	return slices.Clone(s.moves)
}

func (s State) Play(move Move) (State, error) {
	if s.result != game.InProgress {
		return State{}, game.ErrGameOver
	}
	if utils.FindIndex(s.moves, move) < 0 {
		return State{}, fmt.Errorf("%w: %v", game.ErrIllegalMove, move)
	}
	board := s.board
	row := Rows - 1
	for board[row][move.Column] != 0 {
		row--
	}
	board[row][move.Column] = s.player
	return newState(board, s.player.Other()), nil
}

func (s State) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			sb.WriteByte('|')
			sb.WriteString(Mark(s.board[row][col]))
		}
		sb.WriteString("|\n")
	}
	for col := 0; col < Columns; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	fmt.Fprintf(&sb, "\nplayer %v, %v", s.player, s.result)
	return sb.String()
}

// Mark returns the symbol drawn for a cell owner.
func Mark(p game.Player) string {
	switch p {
	case game.PlayerOne:
		return "O"
	case game.PlayerTwo:
		return "X"
	}
	return " "
}

// directions to scan from each cell: right, down, down-right, down-left
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func result(board Board) game.Result {
	full := true
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			owner := board[row][col]
			if owner == 0 {
				full = false
				continue
			}
			for _, d := range directions {
				if connected(board, row, col, d[0], d[1], owner) {
					return game.Won(owner)
				}
			}
		}
	}
	if full {
		return game.Draw
	}
	return game.InProgress
}

func connected(board Board, row, col, dr, dc int, owner game.Player) bool {
	for i := 1; i < Connect; i++ {
		r, c := row+dr*i, col+dc*i
		if r < 0 || r >= Rows || c < 0 || c >= Columns || board[r][c] != owner {
			return false
		}
	}
	return true
}
