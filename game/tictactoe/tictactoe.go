// Package tictactoe implements 3x3 tic-tac-toe rules for the game contract.
package tictactoe

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"mctsgames/game"
	"mctsgames/utils"
)

const Size = 3

// Move places the current player's mark on a cell.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// ParseMove reads a move written as "row col" or "row,col".
func ParseMove(text string) (Move, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '(' || r == ')'
	})
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("expected row and column, got %q", text)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return Move{}, fmt.Errorf("invalid row %q: %w", fields[0], err)
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid column %q: %w", fields[1], err)
	}
	return Move{Row: row, Col: col}, nil
}

// Board holds the owner of each cell, zero for empty cells.
type Board [Size][Size]game.Player

// State is an immutable tic-tac-toe position.
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
func FromBoard(board Board, player game.Player) (State, error) {
	if player != game.PlayerOne && player != game.PlayerTwo {
		return State{}, fmt.Errorf("invalid player to move: %v", player)
	}
	for _, row := range board {
		for _, cell := range row {
			if cell != 0 && cell != game.PlayerOne && cell != game.PlayerTwo {
				return State{}, fmt.Errorf("invalid cell owner: %d", int(cell))
			}
		}
	}
	return newState(board, player), nil
}

func newState(board Board, player game.Player) State {
	s := State{board: board, player: player, result: result(board)}
	if s.result == game.InProgress {
		for row := 0; row < Size; row++ {
			for col := 0; col < Size; col++ {
				if board[row][col] == 0 {
					s.moves = append(s.moves, Move{Row: row, Col: col})
				}
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
	board[move.Row][move.Col] = s.player
	return newState(board, s.player.Other()), nil
}

func (s State) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteString(strings.Repeat("-", Size*2-1))
			sb.WriteByte('\n')
		}
		for col := 0; col < Size; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(Mark(s.board[row][col]))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "player %v, %v", s.player, s.result)
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

var lines = [][Size][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func result(board Board) game.Result {
	for _, line := range lines {
		owner := board[line[0][0]][line[0][1]]
		if owner == 0 {
			continue
		}
		if board[line[1][0]][line[1][1]] == owner && board[line[2][0]][line[2][1]] == owner {
			return game.Won(owner)
		}
	}
	for _, row := range board {
		for _, cell := range row {
			if cell == 0 {
				return game.InProgress
			}
		}
	}
	return game.Draw
}
