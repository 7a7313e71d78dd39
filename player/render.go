package player

import (
	"encoding/json"
	"fmt"
	"strings"

	"mctsgames/game"
	"mctsgames/game/connect4"
	"mctsgames/game/tictactoe"

	"github.com/muesli/termenv"
)

// rules knows how to show one game kind and read moves for it.
type rules struct {
	prompt string
	parse  func(text string) (json.RawMessage, error)
	render func(out *termenv.Output, state json.RawMessage) (string, error)
}

var kinds = map[string]rules{
	"tictactoe": {
		prompt: "your move (row col)",
		parse: func(text string) (json.RawMessage, error) {
			move, err := tictactoe.ParseMove(text)
			if err != nil {
				return nil, err
			}
			return json.Marshal(move)
		},
		render: renderTicTacToe,
	},
	"connect4": {
		prompt: "your move (column)",
		parse: func(text string) (json.RawMessage, error) {
			move, err := connect4.ParseMove(text)
			if err != nil {
				return nil, err
			}
			return json.Marshal(move)
		},
		render: renderConnect4,
	},
}

func mark(out *termenv.Output, p game.Player, symbol string) string {
	switch p {
	case game.PlayerOne:
		return out.String(symbol).Foreground(out.Color("1")).Bold().String()
	case game.PlayerTwo:
		return out.String(symbol).Foreground(out.Color("3")).Bold().String()
	}
	return out.String(symbol).Faint().String()
}

func renderTicTacToe(out *termenv.Output, data json.RawMessage) (string, error) {
	var state tictactoe.State
	if err := json.Unmarshal(data, &state); err != nil {
		return "", fmt.Errorf("decoding tic-tac-toe state: %w", err)
	}
	board := state.Board()

	var sb strings.Builder
	sb.WriteString("  ")
	for col := 0; col < tictactoe.Size; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteByte('\n')
	for row := 0; row < tictactoe.Size; row++ {
		fmt.Fprintf(&sb, "%d ", row)
		for col := 0; col < tictactoe.Size; col++ {
			cell := board[row][col]
			symbol := tictactoe.Mark(cell)
			if cell == 0 {
				symbol = "."
			}
			sb.WriteByte(' ')
			sb.WriteString(mark(out, cell, symbol))
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func renderConnect4(out *termenv.Output, data json.RawMessage) (string, error) {
	var state connect4.State
	if err := json.Unmarshal(data, &state); err != nil {
		return "", fmt.Errorf("decoding connect-four state: %w", err)
	}
	board := state.Board()

	var sb strings.Builder
	for row := 0; row < connect4.Rows; row++ {
		for col := 0; col < connect4.Columns; col++ {
			cell := board[row][col]
			symbol := connect4.Mark(cell)
			if cell == 0 {
				symbol = "."
			}
			sb.WriteByte(' ')
			sb.WriteString(mark(out, cell, symbol))
		}
		sb.WriteByte('\n')
	}
	for col := 0; col < connect4.Columns; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteByte('\n')
	return sb.String(), nil
}
