package connect4

import (
	"encoding/json"
	"testing"

	"mctsgames/game"

	"github.com/stretchr/testify/require"
)

func play(t *testing.T, s State, columns ...int) State {
	t.Helper()
	for _, c := range columns {
		next, err := s.Play(Move{Column: c})
		require.NoError(t, err)
		s = next
	}
	return s
}

func TestNew(t *testing.T) {
	s := New()

	require.Equal(t, game.PlayerOne, s.Player())
	require.Equal(t, game.InProgress, s.Result())
	require.Len(t, s.LegalMoves(), Columns)
}

func TestPlay(t *testing.T) {
	t.Run("disc falls to the lowest empty row", func(t *testing.T) {
		s := play(t, New(), 3, 3)

		require.Equal(t, game.PlayerOne, s.Board()[Rows-1][3])
		require.Equal(t, game.PlayerTwo, s.Board()[Rows-2][3])
		require.Equal(t, game.PlayerOne, s.Player())
	})

	t.Run("does not mutate receiver", func(t *testing.T) {
		s := New()
		_, err := s.Play(Move{Column: 0})

		require.NoError(t, err)
		require.Equal(t, New(), s)
	})

	t.Run("full column is illegal", func(t *testing.T) {
		s := play(t, New(), 0, 0, 0, 0, 0, 0)

		require.NotContains(t, s.LegalMoves(), Move{Column: 0})
		_, err := s.Play(Move{Column: 0})
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("out of range column is illegal", func(t *testing.T) {
		_, err := New().Play(Move{Column: Columns})
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("finished game rejects moves", func(t *testing.T) {
		s := play(t, New(), 0, 1, 0, 1, 0, 1, 0)

		require.Equal(t, game.PlayerOneWins, s.Result())
		require.Empty(t, s.LegalMoves())
		_, err := s.Play(Move{Column: 2})
		require.ErrorIs(t, err, game.ErrGameOver)
	})
}

func TestResult(t *testing.T) {
	t.Run("horizontal win", func(t *testing.T) {
		s := play(t, New(), 0, 0, 1, 1, 2, 2, 3)
		require.Equal(t, game.PlayerOneWins, s.Result())
	})

	t.Run("diagonal win", func(t *testing.T) {
		// O climbs the diagonal 0..3, X fills underneath
		s := play(t, New(), 0, 1, 1, 2, 2, 3, 2, 3, 3, 6, 3)
		require.Equal(t, game.PlayerOneWins, s.Result())
	})

	t.Run("vertical win for player two", func(t *testing.T) {
		s := play(t, New(), 0, 1, 2, 1, 3, 1, 0, 1)
		require.Equal(t, game.PlayerTwoWins, s.Result())
	})

	t.Run("three in a row is not a win", func(t *testing.T) {
		s := play(t, New(), 0, 0, 1, 1, 2, 2)
		require.Equal(t, game.InProgress, s.Result())
	})
}

func TestFromBoard(t *testing.T) {
	t.Run("rejects floating discs", func(t *testing.T) {
		var b Board
		b[0][0] = game.PlayerOne
		_, err := FromBoard(b, game.PlayerTwo)
		require.Error(t, err)
	})

	t.Run("full board without line is a draw", func(t *testing.T) {
		var b Board
		// pairs of columns alternate owner, and every row flips the pattern
		pattern := [Columns]game.Player{game.PlayerOne, game.PlayerOne, game.PlayerTwo, game.PlayerTwo, game.PlayerOne, game.PlayerOne, game.PlayerTwo}
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				p := pattern[col]
				if row%2 == 1 {
					p = p.Other()
				}
				b[row][col] = p
			}
		}
		s, err := FromBoard(b, game.PlayerOne)
		require.NoError(t, err)
		require.Equal(t, game.Draw, s.Result())
		require.Empty(t, s.LegalMoves())
	})
}

func TestJSONRoundTrip(t *testing.T) {
	states := map[string]State{
		"empty":       New(),
		"in progress": play(t, New(), 3, 3, 4, 2, 6),
		"finished":    play(t, New(), 0, 1, 0, 1, 0, 1, 0),
	}
	for name, original := range states {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(original)
			require.NoError(t, err)

			var decoded State
			require.NoError(t, json.Unmarshal(data, &decoded))

			require.Equal(t, original.Result(), decoded.Result())
			require.Equal(t, original.LegalMoves(), decoded.LegalMoves())
			require.Equal(t, original.Player(), decoded.Player())
			require.Equal(t, original.Board(), decoded.Board())
		})
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove(" 4 ")
	require.NoError(t, err)
	require.Equal(t, Move{Column: 4}, m)

	_, err = ParseMove("x")
	require.Error(t, err)
}
