package agent

import (
	"testing"

	"mctsgames/game"
	"mctsgames/game/connect4"
	"mctsgames/game/tictactoe"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEvaluationAgent(t *testing.T) {
	t.Run("requires a position", func(t *testing.T) {
		a := NewEvaluationAgent[tictactoe.Move, tictactoe.State](WithEpisodes(10))

		_, _, err := a.FindMove()
		require.ErrorIs(t, err, errNoPosition)
		require.ErrorIs(t, a.Observe(tictactoe.Move{}), errNoPosition)
	})

	t.Run("finds a legal move and reuses its tree", func(t *testing.T) {
		a := NewEvaluationAgent[tictactoe.Move, tictactoe.State](WithEpisodes(300), WithSeed(1))
		a.Reset(tictactoe.New())

		move, metric, err := a.FindMove()
		require.NoError(t, err)
		require.Contains(t, tictactoe.New().LegalMoves(), move)
		require.Equal(t, 300, metric.Episodes)
		require.False(t, metric.IsTreeReused)

		require.NoError(t, a.Observe(move))
		reply := a.(*evaluationAgent[tictactoe.Move, tictactoe.State]).root.State().LegalMoves()[0]
		require.NoError(t, a.Observe(reply))

		_, metric, err = a.FindMove()
		require.NoError(t, err)
		require.True(t, metric.IsTreeReused, "Second search should start from the reused subtree")
	})

	t.Run("rejects illegal observed moves", func(t *testing.T) {
		a := NewEvaluationAgent[connect4.Move, connect4.State](WithEpisodes(10))
		a.Reset(connect4.New())

		require.ErrorIs(t, a.Observe(connect4.Move{Column: 9}), game.ErrIllegalMove)
	})

	t.Run("panics without a search budget", func(t *testing.T) {
		require.Panics(t, func() {
			NewEvaluationAgent[tictactoe.Move, tictactoe.State]()
		})
	})
}

func TestTrainingAgent(t *testing.T) {
	t.Run("samples an expanded move", func(t *testing.T) {
		a := NewTrainingAgent[connect4.Move, connect4.State](1.0, WithEpisodes(200), WithSeed(4))
		a.Reset(connect4.New())

		move, _, err := a.FindMove()

		require.NoError(t, err)
		require.Contains(t, connect4.New().LegalMoves(), move)
	})

	t.Run("panics on non-positive temperature", func(t *testing.T) {
		require.Panics(t, func() {
			NewTrainingAgent[connect4.Move, connect4.State](0, WithEpisodes(1))
		})
	})
}

func TestAdjustTemperature(t *testing.T) {
	t.Run("unit temperature normalizes visits", func(t *testing.T) {
		got := adjustTemperature([]float64{1, 3}, 1.0)
		require.InDeltaSlice(t, []float64{0.25, 0.75}, got, 1e-9)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		got := adjustTemperature([]float64{1, 3}, 0.5)
		require.InDeltaSlice(t, []float64{0.1, 0.9}, got, 1e-9)
	})
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		counts[sample([]float64{0.2, 0.0, 0.8}, rng)]++
	}

	require.Zero(t, counts[1], "Zero probability moves should never be sampled")
	require.InDelta(t, 600, counts[0], 150)
	require.InDelta(t, 2400, counts[2], 150)
}

func TestRandomAgent(t *testing.T) {
	a := NewRandomAgent[tictactoe.Move, tictactoe.State](3)
	_, _, err := a.FindMove()
	require.ErrorIs(t, err, errNoPosition)

	state := tictactoe.New()
	a.Reset(state)
	for state.Result() == game.InProgress {
		move, _, err := a.FindMove()
		require.NoError(t, err)
		require.Contains(t, state.LegalMoves(), move)
		require.NoError(t, a.Observe(move))
		state, err = state.Play(move)
		require.NoError(t, err)
	}

	_, _, err = a.FindMove()
	require.ErrorIs(t, err, game.ErrGameOver)
}
