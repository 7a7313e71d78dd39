package experiments

import (
	"context"
	"path/filepath"
	"testing"

	"mctsgames/experiments/metrics"
	"mctsgames/game"
	"mctsgames/game/tictactoe"

	"github.com/stretchr/testify/require"
)

var (
	randomConfig = metrics.AgentConfig{ID: 1, Kind: metrics.RandomAgent, Seed: 7}
	mctsConfig   = metrics.AgentConfig{ID: 2, Kind: metrics.MCTSAgent, Episodes: 500, Seed: 7}
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("mcts against random", func(t *testing.T) {
		dir := t.TempDir()
		results, err := Run(ctx, Experiment{
			Name:            "test",
			Game:            "tictactoe",
			Configs:         []metrics.AgentConfig{randomConfig, mctsConfig},
			MatchUps:        [][2]metrics.AgentConfig{{randomConfig, mctsConfig}},
			GamesPerMatchup: 4,
			Concurrency:     2,
			OutDir:          dir,
		})
		require.NoError(t, err)

		require.Len(t, results.Games, 4)
		for i, record := range results.Games {
			require.Equal(t, i+1, record.ID)
			require.Equal(t, 1, record.Agent1)
			require.Equal(t, 2, record.Agent2)
			require.NotEqual(t, game.InProgress, record.Result)
			require.Equal(t, record.TotalMoves, countMoves(results.Moves, record.ID))
		}
		require.Equal(t, 1, results.Games[0].StartingAgent)
		require.Equal(t, 2, results.Games[1].StartingAgent)

		require.Len(t, results.Summaries, 1)
		s := results.Summaries[0]
		require.Equal(t, 4, s.Wins1+s.Wins2+s.Draws)
		require.Greater(t, s.Wins2+s.Draws, s.Wins1, "MCTS should outplay random moves")

		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(results.Dir, name))
		}
		require.Equal(t, dir, filepath.Dir(filepath.Dir(results.Dir)))
	})

	t.Run("move records name the mover", func(t *testing.T) {
		results, err := Run(ctx, Experiment{
			Name:            "test",
			Game:            "connect4",
			MatchUps:        [][2]metrics.AgentConfig{{randomConfig, mctsConfig}},
			GamesPerMatchup: 1,
		})
		require.NoError(t, err)
		require.Empty(t, results.Dir, "Should not write files without an output directory")

		for _, move := range results.Moves {
			if move.Player == game.PlayerOne {
				require.Equal(t, randomConfig.ID, move.Agent)
				require.Zero(t, move.Episodes)
			} else {
				require.Equal(t, mctsConfig.ID, move.Agent)
				require.Equal(t, 500, move.Episodes)
			}
		}
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := Run(ctx, Experiment{Game: "chess"})
		require.Error(t, err)
	})

	t.Run("agent without budget", func(t *testing.T) {
		broke := metrics.AgentConfig{ID: 3, Kind: metrics.MCTSAgent}
		_, err := Run(ctx, Experiment{
			Game:     "tictactoe",
			MatchUps: [][2]metrics.AgentConfig{{randomConfig, broke}},
		})
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Run(cancelled, Experiment{
			Game:            "tictactoe",
			MatchUps:        [][2]metrics.AgentConfig{{randomConfig, randomConfig}},
			GamesPerMatchup: 2,
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCreateAgent(t *testing.T) {
	require.NotPanics(t, func() {
		createAgent[tictactoe.Move, tictactoe.State](metrics.AgentConfig{Kind: metrics.MCTSAgent, Episodes: 1, Temperature: 1}, 1)
		createAgent[tictactoe.Move, tictactoe.State](randomConfig, 1)
	})
}

func countMoves(moves []metrics.MoveRecord, gameID int) int {
	count := 0
	for _, move := range moves {
		if move.Game == gameID {
			count++
		}
	}
	return count
}
