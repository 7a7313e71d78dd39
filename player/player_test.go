package player

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"mctsgames/game"
	"mctsgames/game/connect4"
	"mctsgames/game/tictactoe"
	"mctsgames/gamemaster"
	"mctsgames/searcher/agent"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *gamemaster.Manager {
	t.Helper()
	m := gamemaster.NewManager(
		gamemaster.WithThinkTime(time.Second),
		gamemaster.WithEpisodes(100),
		gamemaster.WithSeed(1),
	)
	t.Cleanup(m.Shutdown)
	return m
}

// everyCell lists all tic-tac-toe cells so some input always fits.
func everyCell() string {
	var sb strings.Builder
	for row := 0; row < tictactoe.Size; row++ {
		for col := 0; col < tictactoe.Size; col++ {
			sb.WriteString(string(rune('0'+row)) + " " + string(rune('0'+col)) + "\n")
		}
	}
	return sb.String()
}

func TestPlayerPlay(t *testing.T) {
	ctx := context.Background()

	t.Run("plays a full game from scripted input", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPlayer(newTestManager(t), strings.NewReader("nonsense\n\n"+everyCell()), &out, termenv.WithProfile(termenv.Ascii))

		result, err := p.Play(ctx, "tictactoe", true)

		require.NoError(t, err)
		require.True(t, result.Over())
		require.Contains(t, out.String(), "playing tictactoe as ONE")
		require.Contains(t, out.String(), "your move (row col)")
		require.Contains(t, out.String(), "expected row and column")
		require.NotContains(t, out.String(), "\x1b[", "Ascii profile should not emit escape codes")
	})

	t.Run("runs out of input", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPlayer(newTestManager(t), strings.NewReader("3\n"), &out, termenv.WithProfile(termenv.Ascii))

		_, err := p.Play(ctx, "connect4", true)

		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("unknown game", func(t *testing.T) {
		p := NewPlayer(newTestManager(t), strings.NewReader(""), io.Discard)

		_, err := p.Play(ctx, "chess", true)

		require.ErrorIs(t, err, gamemaster.ErrUnknownGame)
	})
}

func TestRender(t *testing.T) {
	out := termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii))

	t.Run("tic-tac-toe", func(t *testing.T) {
		state, err := tictactoe.New().Play(tictactoe.Move{Row: 1, Col: 2})
		require.NoError(t, err)
		data, err := state.MarshalJSON()
		require.NoError(t, err)

		board, err := renderTicTacToe(out, data)

		require.NoError(t, err)
		require.Equal(t, "   0 1 2\n0  . . .\n1  . . O\n2  . . .\n", board)
	})

	t.Run("connect-four", func(t *testing.T) {
		state, err := connect4.New().Play(connect4.Move{Column: 0})
		require.NoError(t, err)
		data, err := state.MarshalJSON()
		require.NoError(t, err)

		board, err := renderConnect4(out, data)

		require.NoError(t, err)
		lines := strings.Split(board, "\n")
		require.Equal(t, " O . . . . . .", lines[connect4.Rows-1])
		require.Equal(t, " 0 1 2 3 4 5 6", lines[connect4.Rows])
	})

	t.Run("bad state", func(t *testing.T) {
		_, err := renderTicTacToe(out, []byte(`{"board":1}`))
		require.Error(t, err)
	})
}

func TestControllerRun(t *testing.T) {
	c := NewController[tictactoe.Move](newTestManager(t),
		agent.NewEvaluationAgent[tictactoe.Move, tictactoe.State](agent.WithEpisodes(100), agent.WithSeed(2)))

	view, err := c.Run(context.Background(), "tictactoe", false)

	require.NoError(t, err)
	require.True(t, view.Result.Over())
	require.Equal(t, game.PlayerTwo, view.Human)
}
