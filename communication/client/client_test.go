package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mctsgames/communication/server"
	"mctsgames/game"
	"mctsgames/gamemaster"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *HTTPCommunicator {
	t.Helper()
	manager := gamemaster.NewManager(
		gamemaster.WithThinkTime(time.Second),
		gamemaster.WithEpisodes(200),
		gamemaster.WithSeed(1),
	)
	ts := httptest.NewServer(server.New(manager, zerolog.Nop()).Handler())
	t.Cleanup(func() {
		ts.Close()
		manager.Shutdown()
	})
	return NewHTTPCommunicator(ts.URL+"/", ts.Client())
}

func TestHTTPCommunicator(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	view, err := c.NewGame(ctx, "tictactoe", false)
	require.NoError(t, err)
	require.Equal(t, game.PlayerTwo, view.Human)

	t.Run("waiting for the bot", func(t *testing.T) {
		view, err = c.State(ctx, view.ID, 0)
		require.NoError(t, err)
		require.Equal(t, 1, view.Version)
		require.True(t, view.HumanToMove())
	})

	t.Run("playing a move", func(t *testing.T) {
		var state struct {
			Moves []json.RawMessage `json:"moves"`
		}
		require.NoError(t, json.Unmarshal(view.State, &state))

		view, err = c.Play(ctx, view.ID, state.Moves[0])
		require.NoError(t, err)
		require.GreaterOrEqual(t, view.Version, 2)
	})

	t.Run("errors unwrap to sentinels", func(t *testing.T) {
		_, err := c.State(ctx, "missing", -1)
		require.ErrorIs(t, err, gamemaster.ErrSessionNotFound)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		require.Equal(t, http.StatusNotFound, statusErr.StatusCode)

		_, err = c.NewGame(ctx, "chess", true)
		require.ErrorIs(t, err, gamemaster.ErrUnknownGame)

		_, err = c.Play(ctx, view.ID, json.RawMessage(`{"row":7,"col":7}`))
		require.Error(t, err)
	})

	t.Run("listing and closing", func(t *testing.T) {
		views, err := c.Games(ctx)
		require.NoError(t, err)
		require.Len(t, views, 1)

		require.NoError(t, c.Close(ctx, view.ID))
		require.ErrorIs(t, c.Close(ctx, view.ID), gamemaster.ErrSessionNotFound)
	})
}
