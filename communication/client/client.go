package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mctsgames/communication"
	"mctsgames/game"
	"mctsgames/gamemaster"
)

// HTTPCommunicator talks to a game server over its JSON API.
type HTTPCommunicator struct {
	serverURL string
	client    *http.Client
}

func NewHTTPCommunicator(serverURL string, client *http.Client) *HTTPCommunicator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPCommunicator{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		client:    client,
	}
}

// StatusError is a non-2xx response. It unwraps to the matching game or
// session error so callers can use errors.Is.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

var knownErrors = []error{
	gamemaster.ErrSessionNotFound,
	gamemaster.ErrNotYourTurn,
	gamemaster.ErrUnknownGame,
	gamemaster.ErrSessionClosed,
	game.ErrIllegalMove,
	game.ErrGameOver,
}

func (e *StatusError) Unwrap() error {
	for _, known := range knownErrors {
		if strings.Contains(e.Message, known.Error()) {
			return known
		}
	}
	return nil
}

func (c *HTTPCommunicator) NewGame(ctx context.Context, kind string, humanFirst bool) (communication.View, error) {
	var view communication.View
	req := communication.NewGameRequest{Game: kind, HumanFirst: humanFirst}
	err := c.do(ctx, http.MethodPost, "/api/games", req, &view)
	return view, err
}

func (c *HTTPCommunicator) Games(ctx context.Context) ([]communication.View, error) {
	var views []communication.View
	err := c.do(ctx, http.MethodGet, "/api/games", nil, &views)
	return views, err
}

func (c *HTTPCommunicator) State(ctx context.Context, id string, after int) (communication.View, error) {
	var view communication.View
	path := "/api/games/" + url.PathEscape(id)
	if after >= 0 {
		path += "?after=" + strconv.Itoa(after)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &view)
	return view, err
}

func (c *HTTPCommunicator) Play(ctx context.Context, id string, move json.RawMessage) (communication.View, error) {
	var view communication.View
	err := c.do(ctx, http.MethodPost, "/api/games/"+url.PathEscape(id)+"/moves", move, &view)
	return view, err
}

// Close ends a session on the server.
func (c *HTTPCommunicator) Close(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/games/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPCommunicator) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp communication.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

var _ communication.Communicator = (*HTTPCommunicator)(nil)
